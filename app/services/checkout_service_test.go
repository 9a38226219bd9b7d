package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/testkit"
)

func newCheckout(db *gorm.DB) *CheckoutService {
	svc := NewCheckoutService(db)
	svc.DisableSideEffects()
	return svc
}

func lineFor(m models.Medicine, quantity int) OrderLine {
	return OrderLine{MedicineID: m.ID, Quantity: quantity, Price: m.Price}
}

func TestPlaceOrderCashOnDelivery(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 4.50, 20)
	testkit.CreateCartItem(t, db, user.ID, medicine.ID, 3)

	result, err := newCheckout(db).PlaceOrder(user.ID, PlaceOrderInput{
		Items:           []OrderLine{lineFor(medicine, 3)},
		Total:           13.50,
		ShippingAddress: "12 High Street, Springfield",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)
	assert.NotZero(t, result.OrderID)
	assert.Equal(t, models.OrderPending, result.Status)
	assert.InDelta(t, 13.50, result.Total, 0.001)
	assert.Nil(t, result.AddressID)

	var order models.Order
	require.NoError(t, db.Preload("Items").Preload("Payment").First(&order, result.OrderID).Error)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, "12 High Street, Springfield", order.ShippingAddress)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.InDelta(t, 4.50, order.Items[0].Price, 0.001)

	// Cash on delivery stays pending with no transaction id.
	require.NotNil(t, order.Payment)
	assert.Equal(t, models.PaymentPending, order.Payment.Status)
	assert.Empty(t, order.Payment.TransactionID)
	assert.InDelta(t, 13.50, order.Payment.Amount, 0.001)

	var stocked models.Medicine
	require.NoError(t, db.First(&stocked, medicine.ID).Error)
	assert.Equal(t, 17, stocked.Stock)
	assert.Equal(t, 3, stocked.Sales)

	assert.Zero(t, testkit.CountRows(t, db, &models.CartItem{}), "cart should be cleared")
}

func TestPlaceOrderCardCompletesPayment(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 10.00, 5)

	result, err := newCheckout(db).PlaceOrder(user.ID, PlaceOrderInput{
		Items:           []OrderLine{lineFor(medicine, 1)},
		Total:           10.00,
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   "card",
	})
	require.NoError(t, err)

	var payment models.Payment
	require.NoError(t, db.Where("order_id = ?", result.OrderID).First(&payment).Error)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "TXN-"), "got %q", payment.TransactionID)
}

func TestPlaceOrderInsufficientStockRollsBackEverything(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	plenty := testkit.CreateMedicine(t, db, 2.00, 50)
	scarce := testkit.CreateMedicine(t, db, 5.00, 1)
	testkit.CreateCartItem(t, db, user.ID, plenty.ID, 2)

	_, err := newCheckout(db).PlaceOrder(user.ID, PlaceOrderInput{
		Items: []OrderLine{
			lineFor(plenty, 2),
			lineFor(scarce, 3),
		},
		Total:           19.00,
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   "cod",
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The first line already reserved stock inside the transaction; the
	// rollback must undo it along with every other write.
	assert.Zero(t, testkit.CountRows(t, db, &models.Order{}))
	assert.Zero(t, testkit.CountRows(t, db, &models.OrderItem{}))
	assert.Zero(t, testkit.CountRows(t, db, &models.Payment{}))
	assert.EqualValues(t, 1, testkit.CountRows(t, db, &models.CartItem{}), "cart must survive the rollback")

	var unchanged models.Medicine
	require.NoError(t, db.First(&unchanged, plenty.ID).Error)
	assert.Equal(t, 50, unchanged.Stock)
	assert.Equal(t, 0, unchanged.Sales)
}

func TestPlaceOrderExactStockSucceeds(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 3.00, 4)

	_, err := newCheckout(db).PlaceOrder(user.ID, PlaceOrderInput{
		Items:           []OrderLine{lineFor(medicine, 4)},
		Total:           12.00,
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	var drained models.Medicine
	require.NoError(t, db.First(&drained, medicine.ID).Error)
	assert.Equal(t, 0, drained.Stock)
}

func TestPlaceOrderRejectsTotalMismatch(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 4.00, 10)

	_, err := newCheckout(db).PlaceOrder(user.ID, PlaceOrderInput{
		Items:           []OrderLine{lineFor(medicine, 2)},
		Total:           7.00, // server computes 8.00
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   "cod",
	})
	require.ErrorIs(t, err, ErrTotalMismatch)
	assert.Zero(t, testkit.CountRows(t, db, &models.Order{}))
}

func TestPlaceOrderRejectsStaleLinePrice(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 4.00, 10)

	_, err := newCheckout(db).PlaceOrder(user.ID, PlaceOrderInput{
		Items: []OrderLine{
			{MedicineID: medicine.ID, Quantity: 2, Price: 3.50},
		},
		Total:           7.00, // consistent with the stale price
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   "cod",
	})
	require.ErrorIs(t, err, ErrTotalMismatch)
}

func TestPlaceOrderValidatesLines(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 4.00, 10)
	svc := newCheckout(db)

	_, err := svc.PlaceOrder(user.ID, PlaceOrderInput{
		Total:           1.00,
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   "cod",
	})
	require.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.PlaceOrder(user.ID, PlaceOrderInput{
		Items:           []OrderLine{{MedicineID: medicine.ID, Quantity: 0, Price: 4.00}},
		Total:           4.00,
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   "cod",
	})
	require.ErrorIs(t, err, ErrInvalidLine)

	_, err = svc.PlaceOrder(user.ID, PlaceOrderInput{
		Items:           []OrderLine{{MedicineID: 99999, Quantity: 1, Price: 4.00}},
		Total:           4.00,
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   "cod",
	})
	require.ErrorIs(t, err, ErrInvalidLine)
}

func TestPlaceOrderAddressDedup(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 2.00, 100)
	svc := newCheckout(db)

	address := StructuredAddress{
		Street: "12 High Street", City: "Springfield", State: "IL", Zip: "62701",
	}
	place := func() PlaceOrderResult {
		result, err := svc.PlaceOrder(user.ID, PlaceOrderInput{
			Items:           []OrderLine{lineFor(medicine, 1)},
			Total:           2.00,
			ShippingAddress: "12 High Street, Springfield IL 62701",
			PaymentMethod:   "cod",
			Address:         address,
		})
		require.NoError(t, err)
		return result
	}

	first := place()
	second := place()

	require.NotNil(t, first.AddressID)
	require.NotNil(t, second.AddressID)
	assert.Equal(t, *first.AddressID, *second.AddressID, "identical address must reuse the row")
	assert.EqualValues(t, 1, testkit.CountRows(t, db, &models.Address{}))

	var saved models.Address
	require.NoError(t, db.First(&saved, *first.AddressID).Error)
	assert.False(t, saved.IsDefault, "checkout-created addresses are never default")
}

func TestPlaceOrderIncompleteAddressKeepsSnapshotOnly(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 2.00, 10)

	result, err := newCheckout(db).PlaceOrder(user.ID, PlaceOrderInput{
		Items:           []OrderLine{lineFor(medicine, 1)},
		Total:           2.00,
		ShippingAddress: "somewhere",
		PaymentMethod:   "cod",
		Address:         StructuredAddress{Street: "12 High Street", City: "Springfield"},
	})
	require.NoError(t, err)
	assert.Nil(t, result.AddressID)
	assert.Zero(t, testkit.CountRows(t, db, &models.Address{}))
}

func TestPlaceOrderPriceSnapshotSurvivesCatalogChange(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 6.00, 10)

	result, err := newCheckout(db).PlaceOrder(user.ID, PlaceOrderInput{
		Items:           []OrderLine{lineFor(medicine, 1)},
		Total:           6.00,
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Medicine{}).
		Where("id = ?", medicine.ID).
		Update("price", 9.99).Error)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", result.OrderID).First(&item).Error)
	assert.InDelta(t, 6.00, item.Price, 0.001, "order line keeps the price at purchase time")
}
