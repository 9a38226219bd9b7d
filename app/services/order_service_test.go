package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/auth"
	"github.com/hassanmehmood/medicart/pkg/testkit"
)

func placeTestOrder(t *testing.T, db *gorm.DB, userID uint, medicine models.Medicine, quantity int, method string) PlaceOrderResult {
	t.Helper()

	result, err := newCheckout(db).PlaceOrder(userID, PlaceOrderInput{
		Items:           []OrderLine{lineFor(medicine, quantity)},
		Total:           medicine.Price * float64(quantity),
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   method,
	})
	require.NoError(t, err)
	return result
}

func TestCancelRestoresStock(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 4.00, 10)
	placed := placeTestOrder(t, db, user.ID, medicine, 3, "cod")

	svc := NewOrderService(db)
	order, err := svc.UpdateStatus(placed.OrderID, models.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, order.Status)

	var restocked models.Medicine
	require.NoError(t, db.First(&restocked, medicine.ID).Error)
	assert.Equal(t, 10, restocked.Stock)

	// Cancelling twice must not restore stock twice.
	_, err = svc.UpdateStatus(placed.OrderID, models.OrderCancelled)
	require.NoError(t, err)
	require.NoError(t, db.First(&restocked, medicine.ID).Error)
	assert.Equal(t, 10, restocked.Stock)
}

func TestCancelledOrderCannotBeReopened(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 4.00, 10)
	placed := placeTestOrder(t, db, user.ID, medicine, 3, "cod")

	svc := NewOrderService(db)
	_, err := svc.UpdateStatus(placed.OrderID, models.OrderCancelled)
	require.NoError(t, err)

	// The stock went back on cancellation, so reviving the order would
	// sell inventory that was never re-reserved.
	for _, status := range []string{models.OrderPending, models.OrderConfirmed, models.OrderShipped, models.OrderDelivered} {
		_, err = svc.UpdateStatus(placed.OrderID, status)
		assert.ErrorIs(t, err, ErrOrderClosed, status)
	}

	order, err := svc.Find(placed.OrderID, user.ID, auth.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, order.Status)

	var medicineRow models.Medicine
	require.NoError(t, db.First(&medicineRow, medicine.ID).Error)
	assert.Equal(t, 10, medicineRow.Stock)
}

func TestDeliveredCompletesPendingPayment(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 4.00, 10)
	placed := placeTestOrder(t, db, user.ID, medicine, 1, "cod")

	order, err := NewOrderService(db).UpdateStatus(placed.OrderID, models.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, order.Status)
	require.NotNil(t, order.Payment)
	assert.Equal(t, models.PaymentCompleted, order.Payment.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 4.00, 10)
	placed := placeTestOrder(t, db, user.ID, medicine, 1, "cod")

	_, err := NewOrderService(db).UpdateStatus(placed.OrderID, "misplaced")
	require.ErrorIs(t, err, ErrBadStatus)
}

func TestFindHidesForeignOrders(t *testing.T) {
	db := testkit.OpenDB(t)
	alice := testkit.CreateUser(t, db, "user")
	bob := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 4.00, 10)
	placed := placeTestOrder(t, db, alice.ID, medicine, 1, "cod")

	svc := NewOrderService(db)

	_, err := svc.Find(placed.OrderID, bob.ID, auth.RoleUser)
	require.ErrorIs(t, err, ErrNotYourOrder)

	mine, err := svc.Find(placed.OrderID, alice.ID, auth.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, mine.UserID)

	seen, err := svc.Find(placed.OrderID, bob.ID, auth.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, placed.OrderID, seen.ID)
}
