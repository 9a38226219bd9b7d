package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/testkit"
)

func backdateOrder(t *testing.T, db *gorm.DB, orderID uint, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", orderID).Update("created_at", at).Error)
}

func TestDashboardOverviewAggregates(t *testing.T) {
	db := testkit.OpenDB(t)
	buyer := testkit.CreateUser(t, db, "user")
	testkit.CreateUser(t, db, "admin")

	cheap := testkit.CreateMedicine(t, db, 5.00, 40)
	scarce := testkit.CreateMedicine(t, db, 8.00, 6)

	placeTestOrder(t, db, buyer.ID, cheap, 2, "card")
	placed := placeTestOrder(t, db, buyer.ID, scarce, 1, "cod")

	_, err := NewOrderService(db).UpdateStatus(placed.OrderID, models.OrderCancelled)
	require.NoError(t, err)

	overview, err := NewDashboardService(db).Overview()
	require.NoError(t, err)

	// the cancelled order drops out of count and revenue
	assert.EqualValues(t, 1, overview.Orders)
	assert.InDelta(t, 10.00, overview.Revenue, 0.001)
	assert.EqualValues(t, 2, overview.Users)

	assert.Equal(t, 1, overview.OrdersByStatus[models.OrderPending])
	assert.Equal(t, 1, overview.OrdersByStatus[models.OrderCancelled])
	assert.Len(t, overview.RecentOrders, 2)

	require.NotEmpty(t, overview.TopSelling)
	assert.Equal(t, cheap.ID, overview.TopSelling[0].ID)

	// only the scarce medicine sits at or below the default threshold
	require.Len(t, overview.LowStock, 1)
	assert.Equal(t, scarce.ID, overview.LowStock[0].ID)
}

func TestSalesReportGroupsByDay(t *testing.T) {
	db := testkit.OpenDB(t)
	buyer := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 5.00, 100)

	day1 := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	first := placeTestOrder(t, db, buyer.ID, medicine, 2, "card")
	cancelled := placeTestOrder(t, db, buyer.ID, medicine, 3, "cod")
	second := placeTestOrder(t, db, buyer.ID, medicine, 1, "cod")

	backdateOrder(t, db, first.OrderID, day1)
	backdateOrder(t, db, cancelled.OrderID, day1)
	backdateOrder(t, db, second.OrderID, day2)

	_, err := NewOrderService(db).UpdateStatus(cancelled.OrderID, models.OrderCancelled)
	require.NoError(t, err)

	svc := NewDashboardService(db)

	sales, err := svc.SalesReport("", "")
	require.NoError(t, err)
	require.Len(t, sales, 2)

	// newest day first, cancelled order excluded
	assert.Equal(t, "2026-08-31", sales[0].Date)
	assert.EqualValues(t, 1, sales[0].Orders)
	assert.InDelta(t, 5.00, sales[0].Revenue, 0.001)

	assert.Equal(t, "2026-08-30", sales[1].Date)
	assert.EqualValues(t, 1, sales[1].Orders)
	assert.InDelta(t, 10.00, sales[1].Revenue, 0.001)

	bounded, err := svc.SalesReport("2026-08-31", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, "2026-08-31", bounded[0].Date)
}

func TestSalesReportRejectsMalformedDates(t *testing.T) {
	db := testkit.OpenDB(t)

	_, err := NewDashboardService(db).SalesReport("31-08-2026", "")
	assert.ErrorIs(t, err, ErrBadDateRange)

	_, err = NewDashboardService(db).SalesReport("", "not-a-date")
	assert.ErrorIs(t, err, ErrBadDateRange)
}

func TestAccountSummary(t *testing.T) {
	db := testkit.OpenDB(t)
	buyer := testkit.CreateUser(t, db, "user")
	first := testkit.CreateMedicine(t, db, 3.00, 30)
	second := testkit.CreateMedicine(t, db, 7.00, 30)

	_, err := newCheckout(db).PlaceOrder(buyer.ID, PlaceOrderInput{
		Items:           []OrderLine{lineFor(first, 2), lineFor(second, 1)},
		Total:           13.00,
		ShippingAddress: "1 Elm Road",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	delivered := placeTestOrder(t, db, buyer.ID, first, 1, "card")
	_, err = NewOrderService(db).UpdateStatus(delivered.OrderID, models.OrderDelivered)
	require.NoError(t, err)

	testkit.CreateCartItem(t, db, buyer.ID, second.ID, 2)

	summary, err := NewDashboardService(db).ForUser(buyer.ID)
	require.NoError(t, err)

	require.Len(t, summary.Orders, 2)
	// newest first; the two-line order carries both medicine names
	assert.Equal(t, delivered.OrderID, summary.Orders[0].ID)
	assert.Equal(t, first.Name, summary.Orders[0].Items)
	assert.Equal(t, fmt.Sprintf("%s, %s", first.Name, second.Name), summary.Orders[1].Items)

	assert.EqualValues(t, 2, summary.Stats.Orders)
	assert.EqualValues(t, 1, summary.Stats.Pending)
	assert.EqualValues(t, 1, summary.Stats.Delivered)
	assert.InDelta(t, 16.00, summary.Stats.Spent, 0.001)
	assert.EqualValues(t, 1, summary.Cart)
}

func TestAccountSummaryOnlyOwnOrders(t *testing.T) {
	db := testkit.OpenDB(t)
	alice := testkit.CreateUser(t, db, "user")
	bob := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 4.00, 20)

	placeTestOrder(t, db, alice.ID, medicine, 1, "cod")

	summary, err := NewDashboardService(db).ForUser(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Orders)
	assert.Zero(t, summary.Stats.Orders)
	assert.Zero(t, summary.Cart)
}

func TestDashboardOverviewEmptyDatabase(t *testing.T) {
	db := testkit.OpenDB(t)

	overview, err := NewDashboardService(db).Overview()
	require.NoError(t, err)

	assert.Zero(t, overview.Orders)
	assert.Zero(t, overview.Revenue)
	assert.Zero(t, overview.Users)
	assert.Empty(t, overview.OrdersByStatus)
	assert.Empty(t, overview.RecentOrders)
}
