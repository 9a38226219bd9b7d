package repositories

import (
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/orm"
)

// OrderRepository handles database operations for Order, OrderItem and
// Payment.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) CreateItem(item *models.OrderItem) error {
	return r.db.Create(item).Error
}

func (r *OrderRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// FindByID loads one order with its items and payment.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items.Medicine").Preload("Payment").First(&order, id).Error
	return order, err
}

// ForUser lists a user's orders, newest first.
func (r *OrderRepository) ForUser(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	q := r.db.Model(&models.Order{}).Preload("Items").Preload("Payment").Where("user_id = ?", userID)
	pagination, err := orm.Wrap(q).Order("id desc").GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// All lists every order for the admin view, optionally filtered by status.
func (r *OrderRepository) All(status string, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	q := r.db.Model(&models.Order{}).Preload("Items").Preload("Payment")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	pagination, err := orm.Wrap(q).Order("id desc").GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// Items loads the line items of one order.
func (r *OrderRepository) Items(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.Preload("Medicine").Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, err
}

func (r *OrderRepository) UpdateStatus(orderID uint, status string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error
}

func (r *OrderRepository) UpdatePaymentStatus(orderID uint, status, transactionID string) error {
	updates := map[string]interface{}{"status": status}
	if transactionID != "" {
		updates["transaction_id"] = transactionID
	}
	return r.db.Model(&models.Payment{}).Where("order_id = ?", orderID).Updates(updates).Error
}

// Stats aggregated for the admin dashboard.
type OrderStats struct {
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// Stats counts orders and sums revenue, excluding cancelled orders.
func (r *OrderRepository) Stats() (OrderStats, error) {
	var stats OrderStats
	err := r.db.Model(&models.Order{}).
		Where("status <> ?", models.OrderCancelled).
		Select("COUNT(*) as orders, COALESCE(SUM(total), 0) as revenue").
		Scan(&stats).Error
	return stats, err
}

// Recent returns the n newest orders for the dashboard feed.
func (r *OrderRepository) Recent(n int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Payment").Order("id desc").Limit(n).Find(&orders).Error
	return orders, err
}

// RecentForUser returns the user's n newest orders with their lines.
func (r *OrderRepository) RecentForUser(userID uint, n int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items.Medicine").
		Where("user_id = ?", userID).
		Order("id desc").Limit(n).Find(&orders).Error
	return orders, err
}

// UserOrderStats summarises one user's order history.
type UserOrderStats struct {
	Orders    int64   `json:"orders"`
	Pending   int64   `json:"pending"`
	Delivered int64   `json:"delivered"`
	Spent     float64 `json:"spent"`
}

// StatsForUser aggregates the summary in one scan. Cancelled orders count
// towards the order total but not towards spend.
func (r *OrderRepository) StatsForUser(userID uint) (UserOrderStats, error) {
	var stats UserOrderStats
	err := r.db.Model(&models.Order{}).
		Where("user_id = ?", userID).
		Select(`COUNT(*) as orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as pending,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as delivered,
			COALESCE(SUM(CASE WHEN status <> ? THEN total ELSE 0 END), 0) as spent`,
			models.OrderPending, models.OrderDelivered, models.OrderCancelled).
		Scan(&stats).Error
	return stats, err
}

// SalesRow is one calendar day of the sales report.
type SalesRow struct {
	Date    string  `json:"date"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// SalesByDay groups non-cancelled orders per day, newest first. start and
// end are inclusive YYYY-MM-DD bounds; an empty bound is open.
func (r *OrderRepository) SalesByDay(start, end string) ([]SalesRow, error) {
	q := r.db.Model(&models.Order{}).
		Select("DATE(created_at) as date, COUNT(*) as orders, COALESCE(SUM(total), 0) as revenue").
		Where("status <> ?", models.OrderCancelled)
	if start != "" {
		q = q.Where("DATE(created_at) >= ?", start)
	}
	if end != "" {
		q = q.Where("DATE(created_at) <= ?", end)
	}

	var rows []SalesRow
	err := q.Group("DATE(created_at)").Order("date desc").Scan(&rows).Error
	return rows, err
}
