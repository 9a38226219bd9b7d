package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/pkg/auth"
	"github.com/hassanmehmood/medicart/pkg/event"
	"github.com/hassanmehmood/medicart/pkg/orm"
)

var (
	// ErrNotYourOrder hides other users' orders behind a not-found.
	ErrNotYourOrder = errors.New("orders: not found")
	// ErrBadStatus rejects unknown status transitions.
	ErrBadStatus = errors.New("orders: invalid status")
	// ErrOrderClosed rejects reopening a cancelled order. Cancellation
	// returned the reserved stock, so the order cannot go live again.
	ErrOrderClosed = errors.New("orders: cancelled orders cannot be reopened")
)

var validStatuses = map[string]bool{
	models.OrderPending:   true,
	models.OrderConfirmed: true,
	models.OrderShipped:   true,
	models.OrderDelivered: true,
	models.OrderCancelled: true,
}

// OrderService covers everything after checkout: history, detail, and
// admin status transitions.
type OrderService struct {
	db        *gorm.DB
	orders    *repositories.OrderRepository
	medicines *repositories.MedicineRepository
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:        db,
		orders:    repositories.NewOrderRepository(db),
		medicines: repositories.NewMedicineRepository(db),
	}
}

func (s *OrderService) ForUser(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ForUser(userID, page, limit)
}

// Find returns one order. Non-admins only see their own.
func (s *OrderService) Find(orderID, requesterID uint, requesterRole string) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return order, err
	}
	if requesterRole != auth.RoleAdmin && order.UserID != requesterID {
		return models.Order{}, ErrNotYourOrder
	}
	return order, nil
}

func (s *OrderService) All(status string, page, limit int) ([]models.Order, orm.Pagination, error) {
	if status != "" && !validStatuses[status] {
		return nil, orm.Pagination{}, ErrBadStatus
	}
	return s.orders.All(status, page, limit)
}

// Items returns one order's line items, with the same visibility rule as
// Find.
func (s *OrderService) Items(orderID, requesterID uint, requesterRole string) ([]models.OrderItem, error) {
	if _, err := s.Find(orderID, requesterID, requesterRole); err != nil {
		return nil, err
	}
	return s.orders.Items(orderID)
}

// UpdateStatus applies an admin status transition. Cancelling restores the
// reserved stock; delivering a cash-on-delivery order completes its
// payment. Both run with the status change in one transaction.
func (s *OrderService) UpdateStatus(orderID uint, status string) (models.Order, error) {
	if !validStatuses[status] {
		return models.Order{}, ErrBadStatus
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return order, err
	}
	if order.Status == models.OrderCancelled && status != models.OrderCancelled {
		return models.Order{}, ErrOrderClosed
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)

		if err := orders.UpdateStatus(orderID, status); err != nil {
			return err
		}

		if status == models.OrderCancelled && order.Status != models.OrderCancelled {
			medicines := s.medicines.WithTx(tx)
			for _, item := range order.Items {
				if err := medicines.RestoreStock(item.MedicineID, item.Quantity); err != nil {
					return err
				}
			}
		}

		if status == models.OrderDelivered &&
			order.Payment != nil && order.Payment.Status == models.PaymentPending {
			if err := orders.UpdatePaymentStatus(orderID, models.PaymentCompleted, ""); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	event.FireAsync("order.status", map[string]interface{}{
		"orderId": orderID,
		"status":  status,
	})

	return s.orders.FindByID(orderID)
}
