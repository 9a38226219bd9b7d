package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/jobs"
	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/pkg/event"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/metrics"
	"github.com/hassanmehmood/medicart/pkg/queue"
)

var (
	// ErrEmptyOrder rejects checkouts with no lines.
	ErrEmptyOrder = errors.New("checkout: order has no items")
	// ErrInvalidLine rejects non-positive quantities or unknown medicines.
	ErrInvalidLine = errors.New("checkout: invalid order line")
	// ErrInsufficientStock aborts the whole order when any line's quantity
	// is no longer available at commit time.
	ErrInsufficientStock = errors.New("checkout: insufficient stock")
	// ErrTotalMismatch rejects a client total that disagrees with the
	// server-side recomputation.
	ErrTotalMismatch = errors.New("checkout: total does not match order lines")
)

// OrderLine is one requested line of a checkout. Price is the unit price
// the client saw; it is checked against the catalog, not trusted. Lines
// are validated by PlaceOrder itself, not by struct tags.
type OrderLine struct {
	MedicineID uint    `json:"medicineId"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// StructuredAddress is the optional deduplicated address of a checkout.
// It only takes effect when all four core fields are present.
type StructuredAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

func (a StructuredAddress) complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.Zip != ""
}

// PlaceOrderInput is the full checkout request.
type PlaceOrderInput struct {
	Items           []OrderLine       `json:"items"`
	Total           float64           `json:"total" validate:"required,gt=0"`
	ShippingAddress string            `json:"shippingAddress" validate:"required"`
	PaymentMethod   string            `json:"paymentMethod" validate:"required,in=cod,cash,card,upi,netbanking"`
	Address         StructuredAddress `json:"address"`
}

// PlaceOrderResult is what a committed checkout reports back.
type PlaceOrderResult struct {
	OrderID   uint    `json:"id"`
	Total     float64 `json:"total"`
	Status    string  `json:"status"`
	AddressID *uint   `json:"address_id,omitempty"`
}

// CheckoutService converts a cart into a persisted order inside one
// database transaction.
type CheckoutService struct {
	db        *gorm.DB
	medicines *repositories.MedicineRepository
	orders    *repositories.OrderRepository
	addresses *repositories.AddressRepository
	cart      *repositories.CartRepository
	users     *repositories.UserRepository

	// dispatchAsync gates the post-commit job and event; tests turn it off.
	dispatchAsync bool
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{
		db:            db,
		medicines:     repositories.NewMedicineRepository(db),
		orders:        repositories.NewOrderRepository(db),
		addresses:     repositories.NewAddressRepository(db),
		cart:          repositories.NewCartRepository(db),
		users:         repositories.NewUserRepository(db),
		dispatchAsync: true,
	}
}

// DisableSideEffects turns off the post-commit job dispatch and events.
// Intended for tests exercising only the transaction.
func (s *CheckoutService) DisableSideEffects() {
	s.dispatchAsync = false
}

// PlaceOrder runs the checkout transaction:
//
//  1. validate lines against the catalog and recompute the total
//  2. resolve (dedup or insert) the structured address, if supplied
//  3. insert the order header
//  4. per line: insert the order item and reserve stock with a guarded
//     decrement — zero rows affected aborts the whole transaction
//  5. clear the cart
//  6. insert the payment row
//
// Any failure rolls the entire unit back; the caller never sees a partial
// order. The confirmation email and the live order feed fire only after
// commit.
func (s *CheckoutService) PlaceOrder(userID uint, in PlaceOrderInput) (PlaceOrderResult, error) {
	start := time.Now()

	if len(in.Items) == 0 {
		return PlaceOrderResult{}, ErrEmptyOrder
	}
	for _, line := range in.Items {
		if line.Quantity < 1 || line.MedicineID == 0 {
			return PlaceOrderResult{}, ErrInvalidLine
		}
	}

	if err := s.verifyTotal(in); err != nil {
		return PlaceOrderResult{}, err
	}

	var result PlaceOrderResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		medicines := s.medicines.WithTx(tx)

		addressID, err := s.resolveAddress(tx, userID, in.Address)
		if err != nil {
			return err
		}

		order := models.Order{
			UserID:          userID,
			AddressID:       addressID,
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   in.PaymentMethod,
			Total:           in.Total,
			Status:          models.OrderPending,
		}
		if err := orders.Create(&order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, line := range in.Items {
			item := models.OrderItem{
				OrderID:    order.ID,
				MedicineID: line.MedicineID,
				Quantity:   line.Quantity,
				Price:      line.Price,
			}
			if err := orders.CreateItem(&item); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			ok, err := medicines.ReserveStock(line.MedicineID, line.Quantity)
			if err != nil {
				return fmt.Errorf("reserve stock: %w", err)
			}
			if !ok {
				metrics.StockRejections.Inc()
				return ErrInsufficientStock
			}
		}

		if err := s.cart.WithTx(tx).Clear(userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		payment := s.buildPayment(order, userID)
		if err := orders.CreatePayment(&payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		result = PlaceOrderResult{
			OrderID:   order.ID,
			Total:     order.Total,
			Status:    order.Status,
			AddressID: order.AddressID,
		}
		return nil
	})
	if err != nil {
		return PlaceOrderResult{}, err
	}

	metrics.CheckoutOrders.WithLabelValues(in.PaymentMethod).Inc()
	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())

	if s.dispatchAsync {
		s.afterCommit(userID, result)
	}

	return result, nil
}

// verifyTotal recomputes the total from the catalog's current prices and
// rejects both a stale line price and a mismatched grand total.
func (s *CheckoutService) verifyTotal(in PlaceOrderInput) error {
	ids := make([]uint, 0, len(in.Items))
	for _, line := range in.Items {
		ids = append(ids, line.MedicineID)
	}

	catalog, err := s.medicines.FindByIDs(ids)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	prices := make(map[uint]float64, len(catalog))
	for _, m := range catalog {
		prices[m.ID] = m.Price
	}

	var total float64
	for _, line := range in.Items {
		price, ok := prices[line.MedicineID]
		if !ok {
			return ErrInvalidLine
		}
		if !moneyEqual(price, line.Price) {
			return ErrTotalMismatch
		}
		total += price * float64(line.Quantity)
	}

	if !moneyEqual(total, in.Total) {
		return ErrTotalMismatch
	}
	return nil
}

// moneyEqual compares amounts to the cent, sidestepping float drift.
func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// resolveAddress implements idempotent dedup: an identical
// (street, city, state, zip) tuple for this user reuses the existing row;
// otherwise a new non-default row is inserted. Incomplete structured input
// resolves to nil and the order keeps only its text snapshot.
func (s *CheckoutService) resolveAddress(tx *gorm.DB, userID uint, a StructuredAddress) (*uint, error) {
	if !a.complete() {
		return nil, nil
	}

	addresses := s.addresses.WithTx(tx)

	existing, err := addresses.FindByComponents(userID, a.Street, a.City, a.State, a.Zip)
	if err == nil {
		return &existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup address: %w", err)
	}

	fresh := models.Address{
		UserID:  userID,
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
		Phone:   a.Phone,
	}
	if err := addresses.Create(&fresh); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return &fresh.ID, nil
}

// buildPayment applies the payment rules: cash-on-delivery stays pending
// with no transaction id; every other method completes immediately with a
// deterministic id derived from the order id and the commit-time clock.
func (s *CheckoutService) buildPayment(order models.Order, userID uint) models.Payment {
	payment := models.Payment{
		OrderID: order.ID,
		UserID:  userID,
		Method:  order.PaymentMethod,
		Amount:  order.Total,
	}

	if order.PaymentMethod == "cod" || order.PaymentMethod == "cash" {
		payment.Status = models.PaymentPending
		payment.TransactionID = ""
		return payment
	}

	payment.Status = models.PaymentCompleted
	payment.TransactionID = fmt.Sprintf("TXN-%d-%d", order.ID, time.Now().UnixMilli())
	return payment
}

// afterCommit fires the fire-and-forget side effects. Failures are logged,
// never propagated: the order is already committed.
func (s *CheckoutService) afterCommit(userID uint, result PlaceOrderResult) {
	if err := queue.Dispatch(&jobs.OrderConfirmationJob{OrderID: result.OrderID, UserID: userID}); err != nil {
		logger.Error("checkout: confirmation dispatch failed", "order_id", result.OrderID, "error", err)
	}

	event.FireAsync("order.placed", map[string]interface{}{
		"orderId": result.OrderID,
		"userId":  userID,
		"total":   result.Total,
		"status":  result.Status,
	})
}
