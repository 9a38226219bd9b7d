package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/config"
	"github.com/hassanmehmood/medicart/pkg/collection"
)

// ErrBadDateRange rejects a sales-report bound that is not a calendar date.
var ErrBadDateRange = errors.New("dashboard: dates must be YYYY-MM-DD")

// DashboardService aggregates the admin overview numbers plus the per-user
// account summary.
type DashboardService struct {
	orders    *repositories.OrderRepository
	medicines *repositories.MedicineRepository
	users     *repositories.UserRepository
	carts     *repositories.CartRepository
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		orders:    repositories.NewOrderRepository(db),
		medicines: repositories.NewMedicineRepository(db),
		users:     repositories.NewUserRepository(db),
		carts:     repositories.NewCartRepository(db),
	}
}

// Overview is the admin dashboard payload.
type Overview struct {
	Orders         int64                  `json:"orders"`
	Revenue        float64                `json:"revenue"`
	Users          int64                  `json:"users"`
	OrdersByStatus map[string]int         `json:"orders_by_status"`
	TopSelling     []models.Medicine      `json:"top_selling"`
	LowStock       []models.Medicine      `json:"low_stock"`
	RecentOrders   []models.Order         `json:"recent_orders"`
}

func (s *DashboardService) Overview() (Overview, error) {
	stats, err := s.orders.Stats()
	if err != nil {
		return Overview{}, err
	}

	userCount, err := s.users.Count()
	if err != nil {
		return Overview{}, err
	}

	recent, err := s.orders.Recent(10)
	if err != nil {
		return Overview{}, err
	}

	topSelling, err := s.medicines.TopSelling(5)
	if err != nil {
		return Overview{}, err
	}

	lowStock, err := s.medicines.LowStock(config.LowStockThreshold())
	if err != nil {
		return Overview{}, err
	}

	grouped := collection.GroupBy(recent, func(o models.Order) string { return o.Status })
	byStatus := make(map[string]int, len(grouped))
	for status, orders := range grouped {
		byStatus[status] = len(orders)
	}

	return Overview{
		Orders:         stats.Orders,
		Revenue:        stats.Revenue,
		Users:          userCount,
		OrdersByStatus: byStatus,
		TopSelling:     topSelling,
		LowStock:       lowStock,
		RecentOrders:   recent,
	}, nil
}

// SalesReport breaks non-cancelled orders down per calendar day. Bounds
// are inclusive YYYY-MM-DD strings; an empty bound leaves that side open.
func (s *DashboardService) SalesReport(start, end string) ([]repositories.SalesRow, error) {
	for _, bound := range []string{start, end} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", bound); err != nil {
			return nil, ErrBadDateRange
		}
	}
	return s.orders.SalesByDay(start, end)
}

// OrderSummary is one order on the account summary, with the line item
// names flattened into a single display string.
type OrderSummary struct {
	ID     uint      `json:"id"`
	Total  float64   `json:"total"`
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
	Items  string    `json:"items"`
}

// AccountSummary is the signed-in user's dashboard payload.
type AccountSummary struct {
	Orders []OrderSummary              `json:"orders"`
	Stats  repositories.UserOrderStats `json:"stats"`
	Cart   int64                       `json:"cart_items"`
}

// ForUser builds the account summary: the ten newest orders with their
// item names, lifetime order stats, and the current cart size.
func (s *DashboardService) ForUser(userID uint) (AccountSummary, error) {
	recent, err := s.orders.RecentForUser(userID, 10)
	if err != nil {
		return AccountSummary{}, err
	}

	stats, err := s.orders.StatsForUser(userID)
	if err != nil {
		return AccountSummary{}, err
	}

	cartCount, err := s.carts.Count(userID)
	if err != nil {
		return AccountSummary{}, err
	}

	summaries := collection.Map(recent, func(o models.Order) OrderSummary {
		names := collection.Map(o.Items, func(i models.OrderItem) string { return i.Medicine.Name })
		return OrderSummary{
			ID:     o.ID,
			Total:  o.Total,
			Status: o.Status,
			Date:   o.CreatedAt,
			Items:  strings.Join(names, ", "),
		}
	})

	return AccountSummary{Orders: summaries, Stats: stats, Cart: cartCount}, nil
}
