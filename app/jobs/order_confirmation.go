// Package jobs defines the background work dispatched onto the queue.
// Every job type is registered by name in Register so the Redis driver can
// rebuild it from its JSON payload.
package jobs

import (
	"fmt"

	"github.com/hassanmehmood/medicart/app/notifications"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/pkg/database"
	"github.com/hassanmehmood/medicart/pkg/notification"
	"github.com/hassanmehmood/medicart/pkg/queue"
)

// Register binds all job types. Call once at boot, before StartWorkers.
func Register() {
	queue.Register("*jobs.OrderConfirmationJob", func() queue.Job { return &OrderConfirmationJob{} })
	queue.Register("*jobs.WelcomeEmailJob", func() queue.Job { return &WelcomeEmailJob{} })
	queue.Register("*jobs.LowStockSweepJob", func() queue.Job { return &LowStockSweepJob{} })
}

// OrderConfirmationJob sends the post-checkout confirmation. Dispatched
// after the transaction commits; a failure here never touches the order.
type OrderConfirmationJob struct {
	OrderID uint `json:"order_id"`
	UserID  uint `json:"user_id"`
}

func (j *OrderConfirmationJob) Handle() error {
	orders := repositories.NewOrderRepository(database.DB)
	users := repositories.NewUserRepository(database.DB)

	order, err := orders.FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("load order %d: %w", j.OrderID, err)
	}

	user, err := users.FindByID(j.UserID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", j.UserID, err)
	}

	if errs := notification.Send(user.Email, user.ID, &notifications.OrderPlaced{User: user, Order: order}); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
