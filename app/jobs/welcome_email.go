package jobs

import (
	"fmt"

	"github.com/hassanmehmood/medicart/app/notifications"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/pkg/database"
	"github.com/hassanmehmood/medicart/pkg/notification"
)

// WelcomeEmailJob greets a new account after signup.
type WelcomeEmailJob struct {
	UserID uint `json:"user_id"`
}

func (j *WelcomeEmailJob) Handle() error {
	users := repositories.NewUserRepository(database.DB)

	user, err := users.FindByID(j.UserID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", j.UserID, err)
	}

	if errs := notification.Send(user.Email, user.ID, &notifications.Welcome{User: user}); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
