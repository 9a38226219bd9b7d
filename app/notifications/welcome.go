package notifications

import (
	"fmt"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/notification"
)

// Welcome greets a freshly registered account.
type Welcome struct {
	User models.User
}

func (n *Welcome) Via() []string { return []string{"mail", "database"} }

func (n *Welcome) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Welcome to Medicart",
		Body: fmt.Sprintf(
			"<h2>Hi %s,</h2><p>Your Medicart account is ready. Browse the catalog and order your medicines with doorstep delivery.</p>",
			n.User.Name,
		),
	}
}

func (n *Welcome) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "account.created",
		Message: "Welcome to Medicart! Your account has been created.",
	}
}
