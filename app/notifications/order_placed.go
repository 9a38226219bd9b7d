package notifications

import (
	"fmt"
	"strings"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/notification"
)

// OrderPlaced confirms a committed checkout to the customer by email and
// drops a copy in their in-app inbox.
type OrderPlaced struct {
	User  models.User
	Order models.Order
}

func (n *OrderPlaced) Via() []string { return []string{"mail", "database"} }

func (n *OrderPlaced) ToMail() notification.MailData {
	var lines strings.Builder
	for _, item := range n.Order.Items {
		fmt.Fprintf(&lines, "<li>%s × %d — %.2f</li>", item.Medicine.Name, item.Quantity, item.Price)
	}

	body := fmt.Sprintf(
		"<h2>Thanks for your order, %s!</h2>"+
			"<p>Order #%d has been placed.</p>"+
			"<ul>%s</ul>"+
			"<p><strong>Total: %.2f</strong></p>"+
			"<p>Shipping to: %s</p>",
		n.User.Name, n.Order.ID, lines.String(), n.Order.Total, n.Order.ShippingAddress,
	)

	return notification.MailData{
		Subject: fmt.Sprintf("Order #%d confirmed", n.Order.ID),
		Body:    body,
	}
}

func (n *OrderPlaced) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "order.placed",
		Message: fmt.Sprintf("Your order #%d for %.2f has been placed.", n.Order.ID, n.Order.Total),
		Data: map[string]interface{}{
			"order_id": n.Order.ID,
			"total":    n.Order.Total,
			"status":   n.Order.Status,
		},
	}
}
