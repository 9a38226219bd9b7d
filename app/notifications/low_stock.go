package notifications

import (
	"fmt"
	"strings"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/notification"
)

// LowStock alerts the ops Slack channel when the nightly sweep finds
// medicines at or below the threshold.
type LowStock struct {
	Medicines []models.Medicine
	Threshold int
}

func (n *LowStock) Via() []string { return []string{"slack"} }

func (n *LowStock) ToSlack() notification.SlackData {
	var b strings.Builder
	for _, m := range n.Medicines {
		fmt.Fprintf(&b, "• %s — %d left\n", m.Name, m.Stock)
	}

	return notification.SlackData{
		Text: fmt.Sprintf("%d medicines at or below stock threshold %d", len(n.Medicines), n.Threshold),
		Attachments: []notification.SlackAttachment{{
			Color: "warning",
			Title: "Low stock",
			Text:  b.String(),
		}},
	}
}
