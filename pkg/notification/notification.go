// Package notification fans a single event out over multiple channels:
// email to the customer, Slack to the ops channel, a row in the
// notifications table for the in-app inbox.
//
//	type OrderPlaced struct{ Order models.Order }
//	func (n *OrderPlaced) Via() []string { return []string{"mail", "database"} }
//	func (n *OrderPlaced) ToMail() notification.MailData { ... }
//
//	notification.Send(user.Email, user.ID, &OrderPlaced{Order: order})
package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/mail"
	"github.com/hassanmehmood/medicart/pkg/workerpool"
)

// MailData is the mail channel payload.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
}

// SlackData is posted to the configured incoming webhook.
type SlackData struct {
	WebhookURL  string // overrides the default if set
	Text        string
	Attachments []SlackAttachment
}

type SlackAttachment struct {
	Color  string `json:"color,omitempty"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// DatabaseData is persisted to the notifications table for the in-app inbox.
type DatabaseData struct {
	Type    string
	Message string
	Data    interface{}
}

// Notification names its delivery channels: "mail", "slack", "database".
type Notification interface {
	Via() []string
}

type Mailable interface {
	ToMail() MailData
}

type Slackable interface {
	ToSlack() SlackData
}

type Databaseable interface {
	ToDatabase() DatabaseData
}

// Store persists a database-channel notification for a user. Wired at boot
// to the notification repository; kept as a hook so this package stays below
// the app layer.
type Store func(userID uint, data DatabaseData) error

var (
	defaultSlackWebhook string
	store               Store
	httpClient          = &http.Client{Timeout: 10 * time.Second}

	// async deliveries share one bounded pool so a slow SMTP server cannot
	// pile up unbounded goroutines.
	pool = workerpool.New(4, 256)
)

func SetSlackWebhook(url string) { defaultSlackWebhook = url }

// SetStore wires the database channel. Without it, database-channel
// notifications are dropped with a warning.
func SetStore(s Store) { store = s }

// Send delivers n over every channel in Via. Channel failures are collected,
// not short-circuited.
func Send(address string, userID uint, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := deliver(address, userID, channel, n); err != nil {
			logger.Error("notification: channel failed", "channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync delivers on the shared pool. Falls back to a plain goroutine
// when the pool is saturated.
func SendAsync(address string, userID uint, n Notification) {
	task := func() { Send(address, userID, n) }
	if err := pool.Submit(task); err != nil {
		go task()
	}
}

func deliver(address string, userID uint, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

	case "slack":
		s, ok := n.(Slackable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Slackable", n)
		}
		return sendSlack(s.ToSlack())

	case "database":
		d, ok := n.(Databaseable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Databaseable", n)
		}
		if store == nil {
			logger.Warn("notification: database channel not wired", "type", fmt.Sprintf("%T", n))
			return nil
		}
		return store(userID, d.ToDatabase())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}
	return mail.New().To(to).Subject(d.Subject).HTML(d.Body).Send()
}

type slackPayload struct {
	Text        string            `json:"text,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

func sendSlack(d SlackData) error {
	url := d.WebhookURL
	if url == "" {
		url = defaultSlackWebhook
	}
	if url == "" {
		return fmt.Errorf("notification: slack webhook not configured")
	}

	raw, err := json.Marshal(slackPayload{Text: d.Text, Attachments: d.Attachments})
	if err != nil {
		return fmt.Errorf("notification: marshal slack payload: %w", err)
	}

	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("notification: slack post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification: slack returned %d", resp.StatusCode)
	}
	return nil
}
