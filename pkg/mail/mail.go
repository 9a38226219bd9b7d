// Package mail sends SMTP email with a small fluent builder.
//
//	mail.New().
//	    To(user.Email).
//	    Subject("Order confirmed").
//	    HTML(body).
//	    Send()
package mail

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/hassanmehmood/medicart/config"
	"github.com/hassanmehmood/medicart/pkg/logger"
)

// Sender delivers a built message. Swapped for a recorder in tests.
type Sender func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

var send Sender = smtp.SendMail

// SetSender overrides the transport. Intended for tests.
func SetSender(s Sender) { send = s }

type Message struct {
	to      []string
	cc      []string
	subject string
	body    string
	html    bool
}

func New() *Message {
	return &Message{}
}

func (m *Message) To(addrs ...string) *Message {
	m.to = append(m.to, addrs...)
	return m
}

func (m *Message) CC(addrs ...string) *Message {
	m.cc = append(m.cc, addrs...)
	return m
}

func (m *Message) Subject(s string) *Message {
	m.subject = s
	return m
}

func (m *Message) Text(body string) *Message {
	m.body = body
	m.html = false
	return m
}

func (m *Message) HTML(body string) *Message {
	m.body = body
	m.html = true
	return m
}

// Send delivers the message through the configured SMTP server.
func (m *Message) Send() error {
	if len(m.to) == 0 {
		return errors.New("mail: no recipients")
	}

	from := config.MailFrom()
	fromHeader := fmt.Sprintf("%s <%s>", config.MailFromName(), from)

	contentType := "text/plain; charset=UTF-8"
	if m.html {
		contentType = "text/html; charset=UTF-8"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", fromHeader)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.to, ", "))
	if len(m.cc) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(m.cc, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", m.subject)
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n", contentType)
	b.WriteString(m.body)

	addr := config.MailHost() + ":" + config.MailPort()

	var auth smtp.Auth
	if user := config.MailUsername(); user != "" {
		auth = smtp.PlainAuth("", user, config.MailPassword(), config.MailHost())
	}

	recipients := append(append([]string{}, m.to...), m.cc...)
	if err := send(addr, auth, from, recipients, []byte(b.String())); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}

	logger.Info("mail sent", "to", strings.Join(m.to, ","), "subject", m.subject)
	return nil
}
