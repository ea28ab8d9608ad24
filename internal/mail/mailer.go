package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends outbound mail. Abstracted so services can be tested without
// an SMTP server.
type Mailer interface {
	SendPasswordReset(to, username, link string) error
}

// SMTPMailer sends mail through an authenticated SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer. The configured username doubles as the
// sender address.
func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
	}
}

// SendPasswordReset mails the recovery link to a registered address.
func (m *SMTPMailer) SendPasswordReset(to, username, link string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s, use this link to reset your password: %s", username, link))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
