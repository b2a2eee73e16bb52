// internal/dispatch/smtp.go
package dispatch

import (
	"context"

	"gopkg.in/gomail.v2"
)

// smtpSender is the slice of gomail used here, defined for mocking.
type smtpSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSink delivers alerts through an SMTP relay.
type SMTPSink struct {
	sender smtpSender
}

func NewSMTPSink(host string, port int, username, password string) *SMTPSink {
	return &SMTPSink{sender: gomail.NewDialer(host, port, username, password)}
}

func newSMTPSinkWithSender(sender smtpSender) *SMTPSink {
	return &SMTPSink{sender: sender}
}

func (s *SMTPSink) Name() string {
	return "smtp"
}

func (s *SMTPSink) Attempt(_ context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	return s.sender.DialAndSend(m)
}
