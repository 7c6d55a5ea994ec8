package mailer

import (
	"errors"

	"github.com/thriveafrica/tractor-api/config"
	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("email configuration is not set up")

// Sender delivers transactional emails. Callers treat failures as
// non-fatal: a booking state change is never rolled back because a
// notification could not be sent.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SMTPSender struct {
	cfg *config.MailConfig
}

func New(cfg *config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	if s.cfg == nil || !s.cfg.IsConfigured() {
		return ErrNotConfigured
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, "Thrive Africa Tractor")
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	return d.DialAndSend(m)
}
