package mailer

import (
	"errors"
	"net"
	"net/smtp"

	"github.com/jordan-wright/email"
)

var ErrNotConfigured = errors.New("smtp is not configured")

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// sendFunc matches (*email.Email).Send so tests can capture messages
type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

type Mailer struct {
	cfg  Config
	send sendFunc
}

func New(cfg Config) *Mailer {
	return &Mailer{
		cfg: cfg,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.Host != ""
}

// Compose builds the message without sending it
func (m *Mailer) Compose(subject, htmlBody string, to ...string) *email.Email {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = to
	e.Subject = subject
	e.HTML = []byte(htmlBody)
	return e
}

func (m *Mailer) Send(subject, htmlBody string, to ...string) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}
	if len(to) == 0 {
		return errors.New("mailer: no recipients")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	return m.send(m.Compose(subject, htmlBody, to...), addr, auth)
}
