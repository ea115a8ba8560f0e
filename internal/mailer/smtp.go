package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"clinic-appointment-backend/internal/config"
)

// SMTP delivers mail through a plain SMTP relay. With no host configured
// it logs messages instead of sending, which is the development mode.
type SMTP struct {
	cfg config.SMTPConfig
}

func NewSMTP(cfg config.SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

// Send delivers a single plain-text message
func (m *SMTP) Send(fromName, from, to, subject, body string) error {
	if m.cfg.Host == "" {
		log.Printf("Email (not sent, no SMTP host) from %s <%s> to %s", fromName, from, to)
		log.Printf("Subject: %s", subject)
		log.Printf("Body: %s", body)
		return nil
	}

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n",
		fromName, from, to, subject, body))

	addr := m.cfg.Host + ":" + m.cfg.Port

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	return smtp.SendMail(addr, auth, from, []string{to}, msg)
}
