package notification

import (
	"tripmart/config"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends mail through the configured SMTP relay.
type SMTPMailer struct{}

func (SMTPMailer) Send(to, subject, htmlBody string) error {
	cfg := config.AppConfig

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return d.DialAndSend(m)
}
