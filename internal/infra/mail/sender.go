package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/aaacapital/site-api/internal/usecase"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	AdminTo  string
}

func NewEmailSender(host string, port int, user, password, from, adminTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		AdminTo:  adminTo,
	}
}

// SendLeadNotification emails the admin address about a freshly captured
// lead. Callers treat failures as fire-and-forget.
func (s *EmailSender) SendLeadNotification(payload usecase.LeadCapturedPayload) error {
	if s.AdminTo == "" {
		return nil
	}

	tmplPath := filepath.Join("templates", "lead_notification.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, payload); err != nil {
		return fmt.Errorf("rendering email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.AdminTo)
	m.SetHeader("Subject", fmt.Sprintf("New Lead: %s", payload.Name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending SMTP mail: %w", err)
	}

	return nil
}
