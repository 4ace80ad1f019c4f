package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"strings"
)

// OrderEmailData feeds the confirmation template.
type OrderEmailData struct {
	Name    string
	Message string
	OrderID string
	Total   float64
	LogoURL string
}

// SendEmail renders the template and delivers it as an HTML mail
// through the SMTP relay configured in the environment.
func SendEmail(emailTo string, subject string, data OrderEmailData, templatePath string) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	from := os.Getenv("FROM_EMAIL")

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", emailTo)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body.String())

	auth := smtp.PlainAuth("", from, os.Getenv("FROM_EMAIL_PASSWORD"), os.Getenv("FROM_EMAIL_SMTP"))
	if err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, from, []string{emailTo}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
