package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// SendMail delivers a plain-text email through the SMTP server configured in
// the environment. When SMTP_HOST is unset (local development) the message is
// written to the log instead, so reset links remain usable without a mail
// server. Callers treat delivery as fire-and-forget.
func SendMail(recipient, subject, body string) {
	host := os.Getenv("SMTP_HOST")

	if host == "" {
		log.Printf("SMTP_HOST not set, email to %s:\nSubject: %s\n%s", recipient, subject, body)
		return
	}

	port := os.Getenv("SMTP_PORT")

	if port == "" {
		port = "587"
	}

	from := os.Getenv("SMTP_FROM")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", from, recipient, subject, body)

	var auth smtp.Auth

	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	if err := smtp.SendMail(host+":"+port, auth, from, []string{recipient}, []byte(msg)); err != nil {
		log.Printf("Failed to send email to %s: %v", recipient, err)
	}
}
