package mail

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-gomail/gomail"
)

func smtpDialer() *gomail.Dialer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}
	return gomail.NewDialer(host, port, os.Getenv("Email"), os.Getenv("Password"))
}

// Send delivers a plain text email
func Send(to, subject, body string) error {
	senderEmail := os.Getenv("Email")

	// Compose email message
	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	// Dial to SMTP server and send email
	if err := smtpDialer().DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}

// SendWithAttachment delivers a plain text email with an attachment
func SendWithAttachment(to, subject, body, attachmentName string, attachmentData []byte) error {
	senderEmail := os.Getenv("Email")

	// Compose email message
	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	// Add attachment
	m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachmentData)
		return err
	}))

	// Dial to SMTP server and send email
	if err := smtpDialer().DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}
