package util

import (
	"gopkg.in/gomail.v2"
)

// SendEmail sends a plain text message to every receiver over SMTP.
func SendEmail(smtpHost string, smtpPort int, senderName string, senderEmail string, senderPassword string, receiverEmails []string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", mailer.FormatAddress(senderEmail, senderName))
	mailer.SetHeader("To", receiverEmails...)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/plain", body)

	dialer := gomail.NewDialer(
		smtpHost,
		smtpPort,
		senderEmail,
		senderPassword,
	)

	err := dialer.DialAndSend(mailer)
	if err != nil {
		return err
	}

	return nil
}
