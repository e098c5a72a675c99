package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// GeneratePin returns a 6-digit verification code.
func GeneratePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SendVerificationEmail mails the PIN via SendGrid.
func SendVerificationEmail(log *logrus.Logger, toEmail, username, pin string) error {
	from := mail.NewEmail("Lost & Found Hub", os.Getenv("MAIL_FROM"))
	to := mail.NewEmail(username, toEmail)
	subject := "Verify your email address"
	plainText := fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in 15 minutes.", username, pin)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in 15 minutes.</p>", username, pin)

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		log.WithError(err).WithField("to", toEmail).Error("failed to send verification email")
		return err
	}
	if response.StatusCode >= 400 {
		log.WithFields(logrus.Fields{"status": response.StatusCode, "to": toEmail}).Error("sendgrid returned error status")
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	return nil
}
