package service

import (
	"fmt"
	"os"
	"strings"

	"carpark/internal/db"
	"carpark/internal/interval"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NotifyService sends booking confirmations by email and SMS. Sends run in
// the background: notification failures are logged and never surface to the
// caller, a booking write must not fail because a provider is down.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (n *NotifyService) BookingChanged(b *db.Booking, emp *db.Employee, status string) {
	if b == nil || emp == nil {
		return
	}
	subject, body := bookingMessage(b, emp, status)

	if emp.Email != "" {
		go func(to, name string) {
			if err := sendEmailWithSendGrid(to, name, subject, body); err != nil {
				log.Printf("Error sending booking email to %s: %v", to, err)
			}
		}(emp.Email, emp.FullName)
	}
	if emp.Phone != "" {
		go func(to string) {
			if err := sendSMS(to, body); err != nil {
				log.Printf("Error sending booking SMS to %s: %v", to, err)
			}
		}(emp.Phone)
	}
}

func bookingMessage(b *db.Booking, emp *db.Employee, status string) (subject, body string) {
	end := b.BookingEnd.Format(dateLayout)
	if interval.IsIndefiniteDate(b.BookingEnd) {
		end = "indefinite"
	}
	subject = fmt.Sprintf("Parking booking %s %s", b.Code, status)
	body = fmt.Sprintf("Hi %s, your parking booking %s is %s: spot %d from %s to %s.",
		emp.FullName, b.Code, status, b.SpotID, b.BookingStart.Format(dateLayout), end)
	return subject, body
}

func sendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not configured")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not configured")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Carpark"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, plainTextContent)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email through SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func sendSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("twilio credentials are not fully configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("Warning: destination number %q is not in E.164 format, the SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
