package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"

	"propertydesk-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, booking *domain.Booking, property *domain.Property) error {
	subject := fmt.Sprintf("Booking confirmed - %s", property.Name)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking at %s is confirmed.\n\nCheck-in: %s\nCheck-out: %s\nNights: %d\nTotal: %s\n\nWe look forward to hosting you.",
		booking.GuestName, property.Name,
		booking.CheckInDate.Format("2006-01-02"), booking.CheckOutDate.Format("2006-01-02"),
		booking.NumberOfNights, booking.TotalAmount.StringFixed(2))
	return s.send(booking.GuestEmail, booking.GuestName, subject, body)
}

func (s *emailService) SendBookingCancellation(ctx context.Context, booking *domain.Booking, property *domain.Property) error {
	subject := fmt.Sprintf("Booking cancelled - %s", property.Name)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking at %s for %s to %s has been cancelled.\n\nIf this is unexpected, please contact us.",
		booking.GuestName, property.Name,
		booking.CheckInDate.Format("2006-01-02"), booking.CheckOutDate.Format("2006-01-02"))
	return s.send(booking.GuestEmail, booking.GuestName, subject, body)
}

func (s *emailService) SendCheckInReminder(ctx context.Context, booking *domain.Booking, property *domain.Property) error {
	subject := fmt.Sprintf("Check-in tomorrow - %s", property.Name)
	body := fmt.Sprintf(
		"Hello %s,\n\nA reminder that your stay at %s starts on %s.\n\nAddress: %s\n\nSafe travels!",
		booking.GuestName, property.Name,
		booking.CheckInDate.Format("2006-01-02"), property.Address)
	return s.send(booking.GuestEmail, booking.GuestName, subject, body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, booking *domain.Booking, amount decimal.Decimal) error {
	subject := "Payment received"
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your payment of %s.\n\nPaid so far: %s\nRemaining balance: %s\n\nThank you.",
		booking.GuestName, amount.StringFixed(2),
		booking.PaidAmount.StringFixed(2), booking.RemainingAmount.StringFixed(2))
	return s.send(booking.GuestEmail, booking.GuestName, subject, body)
}
