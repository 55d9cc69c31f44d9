package service

import (
	"context"
	"fmt"
	"time"

	"voltrent-backend/internal/config"
	"voltrent-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.SendGridConfig) EmailService {
	return &emailService{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *emailService) send(toEmail, toName, subject, body string) error {
	if s.apiKey == "" {
		logger.Warn("sendgrid api key not configured, skipping email", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendRentalHeldNotification(ctx context.Context, email, name, code string, depositRequired int64, paymentURL string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s is on hold. Pay the deposit of %d to confirm it:\n\n%s\n\nThe hold is released automatically if the deposit is not paid in time.\n\nThe VoltRent Team", name, code, depositRequired, paymentURL)
	return s.send(email, name, fmt.Sprintf("Rental %s held - deposit required", code), body)
}

func (s *emailService) SendRentalConfirmedNotification(ctx context.Context, email, name, code string, startAt time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s is confirmed. Pick up the vehicle at the station from %s.\n\nThe VoltRent Team", name, code, startAt.Format("Mon, 02 Jan 2006 15:04 MST"))
	return s.send(email, name, fmt.Sprintf("Rental %s confirmed", code), body)
}

func (s *emailService) SendRentalCancelledNotification(ctx context.Context, email, name, code string, refunded int64) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s was cancelled.", name, code)
	if refunded > 0 {
		body += fmt.Sprintf(" Your deposit of %d will be refunded to your original payment method.", refunded)
	}
	body += "\n\nThe VoltRent Team"
	return s.send(email, name, fmt.Sprintf("Rental %s cancelled", code), body)
}

func (s *emailService) SendRentalExpiredNotification(ctx context.Context, email, name, code string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s expired because the deposit was not paid within the hold window. The vehicle is available for booking again.\n\nThe VoltRent Team", name, code)
	return s.send(email, name, fmt.Sprintf("Rental %s expired", code), body)
}

func (s *emailService) SendSettlementNotification(ctx context.Context, email, name, code string, finalAmount int64) error {
	var detail string
	switch {
	case finalAmount > 0:
		detail = fmt.Sprintf("After applying your deposit, the remaining charge is %d.", finalAmount)
	case finalAmount < 0:
		detail = fmt.Sprintf("After applying your deposit, a refund of %d is on its way to you.", -finalAmount)
	default:
		detail = "Your deposit covered the charges exactly, nothing more is due."
	}
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s has been settled. %s\n\nThe VoltRent Team", name, code, detail)
	return s.send(email, name, fmt.Sprintf("Rental %s settled", code), body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name, code string, endAt time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nA reminder that your rental %s ends at %s. Please return the vehicle to the station on time to avoid late fees.\n\nThe VoltRent Team", name, code, endAt.Format("Mon, 02 Jan 2006 15:04 MST"))
	return s.send(email, name, fmt.Sprintf("Rental %s return reminder", code), body)
}
