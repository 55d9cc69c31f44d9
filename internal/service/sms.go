package service

import (
	"context"
	"fmt"
	"time"

	"voltrent-backend/internal/config"
	"voltrent-backend/internal/logger"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type smsService struct {
	client *twilio.RestClient
	from   string
}

func NewSMSService(cfg config.TwilioConfig) SMSService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &smsService{client: client, from: cfg.FromNumber}
}

func (s *smsService) send(phone, body string) error {
	if s.from == "" {
		logger.Warn("twilio from number not configured, skipping sms", "to", phone)
		return nil
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

func (s *smsService) SendReturnReminder(ctx context.Context, phone, code string, endAt time.Time) error {
	return s.send(phone, fmt.Sprintf("VoltRent: rental %s ends at %s. Please return the vehicle on time.", code, endAt.Format("15:04 Jan 2")))
}

func (s *smsService) SendOverdueAlert(ctx context.Context, phone, code string, endAt time.Time) error {
	return s.send(phone, fmt.Sprintf("VoltRent: rental %s was due back at %s and is now overdue. Late fees apply.", code, endAt.Format("15:04 Jan 2")))
}
