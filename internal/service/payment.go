package service

import (
	"context"
	"fmt"

	"voltrent-backend/internal/config"
	"voltrent-backend/internal/logger"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/refund"
)

type stripePaymentService struct {
	successURL string
	cancelURL  string
}

func NewStripePaymentService(cfg config.StripeConfig) PaymentService {
	stripe.Key = cfg.APIKey
	return &stripePaymentService{
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

// CreateDepositSession opens a checkout session for the rental deposit and
// returns the hosted payment URL plus the session ID kept for refunds.
func (s *stripePaymentService) CreateDepositSession(ctx context.Context, amount int64, currency, rentalCode, customerEmail string) (string, string, error) {
	logger.ExternalServiceCall("stripe", "create_checkout_session", "rental", rentalCode, "amount", amount)

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Deposit for rental %s", rentalCode)),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(s.successURL),
		CancelURL:     stripe.String(s.cancelURL),
		CustomerEmail: stripe.String(customerEmail),
	}
	params.AddMetadata("rental_code", rentalCode)

	sess, err := session.New(params)
	logger.ExternalServiceResult("stripe", "create_checkout_session", err, "rental", rentalCode)
	if err != nil {
		return "", "", err
	}
	return sess.URL, sess.ID, nil
}

func (s *stripePaymentService) RefundBySessionID(ctx context.Context, sessionID string, amount int64) error {
	logger.ExternalServiceCall("stripe", "refund", "session_id", sessionID, "amount", amount)

	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return err
	}
	if sess.PaymentIntent == nil || sess.PaymentIntent.ID == "" {
		return fmt.Errorf("no payment intent found for session %s", sessionID)
	}

	// Amount is always set; leaving it off would refund the whole payment
	// even when only part of the deposit is owed back.
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(sess.PaymentIntent.ID),
		Amount:        stripe.Int64(amount),
	}
	_, err = refund.New(params)
	logger.ExternalServiceResult("stripe", "refund", err, "session_id", sessionID)
	return err
}
