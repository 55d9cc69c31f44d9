package service

import (
	"context"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

func (s *ledgerService) GetRentalTransactions(ctx context.Context, rentalID int32) ([]domain.LedgerTransaction, error) {
	return s.ledgerRepo.ListByRental(ctx, rentalID)
}

func (s *ledgerService) GetTransactions(ctx context.Context, customerID, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	return s.ledgerRepo.ListByCustomer(ctx, customerID, page, pageSize)
}

func (s *ledgerService) GetLedgerSummary(ctx context.Context, customerID int32) (*domain.LedgerSummary, error) {
	return s.ledgerRepo.GetSummary(ctx, customerID)
}
