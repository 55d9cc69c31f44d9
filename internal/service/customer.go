package service

import (
	"context"
	"database/sql"
	"errors"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Register(ctx context.Context, customer *domain.Customer) error {
	existing, err := s.customerRepo.GetByEmail(ctx, customer.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}
	return s.customerRepo.Create(ctx, customer)
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}
