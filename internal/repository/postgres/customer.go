package postgres

import (
	"context"
	"database/sql"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, email, phone_number, license_number, created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, email, phone_number, license_number, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		c.Name, c.Email, c.PhoneNumber, c.LicenseNumber, time.Now().UTC(), time.Now().UTC()).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	return scanCustomer(row)
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
	return scanCustomer(row)
}

func scanCustomer(row *sql.Row) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.LicenseNumber, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}
