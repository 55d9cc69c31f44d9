package postgres

import (
	"context"
	"database/sql"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error {
	query := `INSERT INTO ledger_transactions (customer_id, rental_id, amount, type, description, created_on)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		tx.CustomerID, tx.RentalID, tx.Amount, tx.Type, tx.Description, time.Now().UTC()).Scan(&tx.ID)
}

func (r *ledgerRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.LedgerTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, customer_id, rental_id, amount, type, description, created_on
		 FROM ledger_transactions WHERE rental_id = $1 ORDER BY created_on`, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *ledgerRepository) ListByCustomer(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM ledger_transactions WHERE customer_id = $1`, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, customer_id, rental_id, amount, type, description, created_on
		 FROM ledger_transactions WHERE customer_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`,
		customerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	txs, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}

func (r *ledgerRepository) GetSummary(ctx context.Context, customerID int32) (*domain.LedgerSummary, error) {
	summary := &domain.LedgerSummary{}
	query := `SELECT
		COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0),
		count(*)
		FROM ledger_transactions WHERE customer_id = $1`
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&summary.TotalPaid, &summary.TotalRefunded, &summary.Transactions)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func scanTransactions(rows *sql.Rows) ([]domain.LedgerTransaction, error) {
	var txs []domain.LedgerTransaction
	for rows.Next() {
		var tx domain.LedgerTransaction
		if err := rows.Scan(&tx.ID, &tx.CustomerID, &tx.RentalID, &tx.Amount, &tx.Type, &tx.Description, &tx.CreatedOn); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
