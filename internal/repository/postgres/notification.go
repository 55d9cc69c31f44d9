package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	attrs, err := json.Marshal(note.Attributes)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (customer_id, title, message, is_read, attributes, created_on)
		VALUES ($1, $2, $3, false, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		note.CustomerID, note.Title, note.Message, attrs, time.Now().UTC()).Scan(&note.ID)
}

func (r *notificationRepository) List(ctx context.Context, customerID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM notifications WHERE customer_id = $1 AND NOT is_read`, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, customer_id, title, message, is_read, attributes, created_on
		 FROM notifications WHERE customer_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var note domain.Notification
		var attrs []byte
		if err := rows.Scan(&note.ID, &note.CustomerID, &note.Title, &note.Message, &note.IsRead, &attrs, &note.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &note.Attributes); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, note)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, customerID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND customer_id = $2`, id, customerID)
	return err
}
