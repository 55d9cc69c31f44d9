package jobs

import (
	"context"
	"time"

	"voltrent-backend/internal/logger"
)

// SendReturnReminders emails and texts customers whose ongoing rental ends
// within the next 24 hours.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		query := `
			SELECT r.code, r.end_at, c.name, c.email, c.phone_number
			FROM rentals r
			JOIN customers c ON c.id = r.customer_id
			WHERE r.state = 'ONGOING'
			  AND r.end_at > $1
			  AND r.end_at <= $2
		`

		rows, err := jr.db.QueryContext(ctx, query, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to query rentals ending soon", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var code, name, email, phone string
			var endAt time.Time
			if err := rows.Scan(&code, &endAt, &name, &email, &phone); err != nil {
				logger.Error("Failed to scan rental ending soon", "error", err)
				continue
			}

			if err := jr.services.Email.SendReturnReminder(ctx, email, name, code, endAt); err != nil {
				logger.Error("Failed to send reminder email", "rental", code, "error", err)
			}
			if phone != "" {
				if err := jr.services.SMS.SendReturnReminder(ctx, phone, code, endAt); err != nil {
					logger.Error("Failed to send reminder SMS", "rental", code, "error", err)
				}
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating rentals ending soon", "error", err)
			return
		}

		logger.Info("Sent return reminders", "count", count)
	})
}
