package pricing

import (
	"fmt"
	"time"

	"voltrent-backend/internal/domain"
)

// ValidationReason is a machine-readable reason code so callers can localize
// the user-facing message instead of parsing error text.
type ValidationReason string

const (
	ReasonMissingPeriod      ValidationReason = "missing_period"
	ReasonTooShort           ValidationReason = "too_short"
	ReasonTooLong            ValidationReason = "too_long"
	ReasonStartsInPast       ValidationReason = "starts_in_past"
	ReasonCrossesDayBoundary ValidationReason = "crosses_day_boundary"
)

type ValidationError struct {
	Reason  ValidationReason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid rental period (%s): %s", e.Reason, e.Message)
}

func invalid(reason ValidationReason, format string, args ...any) error {
	return &ValidationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

const (
	minHourlyLeadTime = 30 * time.Minute
	minHourlyDuration = 2 * time.Hour
	maxHourlyDuration = 12 * time.Hour
	minDailyDays      = 1
	maxDailyDays      = 30
)

// ValidateWindow checks a candidate rental period against the rules of its
// rental type and returns an immutable RentalWindow on success.
//
// Hourly rentals must start and end on the same calendar day as now, start
// at least 30 minutes from now, and last between 2 and 12 hours. Daily
// rentals may start today or later and run 1 to 30 days, counting both the
// start and the end dates.
//
// The caller always passes now explicitly; the validator never reads the
// wall clock.
func ValidateWindow(rentalType domain.RentalType, startAt, endAt, now time.Time) (domain.RentalWindow, error) {
	if startAt.IsZero() || endAt.IsZero() {
		return domain.RentalWindow{}, invalid(ReasonMissingPeriod, "start and end times are required")
	}

	switch rentalType {
	case domain.RentalTypeHourly:
		return validateHourly(startAt, endAt, now)
	case domain.RentalTypeDaily:
		return validateDaily(startAt, endAt, now)
	default:
		return domain.RentalWindow{}, invalid(ReasonMissingPeriod, "unknown rental type %q", rentalType)
	}
}

func validateHourly(startAt, endAt, now time.Time) (domain.RentalWindow, error) {
	if !sameDate(startAt, now) || !sameDate(endAt, now) {
		return domain.RentalWindow{}, invalid(ReasonCrossesDayBoundary,
			"hourly rentals must start and end on %s", dateOf(now).Format("2006-01-02"))
	}
	if startAt.Before(now.Add(minHourlyLeadTime)) {
		return domain.RentalWindow{}, invalid(ReasonStartsInPast,
			"hourly rentals must start at least %s from now", minHourlyLeadTime)
	}

	duration := endAt.Sub(startAt)
	if duration < minHourlyDuration {
		return domain.RentalWindow{}, invalid(ReasonTooShort,
			"hourly rentals must last at least %s", minHourlyDuration)
	}
	if duration > maxHourlyDuration {
		return domain.RentalWindow{}, invalid(ReasonTooLong,
			"hourly rentals must not exceed %s", maxHourlyDuration)
	}

	return domain.RentalWindow{
		RentalType: domain.RentalTypeHourly,
		StartAt:    startAt,
		EndAt:      endAt,
	}, nil
}

func validateDaily(startAt, endAt, now time.Time) (domain.RentalWindow, error) {
	startDate := dateOf(startAt)
	endDate := dateOf(endAt)

	if startDate.Before(dateOf(now)) {
		return domain.RentalWindow{}, invalid(ReasonStartsInPast,
			"daily rentals cannot start before today")
	}

	// Both the start and the end dates count toward the duration.
	days := int32(endDate.Sub(startDate).Hours()/24) + 1
	if days < minDailyDays {
		return domain.RentalWindow{}, invalid(ReasonTooShort,
			"daily rentals must last at least %d day", minDailyDays)
	}
	if days > maxDailyDays {
		return domain.RentalWindow{}, invalid(ReasonTooLong,
			"daily rentals must not exceed %d days", maxDailyDays)
	}

	return domain.RentalWindow{
		RentalType: domain.RentalTypeDaily,
		StartAt:    startAt,
		EndAt:      endAt,
		Days:       days,
	}, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
