package pricing

import (
	"testing"
	"time"

	"voltrent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

var offPeakCard = domain.RateCard{
	HourlyRate:       50000,
	DailyRate:        300000,
	InsuranceRatePct: 0.10,
	TaxRatePct:       0.10,
	DepositRatePct:   0.20,
}

func dailyWindow(start time.Time, days int32) domain.RentalWindow {
	return domain.RentalWindow{
		RentalType: domain.RentalTypeDaily,
		StartAt:    start,
		EndAt:      start.AddDate(0, 0, int(days-1)),
		Days:       days,
	}
}

func TestEngine_Quote_Daily(t *testing.T) {
	engine := NewEngine(PeakBand{})
	// Mon-Wed, no weekend involved.
	window := dailyWindow(time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC), 3)

	t.Run("Reference breakdown with insurance", func(t *testing.T) {
		b := engine.Quote(offPeakCard, window, true)

		assert.Equal(t, int64(900000), b.BasePrice)
		assert.Equal(t, int64(90000), b.InsurancePrice)
		assert.Equal(t, int64(99000), b.Taxes)
		assert.Equal(t, int64(1089000), b.TotalPrice)
		assert.Equal(t, int64(217800), b.DepositRequired)
		assert.Equal(t, float64(72), b.Hours)
		assert.Equal(t, 1.0, b.PeakMultiplierApplied)
		assert.Equal(t, 1.0, b.WeekendMultiplierApplied)
	})

	t.Run("No insurance means zero insurance price", func(t *testing.T) {
		b := engine.Quote(offPeakCard, window, false)

		assert.Equal(t, int64(0), b.InsurancePrice)
		assert.Equal(t, int64(900000), b.BasePrice)
		assert.Equal(t, int64(90000), b.Taxes)
		assert.Equal(t, int64(990000), b.TotalPrice)
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := engine.Quote(offPeakCard, window, true)
		second := engine.Quote(offPeakCard, window, true)
		assert.Equal(t, first, second)
	})
}

func TestEngine_Quote_Hourly(t *testing.T) {
	engine := NewEngine(PeakBand{StartHour: 17, EndHour: 21})

	t.Run("Fractional hours", func(t *testing.T) {
		start := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
		window := domain.RentalWindow{
			RentalType: domain.RentalTypeHourly,
			StartAt:    start,
			EndAt:      start.Add(2*time.Hour + 30*time.Minute),
		}

		b := engine.Quote(offPeakCard, window, false)
		assert.Equal(t, 2.5, b.Hours)
		assert.Equal(t, int64(125000), b.BasePrice)
	})

	t.Run("Peak band overlap applies the multiplier", func(t *testing.T) {
		card := offPeakCard
		card.PeakMultiplier = 1.25

		start := time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC)
		window := domain.RentalWindow{
			RentalType: domain.RentalTypeHourly,
			StartAt:    start,
			EndAt:      start.Add(2 * time.Hour),
		}

		b := engine.Quote(card, window, false)
		assert.Equal(t, 1.25, b.PeakMultiplierApplied)
		assert.Equal(t, int64(125000), b.BasePrice)
	})

	t.Run("Window outside the band stays off-peak", func(t *testing.T) {
		card := offPeakCard
		card.PeakMultiplier = 1.25

		start := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
		window := domain.RentalWindow{
			RentalType: domain.RentalTypeHourly,
			StartAt:    start,
			EndAt:      start.Add(3 * time.Hour),
		}

		b := engine.Quote(card, window, false)
		assert.Equal(t, 1.0, b.PeakMultiplierApplied)
	})

	t.Run("Weekend day applies the multiplier", func(t *testing.T) {
		card := offPeakCard
		card.WeekendMultiplier = 1.5

		start := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC) // Saturday
		window := domain.RentalWindow{
			RentalType: domain.RentalTypeHourly,
			StartAt:    start,
			EndAt:      start.Add(4 * time.Hour),
		}

		b := engine.Quote(card, window, false)
		assert.Equal(t, 1.5, b.WeekendMultiplierApplied)
		assert.Equal(t, int64(300000), b.BasePrice)
	})
}

func TestEngine_Quote_MultiplierComposition(t *testing.T) {
	engine := NewEngine(PeakBand{StartHour: 17, EndHour: 21})

	card := offPeakCard
	card.PeakMultiplier = 1.2
	card.WeekendMultiplier = 1.5

	// Fri-Sun: spans a weekend and (being over 24h) the daily peak band.
	window := dailyWindow(time.Date(2025, 6, 13, 8, 0, 0, 0, time.UTC), 3)

	b := engine.Quote(card, window, false)
	assert.Equal(t, 1.2, b.PeakMultiplierApplied)
	assert.Equal(t, 1.5, b.WeekendMultiplierApplied)
	// 3 * 300000 * 1.2 * 1.5, rounded once after both multipliers.
	assert.Equal(t, int64(1620000), b.BasePrice)
}

func TestEngine_Quote_RoundsHalfUpPerStep(t *testing.T) {
	engine := NewEngine(PeakBand{})

	card := domain.RateCard{
		HourlyRate:       75,
		InsuranceRatePct: 0.10,
		TaxRatePct:       0.10,
		DepositRatePct:   0.25,
	}
	start := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	window := domain.RentalWindow{
		RentalType: domain.RentalTypeHourly,
		StartAt:    start,
		EndAt:      start.Add(2 * time.Hour),
	}

	b := engine.Quote(card, window, true)
	assert.Equal(t, int64(150), b.BasePrice)
	assert.Equal(t, int64(15), b.InsurancePrice)
	assert.Equal(t, int64(17), b.Taxes) // 16.5 rounds up
	assert.Equal(t, int64(182), b.TotalPrice)
	assert.Equal(t, int64(46), b.DepositRequired) // 45.5 rounds up
}
