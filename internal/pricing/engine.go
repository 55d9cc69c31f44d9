package pricing

import (
	"math"
	"time"

	"voltrent-backend/internal/domain"
)

// PeakBand is a daily hour range [StartHour, EndHour) during which the rate
// card's peak multiplier applies. A zero band disables peak pricing.
type PeakBand struct {
	StartHour int
	EndHour   int
}

func (b PeakBand) enabled() bool {
	return b.StartHour != b.EndHour
}

// Engine computes deterministic price breakdowns. Quote is a pure function:
// identical inputs always produce an identical breakdown, so quotes can be
// recomputed any number of times before confirmation.
type Engine struct {
	peak PeakBand
}

func NewEngine(peak PeakBand) *Engine {
	return &Engine{peak: peak}
}

// Quote prices a validated rental window against a rate card snapshot.
//
// Rounding is half-up at every step, not only at the end, so the
// intermediate subtotals shown to the customer reproduce exactly.
func (e *Engine) Quote(card domain.RateCard, window domain.RentalWindow, insuranceSelected bool) domain.PriceBreakdown {
	var hours float64
	var base float64
	if window.RentalType == domain.RentalTypeDaily {
		hours = float64(window.Days) * 24
		base = hours * float64(card.DailyRate) / 24
	} else {
		hours = window.EndAt.Sub(window.StartAt).Hours()
		base = hours * float64(card.HourlyRate)
	}

	// Multipliers compose as a simple sequential product: peak first, then
	// weekend, with one rounding after both.
	peakApplied := 1.0
	if card.PeakMultiplier > 0 && e.overlapsPeak(window) {
		peakApplied = card.PeakMultiplier
	}
	weekendApplied := 1.0
	if card.WeekendMultiplier > 0 && touchesWeekend(window) {
		weekendApplied = card.WeekendMultiplier
	}

	basePrice := roundHalfUp(base * peakApplied * weekendApplied)

	var insurancePrice int64
	if insuranceSelected {
		insurancePrice = roundHalfUp(float64(basePrice) * card.InsuranceRatePct)
	}

	taxes := roundHalfUp(float64(basePrice+insurancePrice) * card.TaxRatePct)
	totalPrice := basePrice + insurancePrice + taxes
	depositRequired := roundHalfUp(float64(totalPrice) * card.DepositRatePct)

	return domain.PriceBreakdown{
		BasePrice:                basePrice,
		InsurancePrice:           insurancePrice,
		Taxes:                    taxes,
		TotalPrice:               totalPrice,
		DepositRequired:          depositRequired,
		Hours:                    hours,
		PeakMultiplierApplied:    peakApplied,
		WeekendMultiplierApplied: weekendApplied,
		InsuranceSelected:        insuranceSelected,
	}
}

// overlapsPeak reports whether any portion of the window falls inside the
// configured peak band.
func (e *Engine) overlapsPeak(window domain.RentalWindow) bool {
	if !e.peak.enabled() {
		return false
	}
	if window.EndAt.Sub(window.StartAt) >= 24*time.Hour {
		return true
	}

	start := hourOfDay(window.StartAt)
	end := hourOfDay(window.EndAt)
	bandStart := float64(e.peak.StartHour)
	bandEnd := float64(e.peak.EndHour)

	if start <= end {
		return start < bandEnd && end > bandStart
	}
	// Window crosses midnight: [start, 24) then [0, end).
	return bandEnd > start || bandStart < end
}

// touchesWeekend reports whether any calendar day of the window is a
// Saturday or a Sunday.
func touchesWeekend(window domain.RentalWindow) bool {
	for d := window.StartAt; !dateOf(d).After(dateOf(window.EndAt)); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return true
		}
	}
	return false
}

func hourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// roundHalfUp rounds a non-negative amount to the nearest integer currency
// unit, with .5 rounding up.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
