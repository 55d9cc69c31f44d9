package domain

// All money amounts are int64 values in the smallest currency unit
// (VND has no minor unit, so 1 == 1 dong). The engine never converts
// currencies.

// RateCard holds a vehicle's pricing parameters. A snapshot of the card is
// frozen into the rental's quote at booking time, so later catalog edits
// never retroactively change an existing quote.
type RateCard struct {
	HourlyRate        int64   `json:"hourly_rate"`
	DailyRate         int64   `json:"daily_rate"`
	InsuranceRatePct  float64 `json:"insurance_rate_pct"`
	TaxRatePct        float64 `json:"tax_rate_pct"`
	DepositRatePct    float64 `json:"deposit_rate_pct"`
	PeakMultiplier    float64 `json:"peak_multiplier,omitempty"`
	WeekendMultiplier float64 `json:"weekend_multiplier,omitempty"`
}

// PriceBreakdown is the computed quote for a rental window. It is a pure
// function of the rate card, the window and the insurance flag, and is
// recomputed whenever either changes.
type PriceBreakdown struct {
	BasePrice                int64   `json:"base_price"`
	InsurancePrice           int64   `json:"insurance_price"`
	Taxes                    int64   `json:"taxes"`
	TotalPrice               int64   `json:"total_price"`
	DepositRequired          int64   `json:"deposit_required"`
	Hours                    float64 `json:"hours"`
	PeakMultiplierApplied    float64 `json:"peak_multiplier_applied"`
	WeekendMultiplierApplied float64 `json:"weekend_multiplier_applied"`
	InsuranceSelected        bool    `json:"insurance_selected"`
}

type ExtraFeeKind string

const (
	ExtraFeeKindDamage   ExtraFeeKind = "damage"
	ExtraFeeKindCleaning ExtraFeeKind = "cleaning"
	ExtraFeeKindLate     ExtraFeeKind = "late"
	ExtraFeeKindOther    ExtraFeeKind = "other"
)

// ExtraFee is a charge added at return time (damage, cleaning, lateness, ...).
type ExtraFee struct {
	Kind        ExtraFeeKind `json:"kind"`
	Amount      int64        `json:"amount"`
	Description string       `json:"description"`
}

// Settlement reconciles the deposit already collected against the final
// charges. FinalAmount is signed: positive means the customer owes the
// difference, negative means a refund is due, zero means fully settled.
type Settlement struct {
	TotalCharges   int64 `json:"total_charges"`
	DepositApplied int64 `json:"deposit_applied"`
	FinalAmount    int64 `json:"final_amount"`
}
