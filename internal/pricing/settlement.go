package pricing

import (
	"strings"

	"voltrent-backend/internal/domain"
)

// SettleRental reconciles the deposit already collected against the final
// charges at return time. Insurance and taxes embedded in the quote are not
// recomputed; only extra fees are added on top.
//
// Fees with a zero amount or a blank description are discarded rather than
// rejected, matching operator tolerance for partially filled return forms.
// The dropped fees are returned so the caller can log them instead of losing
// them silently.
func SettleRental(quote domain.PriceBreakdown, extraFees []domain.ExtraFee, depositPaid int64) (domain.Settlement, []domain.ExtraFee) {
	var kept, dropped []domain.ExtraFee
	for _, fee := range extraFees {
		if fee.Amount > 0 && strings.TrimSpace(fee.Description) != "" {
			kept = append(kept, fee)
		} else {
			dropped = append(dropped, fee)
		}
	}

	var extraTotal int64
	for _, fee := range kept {
		extraTotal += fee.Amount
	}

	totalCharges := quote.TotalPrice + extraTotal
	return domain.Settlement{
		TotalCharges:   totalCharges,
		DepositApplied: depositPaid,
		FinalAmount:    totalCharges - depositPaid,
	}, dropped
}

// KeepValidFees returns the extra fees that survive the settlement filter.
// Handlers use it to persist only the fees that were actually charged.
func KeepValidFees(extraFees []domain.ExtraFee) []domain.ExtraFee {
	var kept []domain.ExtraFee
	for _, fee := range extraFees {
		if fee.Amount > 0 && strings.TrimSpace(fee.Description) != "" {
			kept = append(kept, fee)
		}
	}
	return kept
}
