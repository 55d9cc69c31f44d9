package pricing

import (
	"testing"

	"voltrent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

var settledQuote = domain.PriceBreakdown{
	BasePrice:       900000,
	InsurancePrice:  90000,
	Taxes:           99000,
	TotalPrice:      1089000,
	DepositRequired: 217800,
}

func TestSettleRental(t *testing.T) {
	t.Run("Extra fee plus deposit reconciliation", func(t *testing.T) {
		fees := []domain.ExtraFee{
			{Kind: domain.ExtraFeeKindCleaning, Amount: 50000, Description: "mud on the floor mats"},
		}

		s, dropped := SettleRental(settledQuote, fees, 217800)
		assert.Empty(t, dropped)
		assert.Equal(t, int64(1139000), s.TotalCharges)
		assert.Equal(t, int64(217800), s.DepositApplied)
		assert.Equal(t, int64(921200), s.FinalAmount) // customer still owes this
	})

	t.Run("No fees partial deposit", func(t *testing.T) {
		s, _ := SettleRental(settledQuote, nil, settledQuote.DepositRequired)
		assert.Equal(t, settledQuote.TotalPrice, s.TotalCharges)
		assert.Equal(t, settledQuote.TotalPrice-settledQuote.DepositRequired, s.FinalAmount)
	})

	t.Run("Refund when deposit exceeds charges", func(t *testing.T) {
		quote := domain.PriceBreakdown{TotalPrice: 100000}

		s, _ := SettleRental(quote, nil, 150000)
		assert.Equal(t, int64(-50000), s.FinalAmount)
		assert.Equal(t, int64(100000), s.TotalCharges)
	})

	t.Run("Exact deposit settles to zero", func(t *testing.T) {
		quote := domain.PriceBreakdown{TotalPrice: 100000}

		s, _ := SettleRental(quote, nil, 100000)
		assert.Equal(t, int64(0), s.FinalAmount)
	})

	t.Run("Malformed fees are dropped not rejected", func(t *testing.T) {
		fees := []domain.ExtraFee{
			{Kind: domain.ExtraFeeKindDamage, Amount: 0, Description: "scratched panel"},
			{Kind: domain.ExtraFeeKindLate, Amount: 30000, Description: "   "},
			{Kind: domain.ExtraFeeKindOther, Amount: 20000, Description: "charging cable missing"},
		}

		s, dropped := SettleRental(settledQuote, fees, 217800)
		assert.Len(t, dropped, 2)
		assert.Equal(t, settledQuote.TotalPrice+20000, s.TotalCharges)
	})
}

func TestKeepValidFees(t *testing.T) {
	fees := []domain.ExtraFee{
		{Kind: domain.ExtraFeeKindDamage, Amount: 10000, Description: "broken mirror"},
		{Kind: domain.ExtraFeeKindCleaning, Amount: -1, Description: "negative"},
		{Kind: domain.ExtraFeeKindOther, Amount: 5000, Description: ""},
	}

	kept := KeepValidFees(fees)
	assert.Len(t, kept, 1)
	assert.Equal(t, domain.ExtraFeeKindDamage, kept[0].Kind)
}
