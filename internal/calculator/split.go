package calculator

import (
	"math"

	"github.com/mmynk/tipsplit/internal/models"
)

// ComputeTotals returns the tip and the grand total (bill plus tip).
// Inputs are not validated; callers pass a non-negative bill and an in-range tip.
func ComputeTotals(billTotal float64, tipPercentage int) (tipAmount, grandTotal float64) {
	tipAmount = billTotal * (float64(tipPercentage) / 100)
	grandTotal = billTotal + tipAmount
	return tipAmount, grandTotal
}

// Distribute assigns every participant an amount of grandTotal.
//
// Locked participants keep their LockedAmount. What is left after the locked
// amounts, floored at zero, is divided equally among the unlocked ones:
//
//	remaining  = max(0, grand_total - sum(locked_amount))
//	per_person = remaining / count(unlocked)
//
// Shares are returned in roster order. isOverflow is set when the grand total
// is positive and the locked amounts alone exceed it.
func Distribute(participants []models.Participant, grandTotal float64) (shares []models.ParticipantShare, isOverflow bool) {
	var totalLocked float64
	unlocked := 0
	for _, p := range participants {
		if p.IsLocked {
			totalLocked += p.LockedAmount
		} else {
			unlocked++
		}
	}

	remaining := math.Max(0, grandTotal-totalLocked)

	var perPersonAmount float64
	if unlocked > 0 {
		perPersonAmount = remaining / float64(unlocked)
	}

	shares = make([]models.ParticipantShare, len(participants))
	for i, p := range participants {
		amount := perPersonAmount
		if p.IsLocked {
			amount = p.LockedAmount
		}
		shares[i] = models.ParticipantShare{
			ParticipantID: p.ID,
			Name:          p.Name,
			Amount:        amount,
			SharePercent:  SharePercent(amount, grandTotal),
			Locked:        p.IsLocked,
		}
	}

	isOverflow = grandTotal > 0 && totalLocked > grandTotal
	return shares, isOverflow
}

// SharePercent returns amount as a whole percentage of grandTotal, rounded to
// the nearest percent. Zero when grandTotal is zero. Ratios beyond the int32
// range saturate at math.MaxInt32 or math.MinInt32.
func SharePercent(amount, grandTotal float64) int {
	if grandTotal == 0 {
		return 0
	}
	pct := math.Round(amount / grandTotal * 100)
	switch {
	case math.IsNaN(pct):
		return 0
	case pct > math.MaxInt32:
		return math.MaxInt32
	case pct < math.MinInt32:
		return math.MinInt32
	}
	return int(pct)
}

// Compute derives the full DistributionResult for a bill.
// The state is only read; the result shares no memory with it.
func Compute(state models.BillState) models.DistributionResult {
	tipAmount, grandTotal := ComputeTotals(state.BillTotal, state.TipPercentage)
	shares, isOverflow := Distribute(state.Participants, grandTotal)
	return models.DistributionResult{
		TipAmount:  tipAmount,
		GrandTotal: grandTotal,
		Shares:     shares,
		IsOverflow: isOverflow,
	}
}
