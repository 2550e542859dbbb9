package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thevarp19/rams-tech-task/internal/form"
)

// Generator turns form parameters into a fresh payment collection. It is the
// wholesale path: the whole collection is rebuilt whenever the form changes,
// manual per-row edits are handled incrementally by the mutator instead.
type Generator struct {
	// DepositDate is the fixed nominal date the deposit row is booked under.
	DepositDate time.Time

	// NewID defaults to NewPaymentID. Overridable so tests can pin IDs.
	NewID func() string
}

// Generate produces one deposit, one prepayment, then InstallmentCount
// installments at consecutive one-month steps after the prepayment date.
//
// Each installment gets round(remaining / count) independently, so the sum
// may drift from the exact remainder by up to one unit per installment.
// That drift is accepted here; only a manual amount edit rebalances exactly.
func (g Generator) Generate(f form.Parameters, fullPrice int64) []Payment {
	newID := g.NewID
	if newID == nil {
		newID = NewPaymentID
	}

	payments := make([]Payment, 0, f.InstallmentCount+2)

	payments = append(payments, Payment{
		ID:     newID(),
		Kind:   KindDeposit,
		Day:    g.DepositDate.Day(),
		Date:   g.DepositDate,
		Amount: f.Deposit,
	})
	payments = append(payments, Payment{
		ID:     newID(),
		Kind:   KindPrepayment,
		Day:    f.FirstInstallmentDate.Day(),
		Date:   f.FirstInstallmentDate,
		Amount: f.Prepayment,
	})

	if f.InstallmentCount <= 0 {
		return payments
	}

	remaining := fullPrice - f.Deposit - f.Prepayment
	per := roundDiv(remaining, int64(f.InstallmentCount))

	first := firstInstallmentDate(f.FirstInstallmentDate)
	for i := 0; i < f.InstallmentCount; i++ {
		date := monthsAfter(first, i)
		payments = append(payments, Payment{
			ID:     newID(),
			Kind:   KindInstallment,
			Day:    date.Day(),
			Date:   date,
			Amount: per,
		})
	}

	return payments
}

// roundDiv is half-away-from-zero division, matching how the frontend
// rounded per-installment amounts.
func roundDiv(a, b int64) int64 {
	return decimal.NewFromInt(a).Div(decimal.NewFromInt(b)).Round(0).IntPart()
}
