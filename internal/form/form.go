package form

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlanRate string

const (
	PlanRate20 PlanRate = "20%"
	PlanRate30 PlanRate = "30%"
)

func (r PlanRate) Fraction() decimal.Decimal {
	switch r {
	case PlanRate20:
		return decimal.NewFromFloat(0.2)
	case PlanRate30:
		return decimal.NewFromFloat(0.3)
	default:
		return decimal.Zero
	}
}

// Parameters is the user-editable input the whole schedule derives from.
// Field names on the wire match the frontend form.
type Parameters struct {
	PlanRate             PlanRate  `json:"paymentForm" validate:"required,oneof=20% 30%"`
	Deposit              int64     `json:"deposit" validate:"min=0"`
	Prepayment           int64     `json:"prepayment" validate:"min=0"`
	FirstInstallmentDate time.Time `json:"prepaymentDate" validate:"required"`
	InstallmentCount     int       `json:"quantityPayments" validate:"min=12,max=48"`
}

// Defaults mirrors the initial form the product ships with.
func Defaults() Parameters {
	return Parameters{
		PlanRate:             PlanRate30,
		Deposit:              5_000_000,
		Prepayment:           5_000_000,
		FirstInstallmentDate: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		InstallmentCount:     12,
	}
}

// DerivePrepayment recomputes the prepayment from the plan rate:
// round(fullPrice * rate). Called whenever the plan rate changes; the user
// may still edit the prepayment independently afterwards.
func DerivePrepayment(fullPrice int64, rate PlanRate) int64 {
	return decimal.NewFromInt(fullPrice).Mul(rate.Fraction()).Round(0).IntPart()
}
