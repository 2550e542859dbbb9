package schedule

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindDeposit     Kind = "deposit"
	KindPrepayment  Kind = "prepayment"
	KindInstallment Kind = "installment"
)

// Payment is one row of the schedule. IDs are assigned at creation and stay
// stable across reorders; they are never reused.
type Payment struct {
	ID     string    `json:"id"`
	Kind   Kind      `json:"kind"`
	Day    int       `json:"day"`
	Date   time.Time `json:"date"`
	Amount int64     `json:"amount"`
}

func NewPaymentID() string {
	return uuid.NewString()
}

// Remaining is the portion of the full price covered by installments:
// fullPrice minus the deposit and prepayment amounts found in the collection.
func Remaining(payments []Payment, fullPrice int64) int64 {
	r := fullPrice
	for _, p := range payments {
		if p.Kind == KindDeposit || p.Kind == KindPrepayment {
			r -= p.Amount
		}
	}
	return r
}

func InstallmentCount(payments []Payment) int {
	n := 0
	for _, p := range payments {
		if p.Kind == KindInstallment {
			n++
		}
	}
	return n
}

func findByID(payments []Payment, id string) int {
	for i, p := range payments {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func prepaymentDate(payments []Payment) (time.Time, bool) {
	for _, p := range payments {
		if p.Kind == KindPrepayment {
			return p.Date, true
		}
	}
	return time.Time{}, false
}
