package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/thevarp19/rams-tech-task/internal/form"
)

func testGenerator() Generator {
	n := 0
	return Generator{
		DepositDate: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		NewID: func() string {
			n++
			return fmt.Sprintf("p-%d", n)
		},
	}
}

func TestGenerate_ShapeAndKinds(t *testing.T) {
	f := form.Defaults()
	got := testGenerator().Generate(f, 25_558_146)

	if len(got) != f.InstallmentCount+2 {
		t.Fatalf("expected %d payments, got %d", f.InstallmentCount+2, len(got))
	}
	if got[0].Kind != KindDeposit {
		t.Fatalf("first payment must be the deposit, got %s", got[0].Kind)
	}
	if got[1].Kind != KindPrepayment {
		t.Fatalf("second payment must be the prepayment, got %s", got[1].Kind)
	}
	for i := 2; i < len(got); i++ {
		if got[i].Kind != KindInstallment {
			t.Fatalf("payment %d: expected installment, got %s", i, got[i].Kind)
		}
	}

	seen := map[string]bool{}
	for _, p := range got {
		if seen[p.ID] {
			t.Fatalf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestGenerate_MonthSteppingFromAnchor(t *testing.T) {
	f := form.Defaults()
	f.FirstInstallmentDate = time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)
	got := testGenerator().Generate(f, 25_558_146)

	if !got[1].Date.Equal(f.FirstInstallmentDate) {
		t.Fatalf("prepayment date: got %v", got[1].Date)
	}
	for i, p := range got[2:] {
		want := f.FirstInstallmentDate.AddDate(0, i+1, 0)
		if !p.Date.Equal(want) {
			t.Fatalf("installment %d: expected %v, got %v", i, want, p.Date)
		}
		if p.Day != want.Day() {
			t.Fatalf("installment %d: day %d does not match date %v", i, p.Day, want)
		}
	}
}

func TestGenerate_MonthEndAnchorStaysMonthly(t *testing.T) {
	f := form.Defaults()
	f.FirstInstallmentDate = time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	got := testGenerator().Generate(f, 25_558_146)

	// Aug 31 + 1 month normalizes to Oct 1 once; every later installment
	// steps a whole month from there.
	want := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	if !got[2].Date.Equal(want) {
		t.Fatalf("first installment: expected %v, got %v", want, got[2].Date)
	}

	prev := got[2].Date
	for i, p := range got[3:] {
		if monthIndex(p.Date) != monthIndex(prev)+1 {
			t.Fatalf("installment %d: not strictly monthly: %v then %v", i+1, prev, p.Date)
		}
		prev = p.Date
	}
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func TestGenerate_RoundingDriftBounded(t *testing.T) {
	f := form.Defaults()
	f.InstallmentCount = 13 // does not divide evenly
	fullPrice := int64(25_558_146)
	got := testGenerator().Generate(f, fullPrice)

	remaining := fullPrice - f.Deposit - f.Prepayment
	var sum int64
	for _, p := range got {
		if p.Kind == KindInstallment {
			sum += p.Amount
		}
	}
	drift := sum - remaining
	if drift < 0 {
		drift = -drift
	}
	if drift > int64(f.InstallmentCount) {
		t.Fatalf("drift %d exceeds bound %d", drift, f.InstallmentCount)
	}
}

func TestGenerate_ZeroInstallments(t *testing.T) {
	f := form.Defaults()
	f.InstallmentCount = 0
	got := testGenerator().Generate(f, 25_558_146)

	if len(got) != 2 {
		t.Fatalf("expected deposit and prepayment only, got %d payments", len(got))
	}
}
