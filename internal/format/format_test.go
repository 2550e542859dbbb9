package format

import (
	"testing"
	"time"

	"github.com/thevarp19/rams-tech-task/internal/schedule"
)

func TestAmount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1 000"},
		{1234567, "1 234 567"},
		{25558146, "25 558 146"},
		{-5000, "-5 000"},
	}
	for _, c := range cases {
		if got := Amount(c.in); got != c.want {
			t.Fatalf("Amount(%d): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestAmountWithSymbol(t *testing.T) {
	if got := AmountWithSymbol(1000); got != "1 000 ₸" {
		t.Fatalf("expected %q, got %q", "1 000 ₸", got)
	}
}

func TestMonthYear(t *testing.T) {
	d := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	if got := MonthYear(d); got != "Август 2025" {
		t.Fatalf("expected %q, got %q", "Август 2025", got)
	}
	d = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if got := MonthYear(d); got != "Январь 2026" {
		t.Fatalf("expected %q, got %q", "Январь 2026", got)
	}
}

func TestKindLabel(t *testing.T) {
	if got := KindLabel(schedule.KindDeposit); got != "Задаток" {
		t.Fatalf("deposit label: %q", got)
	}
	if got := KindLabel(schedule.KindPrepayment); got != "ПВ" {
		t.Fatalf("prepayment label: %q", got)
	}
	if got := KindLabel(schedule.KindInstallment); got != "Транш" {
		t.Fatalf("installment label: %q", got)
	}
}
