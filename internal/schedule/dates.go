package schedule

import "time"

// monthsAfter steps n months from a date in one jump, relying on AddDate
// normalization for out-of-range days.
func monthsAfter(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// firstInstallmentDate is one month after the prepayment date, normalized
// once. Every installment date steps whole months from it, so a day-29/30/31
// anchor is normalized a single time instead of skewing each step: stepping
// raw from Aug 31 would yield Oct 1, Oct 31, Dec 1 instead of a strictly
// monthly sequence.
func firstInstallmentDate(anchor time.Time) time.Time {
	return monthsAfter(anchor, 1)
}

// renumberInstallmentDates reassigns every installment's date from its
// ordinal position: the i-th installment in sequence order lands i months
// after the normalized first installment date. Deposit and prepayment dates
// are left alone.
func renumberInstallmentDates(payments []Payment) {
	anchor, ok := prepaymentDate(payments)
	if !ok {
		return
	}
	first := firstInstallmentDate(anchor)
	ordinal := 0
	for i := range payments {
		if payments[i].Kind != KindInstallment {
			continue
		}
		payments[i].Date = monthsAfter(first, ordinal)
		payments[i].Day = payments[i].Date.Day()
		ordinal++
	}
}
