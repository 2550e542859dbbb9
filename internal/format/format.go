// Package format reproduces the display formatting the frontend uses, so
// rendered output can be compared byte for byte: amounts grouped by
// thousands with spaces and a trailing tenge glyph, dates as a capitalized
// Russian month name plus year.
package format

import (
	"fmt"
	"strconv"
	"time"

	"github.com/thevarp19/rams-tech-task/internal/schedule"
)

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// Amount renders 1234567 as "1 234 567".
func Amount(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// AmountWithSymbol renders 1000 as "1 000 ₸".
func AmountWithSymbol(v int64) string {
	return Amount(v) + " ₸"
}

// MonthYear renders a date as "Август 2025".
func MonthYear(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
}

// KindLabel is the fixed Russian row label for a payment kind.
func KindLabel(k schedule.Kind) string {
	switch k {
	case schedule.KindDeposit:
		return "Задаток"
	case schedule.KindPrepayment:
		return "ПВ"
	case schedule.KindInstallment:
		return "Транш"
	default:
		return string(k)
	}
}
