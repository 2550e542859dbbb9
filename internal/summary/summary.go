package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/thevarp19/rams-tech-task/internal/schedule"
)

// YearTotal is one line of the per-year installment breakdown.
type YearTotal struct {
	Year    int     `json:"year"`
	Amount  int64   `json:"amount"`
	Percent float64 `json:"percent"`
}

// Metrics is derived from the payment collection on every read; nothing here
// is stored or written back.
type Metrics struct {
	TotalCost                    int64       `json:"totalCost"`
	PricePerSquareMeter          int64       `json:"pricePerSqm"`
	DepositPlusPrepayment        int64       `json:"depositPlusPrepayment"`
	DepositPlusPrepaymentPercent float64     `json:"depositPlusPrepaymentPercent"`
	YearlyBreakdown              []YearTotal `json:"yearlyBreakdown"`
	SimpleBurdenPercent          float64     `json:"simpleBurdenPercent"`
}

// Project computes the summary panel numbers. It tolerates an empty or
// upfront-only collection: the breakdown is just empty then.
func Project(payments []schedule.Payment, fullPrice int64, area float64) Metrics {
	var upfront int64
	byYear := map[int]int64{}
	for _, p := range payments {
		switch p.Kind {
		case schedule.KindDeposit, schedule.KindPrepayment:
			upfront += p.Amount
		case schedule.KindInstallment:
			byYear[p.Date.Year()] += p.Amount
		}
	}

	years := make([]int, 0, len(byYear))
	for y, amount := range byYear {
		if amount != 0 {
			years = append(years, y)
		}
	}
	sort.Ints(years)

	breakdown := make([]YearTotal, 0, len(years))
	for _, y := range years {
		breakdown = append(breakdown, YearTotal{
			Year:    y,
			Amount:  byYear[y],
			Percent: percentOf(byYear[y], fullPrice),
		})
	}

	var perSqm int64
	if area > 0 {
		perSqm = decimal.NewFromInt(fullPrice).Div(decimal.NewFromFloat(area)).Round(0).IntPart()
	}

	return Metrics{
		TotalCost:                    fullPrice,
		PricePerSquareMeter:          perSqm,
		DepositPlusPrepayment:        upfront,
		DepositPlusPrepaymentPercent: percentOf(upfront, fullPrice),
		YearlyBreakdown:              breakdown,
		SimpleBurdenPercent:          burdenPercent(payments, fullPrice),
	}
}

// NPV discounts the whole payment stream against the full price. With no
// rate it collapses to sum(payments) - fullPrice. With a rate, payment i
// (1-based position in the full sequence) is divided by (1+rate)^i.
func NPV(payments []schedule.Payment, fullPrice int64, rate *decimal.Decimal) decimal.Decimal {
	if rate == nil || rate.IsZero() {
		var sum int64
		for _, p := range payments {
			sum += p.Amount
		}
		return decimal.NewFromInt(sum - fullPrice)
	}

	factor := decimal.NewFromInt(1).Add(*rate)
	total := decimal.Zero
	for i, p := range payments {
		discounted := decimal.NewFromInt(p.Amount).Div(factor.Pow(decimal.NewFromInt(int64(i + 1))))
		total = total.Add(discounted)
	}
	return total.Sub(decimal.NewFromInt(fullPrice)).Round(2)
}

// burdenPercent is how far total payments overshoot the price, in percent
// rounded to one decimal. Zero when payments sum exactly to the price.
func burdenPercent(payments []schedule.Payment, fullPrice int64) float64 {
	if fullPrice == 0 {
		return 0
	}
	var sum int64
	for _, p := range payments {
		sum += p.Amount
	}
	ratio := decimal.NewFromInt(sum).Div(decimal.NewFromInt(fullPrice))
	v, _ := ratio.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return v
}

func percentOf(amount, fullPrice int64) float64 {
	if fullPrice == 0 {
		return 0
	}
	v, _ := decimal.NewFromInt(amount).
		Div(decimal.NewFromInt(fullPrice)).
		Mul(decimal.NewFromInt(100)).
		Round(1).
		Float64()
	return v
}
