// simulate drives one full schedule scenario from the command line and
// prints the table and summary the way the UI would render them. Handy for
// eyeballing redistribution behavior without a frontend.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thevarp19/rams-tech-task/internal/form"
	"github.com/thevarp19/rams-tech-task/internal/format"
	"github.com/thevarp19/rams-tech-task/internal/schedule"
	"github.com/thevarp19/rams-tech-task/internal/summary"
	"github.com/thevarp19/rams-tech-task/pkg/config"
)

func main() {
	var (
		deposit    = flag.Int64("deposit", 5_000_000, "deposit amount")
		prepayment = flag.Int64("prepayment", 5_000_000, "prepayment amount")
		dateStr    = flag.String("date", "2025-08-01", "prepayment date (YYYY-MM-DD)")
		count      = flag.Int("count", 12, "installment count")
		editIndex  = flag.Int("edit", -1, "installment ordinal to edit (0-based, -1 to skip)")
		editAmount = flag.Int64("edit-amount", 0, "amount for the edited installment")
		rateStr    = flag.String("rate", "", "optional NPV discount rate, e.g. 0.1")
	)
	flag.Parse()

	cfg := config.Load()

	date, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -date: %v\n", err)
		os.Exit(2)
	}

	f := form.Parameters{
		PlanRate:             form.PlanRate30,
		Deposit:              *deposit,
		Prepayment:           *prepayment,
		FirstInstallmentDate: date,
		InstallmentCount:     *count,
	}
	if err := form.Validate(f, cfg.FullPrice, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "invalid form: %v\n", err)
		os.Exit(2)
	}

	gen := schedule.Generator{DepositDate: cfg.DepositDate}
	payments := gen.Generate(f, cfg.FullPrice)

	if *editIndex >= 0 {
		ordinal := 0
		for _, p := range payments {
			if p.Kind != schedule.KindInstallment {
				continue
			}
			if ordinal == *editIndex {
				var out schedule.Outcome
				payments, out = schedule.EditAmount(payments, cfg.FullPrice, p.ID, *editAmount)
				fmt.Printf("edit: applied=%v %s\n\n", out.Applied, out.Message)
				break
			}
			ordinal++
		}
	}

	printTable(payments)
	printSummary(payments, cfg.FullPrice, cfg.ApartmentArea, *rateStr)
}

func printTable(payments []schedule.Payment) {
	fmt.Printf("%-4s %-10s %-4s %-15s %s\n", "№", "Тип", "День", "Дата", "Сумма")
	for i, p := range payments {
		fmt.Printf("%-4d %-10s %-4d %-15s %s\n",
			i+1, format.KindLabel(p.Kind), p.Day, format.MonthYear(p.Date), format.AmountWithSymbol(p.Amount))
	}
	fmt.Println()
}

func printSummary(payments []schedule.Payment, fullPrice int64, area float64, rateStr string) {
	m := summary.Project(payments, fullPrice, area)

	fmt.Printf("Стоимость: %s\n", format.AmountWithSymbol(m.TotalCost))
	fmt.Printf("Цена за м²: %s\n", format.AmountWithSymbol(m.PricePerSquareMeter))
	fmt.Printf("Задаток + ПВ: %s (%.1f%%)\n", format.AmountWithSymbol(m.DepositPlusPrepayment), m.DepositPlusPrepaymentPercent)
	for _, y := range m.YearlyBreakdown {
		fmt.Printf("  %d: %s (%.1f%%)\n", y.Year, format.AmountWithSymbol(y.Amount), y.Percent)
	}
	fmt.Printf("Переплата: %.1f%%\n", m.SimpleBurdenPercent)

	var rate *decimal.Decimal
	if rateStr != "" {
		d, err := decimal.NewFromString(rateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad -rate: %v\n", err)
			os.Exit(2)
		}
		rate = &d
	}
	fmt.Printf("NPV: %s\n", summary.NPV(payments, fullPrice, rate))
}
