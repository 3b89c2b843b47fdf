package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/finance"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/Dan9191/wealth-tracker/internal/utils"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type amortizeCmd struct {
	principal string
	rate      string
	years     int
	start     string
	on        string
	currency  string
	schedule  bool
}

func (*amortizeCmd) Name() string     { return "amortize" }
func (*amortizeCmd) Synopsis() string { return "compute the remaining balance of a fixed-rate loan" }
func (*amortizeCmd) Usage() string {
	return `wealthctl amortize -principal <amount> -rate <percent> -years <n> -start <date> [-on <date>] [-schedule]

  Prints the monthly payment and the remaining balance of the loan on a date (defaults to today).
  With -schedule, prints every installment.
`
}

func (c *amortizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.principal, "principal", "", "borrowed amount")
	f.StringVar(&c.rate, "rate", "0", "annual interest rate in percent")
	f.IntVar(&c.years, "years", 0, "loan duration in years")
	f.StringVar(&c.start, "start", "", "loan start date (YYYY-MM-DD)")
	f.StringVar(&c.on, "on", "", "valuation date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.currency, "currency", "EUR", "currency used to display amounts")
	f.BoolVar(&c.schedule, "schedule", false, "print the full amortization schedule")
}

func (c *amortizeCmd) loan() (models.RealEstateLoan, date.Date, error) {
	var loan models.RealEstateLoan
	principal, err := decimal.NewFromString(c.principal)
	if err != nil || !principal.IsPositive() {
		return loan, date.Date{}, fmt.Errorf("-principal must be a positive amount, got %q", c.principal)
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil || rate.IsNegative() {
		return loan, date.Date{}, fmt.Errorf("-rate must be a non-negative percent, got %q", c.rate)
	}
	if c.years <= 0 {
		return loan, date.Date{}, fmt.Errorf("-years must be positive")
	}
	start, err := date.Parse(c.start)
	if err != nil {
		return loan, date.Date{}, fmt.Errorf("invalid -start: %w", err)
	}
	on := date.Today(nil)
	if c.on != "" {
		if on, err = date.Parse(c.on); err != nil {
			return loan, date.Date{}, fmt.Errorf("invalid -on: %w", err)
		}
	}
	loan = models.RealEstateLoan{
		Principal:         principal,
		AnnualRatePercent: rate,
		DurationYears:     c.years,
		StartDate:         start,
	}
	return loan, on, nil
}

func (c *amortizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	loan, on, err := c.loan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	c.render(os.Stdout, loan, on)
	return subcommands.ExitSuccess
}

func (c *amortizeCmd) render(out io.Writer, loan models.RealEstateLoan, on date.Date) {
	amount := func(d decimal.Decimal) string { return utils.FormatAmount(d, c.currency) }

	fmt.Fprintf(out, "Monthly payment: %s\n", amount(finance.MonthlyPayment(loan)))
	fmt.Fprintf(out, "Last payment:    %s\n", loan.EndDate())
	fmt.Fprintf(out, "Remaining on %s: %s\n", on, amount(finance.RemainingBalance(loan, on)))
	if !c.schedule {
		return
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tDate\tPayment\tInterest\tPrincipal\tRemaining\t")
	for _, i := range finance.Schedule(loan) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			i.Number, i.Date, amount(i.Payment), amount(i.Interest), amount(i.Principal), amount(i.Remaining))
	}
	w.Flush()
}
