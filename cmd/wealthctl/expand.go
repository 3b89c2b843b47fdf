package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/finance"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/Dan9191/wealth-tracker/internal/utils"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type expandCmd struct {
	name       string
	amount     string
	kind       string
	label      string
	on         string
	recurrence string
	years      int
	currency   string
}

func (*expandCmd) Name() string     { return "expand" }
func (*expandCmd) Synopsis() string { return "list the occurrences generated for a recurring entry" }
func (*expandCmd) Usage() string {
	return `wealthctl expand -amount <amount> -date <date> -recurrence <policy> [-type INCOME|EXPENSE] [-name <name>] [-label <label>]

  Prints the dated entries a recurring income or expense expands into.
  Policies: NONE, MONTHLY, QUARTERLY, SEMESTRIAL, YEARLY.
`
}

func (c *expandCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "entry", "entry name")
	f.StringVar(&c.amount, "amount", "", "amount, non-negative")
	f.StringVar(&c.kind, "type", string(models.Expense), "INCOME or EXPENSE")
	f.StringVar(&c.label, "label", "", "entry label")
	f.StringVar(&c.on, "date", "", "first occurrence (YYYY-MM-DD)")
	f.StringVar(&c.recurrence, "recurrence", string(finance.PolicyNone), "recurrence policy")
	f.IntVar(&c.years, "yearly-occurrences", finance.DefaultRule.AnnualOccurrences, "number of YEARLY occurrences")
	f.StringVar(&c.currency, "currency", "EUR", "currency used to display amounts")
}

func (c *expandCmd) template() (models.CashFlowEntry, finance.Policy, error) {
	var e models.CashFlowEntry
	amount, err := decimal.NewFromString(c.amount)
	if err != nil || amount.IsNegative() {
		return e, "", fmt.Errorf("-amount must be a non-negative amount, got %q", c.amount)
	}
	kind, err := models.ParseKind(strings.ToUpper(c.kind))
	if err != nil {
		return e, "", err
	}
	on, err := date.Parse(c.on)
	if err != nil {
		return e, "", fmt.Errorf("invalid -date: %w", err)
	}
	policy, err := finance.ParsePolicy(strings.ToUpper(c.recurrence))
	if err != nil {
		return e, "", err
	}
	if c.years <= 0 {
		return e, "", fmt.Errorf("-yearly-occurrences must be positive")
	}
	return models.CashFlowEntry{Name: c.name, Amount: amount, Kind: kind, Label: c.label, Date: on}, policy, nil
}

func (c *expandCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tmpl, policy, err := c.template()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rule := finance.ExpansionRule{AnnualOccurrences: c.years}
	c.render(os.Stdout, rule.Expand(tmpl, policy))
	return subcommands.ExitSuccess
}

func (c *expandCmd) render(out io.Writer, entries []models.CashFlowEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tName\tLabel\tAmount")
	total := decimal.Zero
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date, e.Name, e.LabelOrDefault(), utils.FormatAmount(e.Signed(), c.currency))
		total = total.Add(e.Signed())
	}
	fmt.Fprintf(w, "\t\tTotal\t%s\n", utils.FormatAmount(total, c.currency))
	w.Flush()
}
