package finance

import (
	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Reconciliation is the outcome of an automatic account update.
type Reconciliation struct {
	Account models.Account
	Net     decimal.Decimal // amount applied to the balance
	Entries int             // number of entries inside the window
}

// UpToDate reports whether the reconciliation left the balance unchanged.
func (r Reconciliation) UpToDate() bool { return r.Net.IsZero() }

// InWindow reports whether an entry dated on belongs to the reconciliation window
// (last, today]: strictly after the previous watermark, up to and including today.
func InWindow(on, last, today date.Date) bool {
	return on.After(last) && !on.After(today)
}

// Reconcile applies the net effect of the entries dated inside (LastReconciledDate, today]
// to the balance. The watermark moves to today even when nothing was applied, so the same
// entries are never summed twice.
func Reconcile(acc models.Account, entries []models.CashFlowEntry, today date.Date) Reconciliation {
	net := decimal.Zero
	n := 0
	for _, e := range entries {
		if !InWindow(e.Date, acc.LastReconciledDate, today) {
			continue
		}
		net = net.Add(e.Signed())
		n++
	}
	acc.Balance = acc.Balance.Add(net)
	acc.LastReconciledDate = today
	return Reconciliation{Account: acc, Net: net, Entries: n}
}

// ManualUpdate overwrites the balance and the watermark with caller-supplied values.
func ManualUpdate(acc models.Account, balance decimal.Decimal, reference date.Date) models.Account {
	acc.Balance = balance
	acc.LastReconciledDate = reference
	return acc
}
