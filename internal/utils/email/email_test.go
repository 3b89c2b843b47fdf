package email

import (
	"errors"
	"io"
	"testing"

	"github.com/Dan9191/wealth-tracker/internal/config"
	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/finance"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReconciliation(net, balance string) finance.Reconciliation {
	return finance.Reconciliation{
		Account: models.Account{
			UserID:             1,
			Balance:            decimal.RequireFromString(balance),
			LastReconciledDate: date.MustParse("2024-02-01"),
		},
		Net:     decimal.RequireFromString(net),
		Entries: 2,
	}
}

func TestReconciliationMessage(t *testing.T) {
	subject, body := reconciliationMessage(sampleReconciliation("300", "1300"), "EUR")
	assert.Equal(t, "Your balance has been updated", subject)
	assert.Contains(t, body, "credited with €300.00, from 2 entries recorded up to 2024-02-01")
	assert.Contains(t, body, "New balance: €1,300.00")
	assert.NotContains(t, body, "negative")

	_, body = reconciliationMessage(sampleReconciliation("-500", "-200"), "EUR")
	assert.Contains(t, body, "debited by €500.00")
	assert.Contains(t, body, "New balance: -€200.00")
	assert.Contains(t, body, "Your balance is negative.")
}

func TestSendReconciliationNotice(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSender(&config.Config{SenderEmail: "noreply@example.com", ReportCurrency: "EUR"}, log)

	var sent *email.Email
	s.send = func(e *email.Email) error {
		sent = e
		return nil
	}
	require.NoError(t, s.SendReconciliationNotice("alice@example.com", sampleReconciliation("300", "1300")))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"alice@example.com"}, sent.To)
	assert.Equal(t, "noreply@example.com", sent.From)
	assert.Contains(t, string(sent.Text), "€1,300.00")

	s.send = func(*email.Email) error { return errors.New("connection refused") }
	assert.Error(t, s.SendReconciliationNotice("alice@example.com", sampleReconciliation("300", "1300")))
}
