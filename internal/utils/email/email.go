package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/wealth-tracker/internal/config"
	"github.com/Dan9191/wealth-tracker/internal/finance"
	"github.com/Dan9191/wealth-tracker/internal/utils"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{
		cfg:    cfg,
		logger: logger,
	}
	s.send = s.sendSMTP
	return s
}

func (s *Sender) sendSMTP(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}

// reconciliationMessage builds the subject and plain-text body of a reconciliation notice
func reconciliationMessage(rec finance.Reconciliation, currency string) (subject, body string) {
	subject = "Your balance has been updated"
	direction := "credited with"
	if rec.Net.IsNegative() {
		direction = "debited by"
	}
	body = fmt.Sprintf(
		"Hello,\n\n"+
			"Your current account has been %s %s, from %d entries recorded up to %s.\n"+
			"New balance: %s\n",
		direction, utils.FormatAmount(rec.Net.Abs(), currency), rec.Entries,
		rec.Account.LastReconciledDate, utils.FormatAmount(rec.Account.Balance, currency),
	)
	if rec.Account.Balance.IsNegative() {
		body += "Your balance is negative.\n"
	}
	body += "\nBest regards,\nWealth Tracker"
	return subject, body
}

// SendReconciliationNotice tells a user that the automatic update changed the balance
func (s *Sender) SendReconciliationNotice(to string, rec finance.Reconciliation) error {
	subject, body := reconciliationMessage(rec, s.cfg.ReportCurrency)

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
