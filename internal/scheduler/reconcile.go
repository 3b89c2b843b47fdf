package scheduler

import (
	"context"
	"time"
)

// Reconciler updates every account from the entries recorded since its last update
type Reconciler interface {
	ReconcileAll(ctx context.Context) error
}

// ReconcileJob runs the automatic account update for all users
type ReconcileJob struct {
	svc     Reconciler
	timeout time.Duration
}

// NewReconcileJob creates the nightly reconciliation job
func NewReconcileJob(svc Reconciler, timeout time.Duration) *ReconcileJob {
	return &ReconcileJob{svc: svc, timeout: timeout}
}

// Name returns the job name
func (j *ReconcileJob) Name() string { return "reconcile_accounts" }

// Run executes the job
func (j *ReconcileJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	return j.svc.ReconcileAll(ctx)
}
