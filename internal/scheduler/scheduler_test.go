package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReconciler struct {
	calls    int
	deadline bool
	err      error
}

func (f *fakeReconciler) ReconcileAll(ctx context.Context) error {
	f.calls++
	_, f.deadline = ctx.Deadline()
	return f.err
}

func newTestScheduler() *Scheduler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log)
}

func TestReconcileJob_RunNow(t *testing.T) {
	s := newTestScheduler()
	fake := &fakeReconciler{}
	job := NewReconcileJob(fake, time.Minute)

	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 1, fake.calls)
	assert.True(t, fake.deadline)
	assert.Equal(t, "reconcile_accounts", job.Name())

	fake.err = errors.New("database is locked")
	assert.ErrorIs(t, s.RunNow(job), fake.err)
}

func TestAddJob_RejectsInvalidSchedule(t *testing.T) {
	s := newTestScheduler()
	job := NewReconcileJob(&fakeReconciler{}, time.Minute)

	require.NoError(t, s.AddJob("0 5 0 * * *", job))
	require.NoError(t, s.AddJob("@every 1h", job))
	assert.Error(t, s.AddJob("5 0 * * *", job))
}
