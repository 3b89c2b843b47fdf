package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Entry
}

// New creates a new scheduler. Schedules use six fields, seconds first.
func New(log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:  log.WithField("component", "scheduler"),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// AddJob registers a job with a cron schedule, e.g. "0 5 0 * * *" for 00:05 every day
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		log := s.log.WithField("job", job.Name())
		log.Debug("Running job")
		if err := job.Run(); err != nil {
			log.WithError(err).Error("Job failed")
			return
		}
		log.Debug("Job completed")
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"schedule": schedule,
		"job":      job.Name(),
	}).Info("Job registered")
	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.WithField("job", job.Name()).Info("Running job immediately")
	return job.Run()
}
