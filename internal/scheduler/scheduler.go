// Package scheduler drives periodic analysis runs from cron expressions.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/elonfeng/hashradar/internal/logging"
)

// jobTimeout bounds a single scheduled job, including its exports.
const jobTimeout = 30 * time.Minute

// Job is a scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler manages cron-scheduled jobs.
type Scheduler struct {
	cron *cron.Cron
	jobs map[string]cron.EntryID
	log  logging.Logger
}

// New creates an empty scheduler.
func New(log logging.Logger) *Scheduler {
	if log == nil {
		log = logging.New()
	}
	return &Scheduler{
		cron: cron.New(),
		jobs: make(map[string]cron.EntryID),
		log:  log,
	}
}

// Add registers a named job on a cron schedule ("0 */6 * * *" = every
// six hours on the hour).
func (s *Scheduler) Add(name, spec string, job Job) error {
	entryID, err := s.cron.AddFunc(spec, func() {
		s.runJob(name, job)
	})
	if err != nil {
		return fmt.Errorf("schedule job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	s.log.WithFields(logging.Fields{"job": name, "schedule": spec}).Info("job scheduled")
	return nil
}

// Sweep builds a job that runs the categories sequentially. Per-category
// failures do not stop the sweep; they are joined into the job error.
func Sweep(categories []string, run func(ctx context.Context, category string) error) Job {
	return func(ctx context.Context) error {
		var errs []error
		for _, name := range categories {
			if err := run(ctx, name); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
		return errors.Join(errs...)
	}
}

// AddAnalysis schedules one analysis sweep over the named categories.
func (s *Scheduler) AddAnalysis(spec string, categories []string, run func(ctx context.Context, category string) error) error {
	return s.Add("analyze", spec, Sweep(categories, run))
}

// RunNow executes a job immediately under the standard job timeout.
func (s *Scheduler) RunNow(name string, job Job) error {
	return s.runJob(name, job)
}

func (s *Scheduler) runJob(name string, job Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	log := s.log.WithFields(logging.Fields{"job": name})
	log.Info("job started")
	start := time.Now()

	if err := job(ctx); err != nil {
		log.WithError(err).Error("job failed")
		return err
	}

	log.WithFields(logging.Fields{"elapsed": time.Since(start).Round(time.Millisecond).String()}).Info("job finished")
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// JobInfo describes a scheduled job.
type JobInfo struct {
	Name    string    `json:"name"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run"`
}

// Jobs returns info about every scheduled job.
func (s *Scheduler) Jobs() []JobInfo {
	entries := s.cron.Entries()
	infos := make([]JobInfo, 0, len(s.jobs))

	for name, entryID := range s.jobs {
		for _, entry := range entries {
			if entry.ID == entryID {
				infos = append(infos, JobInfo{
					Name:    name,
					NextRun: entry.Next,
					LastRun: entry.Prev,
				})
				break
			}
		}
	}

	return infos
}
