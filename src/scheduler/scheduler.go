package scheduler

import (
	"context"
	"fmt"
	"painel/src/indicators"
	"painel/src/utils"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// StaleAfter is how old the latest observation of a recent-days indicator may
// get before its scheduled run refreshes it.
const StaleAfter = 24 * time.Hour

const jobTimeout = 5 * time.Minute

type Refresher interface {
	Refresh(ctx context.Context, key string) (int, error)
	RefreshIfStale(ctx context.Context, key string, maxAge time.Duration) (bool, error)
}

// Scheduler owns one ScheduledTask per indicator.
type Scheduler struct {
	logger    *logrus.Logger
	refresher Refresher

	mu    sync.Mutex
	tasks map[string]*ScheduledTask
}

func NewScheduler(logger *logrus.Logger, refresher Refresher) *Scheduler {
	return &Scheduler{
		logger:    logger,
		refresher: refresher,
		tasks:     map[string]*ScheduledTask{},
	}
}

// Start registers every indicator on its RefreshCron. Already registered
// keys are replaced.
func (s *Scheduler) Start(inds []indicators.Indicator) error {
	for _, ind := range inds {
		task, err := NewScheduledTask(ind.RefreshCron, s.Job(ind))
		if err != nil {
			s.Stop()
			return fmt.Errorf("scheduling %s with %q: %w", ind.Key, ind.RefreshCron, err)
		}
		s.mu.Lock()
		if previous, ok := s.tasks[ind.Key]; ok {
			previous.Cancel()
		}
		s.tasks[ind.Key] = task
		s.mu.Unlock()

		s.logger.WithFields(logrus.Fields{
			"indicator": ind.Key,
			"cron":      ind.RefreshCron,
			"next":      task.Next(),
		}).Info("refresh scheduled")
	}
	return nil
}

// Job is the function run for ind on every tick.
func (s *Scheduler) Job(ind indicators.Indicator) func() {
	return func() {
		ctx, cancel := context.WithTimeout(utils.WithLogger(context.Background(), s.logger), jobTimeout)
		defer cancel()
		logger := s.logger.WithField("indicator", ind.Key)

		if ind.RecentDays > 0 {
			refreshed, err := s.refresher.RefreshIfStale(ctx, ind.Key, StaleAfter)
			if err != nil {
				logger.WithError(err).Error("scheduled refresh failed")
				return
			}
			if !refreshed {
				logger.Info("indicator up to date")
			}
			return
		}
		if _, err := s.refresher.Refresh(ctx, ind.Key); err != nil {
			logger.WithError(err).Error("scheduled refresh failed")
		}
	}
}

// Keys lists the scheduled indicators.
func (s *Scheduler) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.tasks))
	for key := range s.tasks {
		keys = append(keys, key)
	}
	return keys
}

// Next returns the next run time of key.
func (s *Scheduler) Next(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[key]
	if !ok {
		return time.Time{}, false
	}
	return task.Next(), true
}

// Stop cancels every task.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, task := range s.tasks {
		task.Cancel()
		delete(s.tasks, key)
	}
}
