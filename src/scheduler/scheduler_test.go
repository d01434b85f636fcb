package scheduler_test

import (
	"context"
	"io"
	"painel/src/indicators"
	"painel/src/scheduler"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	mu      sync.Mutex
	refresh []string
	stale   []string
}

func (f *fakeRefresher) Refresh(_ context.Context, key string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh = append(f.refresh, key)
	return 1, nil
}

func (f *fakeRefresher) RefreshIfStale(_ context.Context, key string, maxAge time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stale = append(f.stale, key)
	return false, nil
}

func (f *fakeRefresher) calls() ([]string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.refresh...), append([]string(nil), f.stale...)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestJob(t *testing.T) {
	refresher := &fakeRefresher{}
	s := scheduler.NewScheduler(quietLogger(), refresher)

	s.Job(indicators.Indicator{Key: "ipca"})()
	s.Job(indicators.Indicator{Key: "cambio", RecentDays: 30})()

	refresh, stale := refresher.calls()
	assert.Equal(t, []string{"ipca"}, refresh)
	assert.Equal(t, []string{"cambio"}, stale)
}

func TestStartAndStop(t *testing.T) {
	refresher := &fakeRefresher{}
	s := scheduler.NewScheduler(quietLogger(), refresher)

	catalog := indicators.NewCatalog(nil)
	require.NoError(t, s.Start(catalog.All()))
	keys := s.Keys()
	sort.Strings(keys)
	assert.Len(t, keys, len(catalog.All()))

	next, ok := s.Next("ipca")
	require.True(t, ok)
	assert.True(t, next.After(time.Now()))
	_, ok = s.Next("nope")
	assert.False(t, ok)

	s.Stop()
	assert.Empty(t, s.Keys())
}

func TestStartRunsTasks(t *testing.T) {
	refresher := &fakeRefresher{}
	s := scheduler.NewScheduler(quietLogger(), refresher)
	defer s.Stop()

	require.NoError(t, s.Start([]indicators.Indicator{{Key: "ipca", RefreshCron: "@every 1s"}}))

	assert.Eventually(t, func() bool {
		refresh, _ := refresher.calls()
		return len(refresh) > 0
	}, 3*time.Second, 50*time.Millisecond)
}

func TestStartRejectsBadCron(t *testing.T) {
	s := scheduler.NewScheduler(quietLogger(), &fakeRefresher{})
	err := s.Start([]indicators.Indicator{{Key: "ipca", RefreshCron: "not a cron"}})
	assert.Error(t, err)
	assert.Empty(t, s.Keys())
}
