package services

import (
	"context"
	"errors"
	"fmt"
	"painel/src/clients/bcb"
	"painel/src/clients/sidra"
	"painel/src/indicators"
	"painel/src/models"
	"painel/src/repositories"
	"painel/src/timeseries"
	"painel/src/utils"
	"painel/src/utils/metrics"
	"sort"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownIndicator = errors.New("unknown indicator")
	ErrNotFound         = errors.New("no data stored for indicator")
)

const populateConcurrency = 3

const refreshLogRetention = 365 * 24 * time.Hour

type IndicatorServiceI interface {
	Catalog() *indicators.Catalog
	Fetch(ctx context.Context, ind indicators.Indicator) ([]models.Observation, error)
	Refresh(ctx context.Context, key string) (int, error)
	RefreshAll(ctx context.Context) error
	PopulateIfEmpty(ctx context.Context) error
	RefreshIfStale(ctx context.Context, key string, maxAge time.Duration) (bool, error)
	GetSeries(ctx context.Context, key string) (*timeseries.TimeSeries, error)
	Summary(ctx context.Context) ([]IndicatorStatus, error)
}

// IndicatorStatus is the stored state of one indicator.
type IndicatorStatus struct {
	Key         string     `json:"key"`
	Label       string     `json:"label"`
	Unit        string     `json:"unit"`
	Panel       string     `json:"panel"`
	Source      string     `json:"source"`
	Count       int        `json:"count"`
	First       *time.Time `json:"first,omitempty"`
	Last        *time.Time `json:"last,omitempty"`
	LastRefresh *time.Time `json:"lastRefresh,omitempty"`
}

type IndicatorService struct {
	catalog               *indicators.Catalog
	observationRepository repositories.ObservationRepository
	refreshLogRepository  repositories.RefreshLogRepository

	bcbClient   bcb.BCBServiceClientI
	sidraClient sidra.SIDRAServiceClientI

	cache   SeriesCache
	metrics *metrics.Recorder
	now     func() time.Time

	// generations counts writes per indicator; a read that raced a refresh
	// must not cache what it loaded.
	genMu       sync.Mutex
	generations map[string]uint64
}

func NewIndicatorService(
	catalog *indicators.Catalog,
	observationRepository repositories.ObservationRepository,
	refreshLogRepository repositories.RefreshLogRepository,
	bcbClient bcb.BCBServiceClientI,
	sidraClient sidra.SIDRAServiceClientI,
	cache SeriesCache,
	recorder *metrics.Recorder,
) *IndicatorService {
	return &IndicatorService{
		catalog:               catalog,
		observationRepository: observationRepository,
		refreshLogRepository:  refreshLogRepository,
		bcbClient:             bcbClient,
		sidraClient:           sidraClient,
		cache:                 cache,
		metrics:               recorder,
		now:                   time.Now,
		generations:           map[string]uint64{},
	}
}

func (s *IndicatorService) generation(key string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generations[key]
}

// invalidate evicts the cached series and starts a new generation for key.
func (s *IndicatorService) invalidate(ctx context.Context, key string) {
	s.genMu.Lock()
	s.generations[key]++
	s.genMu.Unlock()
	s.cache.Delete(ctx, key)
}

// WithClock replaces the time source used for refresh windows and staleness.
func (s *IndicatorService) WithClock(now func() time.Time) *IndicatorService {
	s.now = now
	return s
}

func (s *IndicatorService) Catalog() *indicators.Catalog {
	return s.catalog
}

func (s *IndicatorService) lookup(key string) (indicators.Indicator, error) {
	ind, ok := s.catalog.Lookup(key)
	if !ok {
		return indicators.Indicator{}, fmt.Errorf("%w: %s", ErrUnknownIndicator, key)
	}
	return ind, nil
}

// Fetch downloads and normalises the upstream history of ind without storing it.
func (s *IndicatorService) Fetch(ctx context.Context, ind indicators.Indicator) ([]models.Observation, error) {
	s.metrics.RecordFetch(ind.Key, string(ind.Source))

	var observations []models.Observation
	switch ind.Source {
	case indicators.BCB:
		var start, end *time.Time
		if ind.RecentDays > 0 {
			today := s.now().UTC().Truncate(24 * time.Hour)
			from := today.AddDate(0, 0, -ind.RecentDays)
			start, end = &from, &today
		}
		points, err := s.bcbClient.GetSeries(ctx, ind.Code, start, end)
		if err != nil {
			return nil, err
		}
		for _, p := range points {
			if ind.Keep(p.Date) {
				observations = append(observations, models.Observation{Indicator: ind.Key, Date: p.Date, Value: p.Value})
			}
		}
	case indicators.SIDRA:
		points, err := s.sidraClient.GetSeries(ctx, ind.Code)
		if err != nil {
			return nil, err
		}
		for _, p := range points {
			if ind.Keep(p.Date) {
				observations = append(observations, models.Observation{Indicator: ind.Key, Date: p.Date, Value: p.Value})
			}
		}
	default:
		return nil, fmt.Errorf("indicator %s: unsupported source %q", ind.Key, ind.Source)
	}

	if ind.Aggregation == indicators.MonthlyMean {
		observations = monthlyMean(ind.Key, observations)
	}
	return observations, nil
}

// monthlyMean groups observations by calendar month and averages them, keyed
// by the first day of the month.
func monthlyMean(key string, observations []models.Observation) []models.Observation {
	if len(observations) == 0 {
		return observations
	}

	months := make([]string, len(observations))
	values := make([]float64, len(observations))
	seen := map[string]bool{}
	var keys []string
	for i, o := range observations {
		months[i] = o.Date.Format("2006-01")
		values[i] = o.Value
		if !seen[months[i]] {
			seen[months[i]] = true
			keys = append(keys, months[i])
		}
	}
	sort.Strings(keys)

	df := dataframe.New(
		series.New(months, series.String, "Month"),
		series.New(values, series.Float, "Value"),
	)

	out := make([]models.Observation, 0, len(keys))
	for _, month := range keys {
		group := df.Filter(dataframe.F{Colname: "Month", Comparator: series.Eq, Comparando: month})
		date, err := time.Parse("2006-01", month)
		if err != nil {
			continue
		}
		out = append(out, models.Observation{Indicator: key, Date: date, Value: group.Col("Value").Mean()})
	}
	return out
}

// Refresh fetches one indicator and upserts it, returning the rows written.
func (s *IndicatorService) Refresh(ctx context.Context, key string) (int, error) {
	ind, err := s.lookup(key)
	if err != nil {
		return 0, err
	}
	logger := utils.LoggerFromContext(ctx).WithField("indicator", key)
	start := time.Now()

	observations, err := s.Fetch(ctx, ind)
	if err != nil {
		s.metrics.RecordError("fetch")
		return 0, fmt.Errorf("refreshing %s: %w", key, err)
	}
	s.invalidate(ctx, key)
	rows, err := s.observationRepository.Upsert(ctx, key, observations)
	s.invalidate(ctx, key)
	if err != nil {
		s.metrics.RecordError("upsert")
		return 0, fmt.Errorf("refreshing %s: %w", key, err)
	}
	if err := s.refreshLogRepository.MarkRefresh(ctx, key, s.now(), rows); err != nil {
		logger.WithError(err).Warn("could not record refresh")
	}

	s.metrics.RecordRows(key, rows)
	s.metrics.RecordLatency("refresh", time.Since(start))
	logger.WithFields(logrus.Fields{
		"rows":     rows,
		"duration": time.Since(start).String(),
	}).Info("indicator refreshed")
	return rows, nil
}

// forEach runs fn for every catalogue entry with bounded concurrency. A
// failing indicator does not stop the others; all failures are joined.
func (s *IndicatorService) forEach(ctx context.Context, fn func(ctx context.Context, ind indicators.Indicator) error) error {
	var (
		mu   sync.Mutex
		errs []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(populateConcurrency)
	for _, ind := range s.catalog.All() {
		ind := ind
		g.Go(func() error {
			if err := fn(gctx, ind); err != nil {
				utils.LoggerFromContext(ctx).WithError(err).WithField("indicator", ind.Key).Error("indicator update failed")
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// RefreshAll refreshes every indicator, then prunes refresh log entries
// older than refreshLogRetention.
func (s *IndicatorService) RefreshAll(ctx context.Context) error {
	err := s.forEach(ctx, func(ctx context.Context, ind indicators.Indicator) error {
		_, err := s.Refresh(ctx, ind.Key)
		return err
	})
	pruned, cleanupErr := s.refreshLogRepository.Cleanup(ctx, s.now().Add(-refreshLogRetention))
	if cleanupErr != nil {
		utils.LoggerFromContext(ctx).WithError(cleanupErr).Warn("could not prune refresh log")
	} else if pruned > 0 {
		utils.LoggerFromContext(ctx).WithField("rows", pruned).Info("refresh log pruned")
	}
	return err
}

// PopulateIfEmpty refreshes every indicator that has no stored rows yet.
func (s *IndicatorService) PopulateIfEmpty(ctx context.Context) error {
	return s.forEach(ctx, func(ctx context.Context, ind indicators.Indicator) error {
		count, err := s.observationRepository.Count(ctx, ind.Key)
		if err != nil {
			return fmt.Errorf("counting %s: %w", ind.Key, err)
		}
		if count > 0 {
			return nil
		}
		utils.LoggerFromContext(ctx).WithField("indicator", ind.Key).Info("indicator empty, populating")
		_, err = s.Refresh(ctx, ind.Key)
		return err
	})
}

// RefreshIfStale refreshes key when its latest stored date is older than
// maxAge, or when nothing is stored.
func (s *IndicatorService) RefreshIfStale(ctx context.Context, key string, maxAge time.Duration) (bool, error) {
	if _, err := s.lookup(key); err != nil {
		return false, err
	}
	latest, err := s.observationRepository.LatestDate(ctx, key)
	if err != nil {
		return false, err
	}
	if latest != nil && s.now().Sub(*latest) <= maxAge {
		return false, nil
	}
	if _, err := s.Refresh(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}

// GetSeries returns the stored series of key ordered by date. Indicators with
// RecentDays only return the days before their latest observation.
func (s *IndicatorService) GetSeries(ctx context.Context, key string) (*timeseries.TimeSeries, error) {
	ind, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}
	gen := s.generation(key)

	var observations []models.Observation
	if ind.RecentDays > 0 {
		latest, err := s.observationRepository.LatestDate(ctx, key)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		observations, err = s.observationRepository.ListSince(ctx, key, latest.AddDate(0, 0, -ind.RecentDays))
		if err != nil {
			return nil, err
		}
	} else {
		observations, err = s.observationRepository.List(ctx, key)
		if err != nil {
			return nil, err
		}
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	ts := &timeseries.TimeSeries{
		Dates:  make([]string, len(observations)),
		Values: make([]float64, len(observations)),
		Label:  ind.Label,
		Unit:   ind.Unit,
	}
	for i, o := range observations {
		ts.Dates[i] = o.Date.Format(utils.ShortDashDateLayout)
		ts.Values[i] = o.Value
	}
	if s.generation(key) == gen {
		s.cache.Set(ctx, key, ts)
	}
	return ts, nil
}

func (s *IndicatorService) Summary(ctx context.Context) ([]IndicatorStatus, error) {
	all := s.catalog.All()
	statuses := make([]IndicatorStatus, 0, len(all))
	for _, ind := range all {
		bounds, err := s.observationRepository.Bounds(ctx, ind.Key)
		if err != nil {
			return nil, fmt.Errorf("summarising %s: %w", ind.Key, err)
		}
		status := IndicatorStatus{
			Key:    ind.Key,
			Label:  ind.Label,
			Unit:   ind.Unit,
			Panel:  string(ind.Panel),
			Source: string(ind.Source),
			Count:  bounds.Count,
			First:  bounds.First,
			Last:   bounds.Last,
		}
		last, err := s.refreshLogRepository.GetLastRefresh(ctx, ind.Key)
		if err != nil {
			return nil, fmt.Errorf("summarising %s: %w", ind.Key, err)
		}
		if last != nil {
			status.LastRefresh = &last.RefreshedAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
