package services

import (
	"context"
	"painel/src/timeseries"
	"painel/src/utils"
	redis_utils "painel/src/utils/redis"
	"time"
)

// SeriesCache stores served series between refreshes.
type SeriesCache interface {
	Get(ctx context.Context, key string) (*timeseries.TimeSeries, bool)
	Set(ctx context.Context, key string, series *timeseries.TimeSeries)
	Delete(ctx context.Context, key string)
}

type memorySeriesCache struct {
	cache *utils.Cache[timeseries.TimeSeries]
	ttl   time.Duration
}

func NewMemorySeriesCache(ttl time.Duration) SeriesCache {
	return &memorySeriesCache{cache: utils.NewCache[timeseries.TimeSeries](), ttl: ttl}
}

func (c *memorySeriesCache) Get(_ context.Context, key string) (*timeseries.TimeSeries, bool) {
	s, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	return &s, true
}

func (c *memorySeriesCache) Set(_ context.Context, key string, series *timeseries.TimeSeries) {
	c.cache.Set(key, *series, c.ttl)
}

func (c *memorySeriesCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

type redisSeriesCache struct {
	handler *redis_utils.RedisHandler
	ttl     time.Duration
}

// NewRedisSeriesCache shares cached series between processes. Redis failures
// are logged and treated as misses.
func NewRedisSeriesCache(handler *redis_utils.RedisHandler, ttl time.Duration) SeriesCache {
	return &redisSeriesCache{handler: handler, ttl: ttl}
}

func redisKey(key string) string {
	return "painel:series:" + redis_utils.GenerateUUID("series", key)
}

func (c *redisSeriesCache) Get(ctx context.Context, key string) (*timeseries.TimeSeries, bool) {
	var s timeseries.TimeSeries
	if err := c.handler.Get(ctx, redisKey(key), &s); err != nil {
		return nil, false
	}
	return &s, true
}

func (c *redisSeriesCache) Set(ctx context.Context, key string, series *timeseries.TimeSeries) {
	if err := c.handler.Set(ctx, redisKey(key), series, c.ttl); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).WithField("indicator", key).Warn("could not cache series")
	}
}

func (c *redisSeriesCache) Delete(ctx context.Context, key string) {
	if err := c.handler.Delete(ctx, redisKey(key)); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).WithField("indicator", key).Warn("could not evict series")
	}
}
