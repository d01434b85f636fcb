package controllers

import (
	"context"
	"painel/src/scheduler"
	"painel/src/services"
	"painel/src/utils"
	"sort"
	"time"
)

// Controller drives the refresh jobs of a worker process.
type Controller struct {
	Service   services.IndicatorServiceI
	Scheduler *scheduler.Scheduler
}

func NewController(service services.IndicatorServiceI, sched *scheduler.Scheduler) *Controller {
	return &Controller{Service: service, Scheduler: sched}
}

type Schedule struct {
	Indicator string    `json:"indicator"`
	Next      time.Time `json:"next"`
}

// GetSchedules lists the scheduled indicators ordered by key.
func (c *Controller) GetSchedules() []Schedule {
	keys := c.Scheduler.Keys()
	sort.Strings(keys)
	out := make([]Schedule, 0, len(keys))
	for _, key := range keys {
		if next, ok := c.Scheduler.Next(key); ok {
			out = append(out, Schedule{Indicator: key, Next: next})
		}
	}
	return out
}

func (c *Controller) RefreshAll(ctx context.Context) error {
	return c.Service.RefreshAll(ctx)
}

func (c *Controller) Refresh(ctx context.Context, key string) (int, error) {
	if _, ok := c.Service.Catalog().Lookup(key); !ok {
		return 0, utils.NotFound("unknown indicator: " + key)
	}
	return c.Service.Refresh(ctx, key)
}
