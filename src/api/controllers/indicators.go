package controllers

import (
	"bytes"
	"context"
	"errors"
	"painel/src/charts"
	"painel/src/indicators"
	"painel/src/render"
	"painel/src/schemas"
	"painel/src/services"
	"painel/src/timeseries"
	"painel/src/utils"
)

func (c *Controller) Lookup(key string) (indicators.Indicator, bool) {
	return c.Service.Catalog().Lookup(key)
}

func (c *Controller) ListIndicators(ctx context.Context) ([]schemas.IndicatorResponse, error) {
	statuses, err := c.Service.Summary(ctx)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]services.IndicatorStatus, len(statuses))
	for _, s := range statuses {
		byKey[s.Key] = s
	}

	all := c.Service.Catalog().All()
	out := make([]schemas.IndicatorResponse, 0, len(all))
	for _, ind := range all {
		status := byKey[ind.Key]
		out = append(out, schemas.IndicatorResponse{
			Key:           ind.Key,
			Label:         ind.Label,
			Unit:          ind.Unit,
			Panel:         string(ind.Panel),
			Source:        string(ind.Source),
			Code:          ind.Code,
			ChartTitle:    ind.Chart.Title,
			ChartType:     string(ind.Chart.Type),
			LabelMode:     string(ind.Chart.LabelMode),
			LookbackYears: ind.Chart.LookbackYears,
			RefreshCron:   ind.RefreshCron,
			Count:         status.Count,
			First:         status.First,
			Last:          status.Last,
			LastRefresh:   status.LastRefresh,
		})
	}
	return out, nil
}

// mapError turns service sentinel errors into HTTP errors.
func mapError(err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownIndicator):
		return utils.NotFound(err.Error())
	case errors.Is(err, services.ErrNotFound), errors.Is(err, charts.ErrNoData):
		return utils.NotFound(err.Error())
	case errors.Is(err, timeseries.ErrNegativeLookback):
		return utils.UnprocessableEntity(err.Error())
	}
	if _, ok := utils.AsHTTPError(err); ok {
		return utils.BadGateway(err.Error())
	}
	return err
}

func (c *Controller) GetSeries(ctx context.Context, key string) (*timeseries.TimeSeries, error) {
	series, err := c.Service.GetSeries(ctx, key)
	if err != nil {
		return nil, mapError(err)
	}
	return series, nil
}

// GetChart builds the chart of key. A window with no data yields a chart
// with empty labels rather than an error.
func (c *Controller) GetChart(ctx context.Context, key string, query schemas.ChartQuery) (*charts.Chart, error) {
	ind, ok := c.Lookup(key)
	if !ok {
		return nil, utils.NotFound("unknown indicator: " + key)
	}
	series, err := c.Service.GetSeries(ctx, key)
	if err != nil {
		return nil, mapError(err)
	}

	var opts []charts.Option
	if query.Years != nil {
		opts = append(opts, charts.WithLookback(*query.Years))
	}
	if mode, ok := query.LabelMode(); ok {
		opts = append(opts, charts.WithLabelMode(mode))
	}

	chart, err := charts.Build(ind.Chart, *series, opts...)
	if errors.Is(err, charts.ErrEmptyWindow) {
		return emptyChart(ind, series), nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	c.Metrics.RecordChartBuild(key)
	return chart, nil
}

func emptyChart(ind indicators.Indicator, series *timeseries.TimeSeries) *charts.Chart {
	yAxis := ind.Chart.YAxisTitle
	if yAxis == "" {
		yAxis = series.Unit
	}
	return &charts.Chart{
		ID:               ind.Chart.ID,
		Title:            ind.Chart.Title,
		Type:             ind.Chart.Type,
		Label:            series.Label,
		Unit:             series.Unit,
		YAxisTitle:       yAxis,
		Labels:           []string{},
		Values:           []float64{},
		BorderColors:     []string{},
		BackgroundColors: []string{},
	}
}

func (c *Controller) ExportXLSX(ctx context.Context, key string, query schemas.ChartQuery) (*bytes.Buffer, error) {
	chart, err := c.GetChart(ctx, key, query)
	if err != nil {
		return nil, err
	}
	return render.ExportXLSX(chart)
}

func (c *Controller) Refresh(ctx context.Context, key string) (int, error) {
	rows, err := c.Service.Refresh(ctx, key)
	if err != nil {
		return 0, mapError(err)
	}
	return rows, nil
}
