package charts

import (
	"errors"
	"fmt"
	"painel/src/timeseries"
)

var (
	ErrNoData      = errors.New("series has no data")
	ErrEmptyWindow = errors.New("no data in the requested window")
)

type Type string

const (
	Bar  Type = "bar"
	Line Type = "line"
)

// Spec describes how one indicator is drawn. LookbackYears of zero means the
// full history is shown unless a lookback is requested explicitly.
type Spec struct {
	ID            string
	Title         string
	Type          Type
	LabelMode     timeseries.LabelMode
	LookbackYears int
	Palette       Palette
	YAxisTitle    string
}

// Chart is the renderer input: formatted labels, values and per-point colours.
type Chart struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Type             Type      `json:"type"`
	Label            string    `json:"label"`
	Unit             string    `json:"unit"`
	YAxisTitle       string    `json:"yAxisTitle"`
	Labels           []string  `json:"labels"`
	Values           []float64 `json:"values"`
	BorderColors     []string  `json:"borderColors"`
	BackgroundColors []string  `json:"backgroundColors"`
	Skipped          int       `json:"skipped,omitempty"`
}

type buildOptions struct {
	lookback  *int
	labelMode *timeseries.LabelMode
}

type Option func(*buildOptions)

// WithLookback overrides Spec.LookbackYears. Zero keeps only the latest date.
func WithLookback(years int) Option {
	return func(o *buildOptions) { o.lookback = &years }
}

// WithLabelMode overrides Spec.LabelMode.
func WithLabelMode(mode timeseries.LabelMode) Option {
	return func(o *buildOptions) { o.labelMode = &mode }
}

// Build turns a fetched series into a chart: existence check, optional
// trailing window, label formatting and colour mapping.
func Build(spec Spec, series timeseries.TimeSeries, opts ...Option) (*Chart, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("chart %s: %w", spec.ID, err)
	}
	if series.IsEmpty() {
		return nil, fmt.Errorf("chart %s: %w", spec.ID, ErrNoData)
	}

	dates, values := series.Dates, series.Values
	skipped := 0
	lookback := spec.LookbackYears
	if o.lookback != nil {
		lookback = *o.lookback
	}
	if o.lookback != nil || lookback > 0 {
		w, err := timeseries.FilterLastYears(dates, values, lookback)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", spec.ID, err)
		}
		if len(w.Dates) == 0 {
			return nil, fmt.Errorf("chart %s: %w", spec.ID, ErrEmptyWindow)
		}
		dates, values, skipped = w.Dates, w.Values, w.Skipped
	} else {
		values = append([]float64(nil), values...)
	}

	mode := spec.LabelMode
	if o.labelMode != nil {
		mode = *o.labelMode
	}

	palette := spec.Palette
	if palette == nil {
		palette = SkyBlue
	}
	borders, backgrounds := Colors(palette, values)

	yAxis := spec.YAxisTitle
	if yAxis == "" {
		yAxis = series.Unit
	}

	return &Chart{
		ID:               spec.ID,
		Title:            spec.Title,
		Type:             spec.Type,
		Label:            series.Label,
		Unit:             series.Unit,
		YAxisTitle:       yAxis,
		Labels:           timeseries.FormatLabels(dates, mode),
		Values:           values,
		BorderColors:     borders,
		BackgroundColors: backgrounds,
		Skipped:          skipped,
	}, nil
}
