package timeseries

import (
	"errors"
	"fmt"
)

var (
	ErrLengthMismatch   = errors.New("dates and values have different lengths")
	ErrNegativeLookback = errors.New("lookback years must not be negative")
)

// TimeSeries is the payload exchanged with the dashboard: index-aligned dates
// and values plus display metadata that is passed through untouched.
type TimeSeries struct {
	Dates  []string  `json:"dates"`
	Values []float64 `json:"values"`
	Label  string    `json:"label,omitempty"`
	Unit   string    `json:"unit,omitempty"`
}

// Validate reports a structural problem with the series.
func (s TimeSeries) Validate() error {
	return checkAligned(s.Dates, s.Values)
}

func (s TimeSeries) IsEmpty() bool {
	return len(s.Dates) == 0
}

// Len returns the number of points. Callers should Validate first.
func (s TimeSeries) Len() int {
	return len(s.Dates)
}

func checkAligned(dates []string, values []float64) error {
	if len(dates) != len(values) {
		return fmt.Errorf("%w: %d dates, %d values", ErrLengthMismatch, len(dates), len(values))
	}
	return nil
}
