package timeseries

import (
	"time"
)

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"20060102",
	"2006",
}

// Window is the trailing slice of a series kept by FilterLastYears.
type Window struct {
	Dates      []string
	Values     []float64
	Skipped    int
	MostRecent time.Time
	Cutoff     time.Time
}

// Series returns the window as a TimeSeries carrying the given metadata.
func (w *Window) Series(label, unit string) TimeSeries {
	return TimeSeries{Dates: w.Dates, Values: w.Values, Label: label, Unit: unit}
}

// ParseDate parses the date formats produced by the upstream sources.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if len(s) != len(layout) {
			continue
		}
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SubtractYears moves t back by years keeping month and day. A day that does
// not exist in the target month (29 Feb) is clamped to the month's last day.
func SubtractYears(t time.Time, years int) time.Time {
	year := t.Year() - years
	day := t.Day()
	if last := daysIn(t.Month(), year); day > last {
		day = last
	}
	return time.Date(year, t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FilterLastYears keeps the entries dated within lookbackYears of the most
// recent date in the series, bounds inclusive, in their original order.
// Entries whose date cannot be parsed are dropped and counted in Skipped.
func FilterLastYears(dates []string, values []float64, lookbackYears int) (*Window, error) {
	if err := checkAligned(dates, values); err != nil {
		return nil, err
	}
	if lookbackYears < 0 {
		return nil, ErrNegativeLookback
	}

	parsed := make([]time.Time, len(dates))
	valid := make([]bool, len(dates))
	w := &Window{Dates: []string{}, Values: []float64{}}
	found := false
	for i, d := range dates {
		t, ok := ParseDate(d)
		if !ok {
			w.Skipped++
			continue
		}
		parsed[i], valid[i] = t, true
		if !found || t.After(w.MostRecent) {
			w.MostRecent, found = t, true
		}
	}
	if !found {
		return w, nil
	}

	w.Cutoff = SubtractYears(w.MostRecent, lookbackYears)
	for i := range dates {
		if !valid[i] || parsed[i].Before(w.Cutoff) {
			continue
		}
		w.Dates = append(w.Dates, dates[i])
		w.Values = append(w.Values, values[i])
	}
	return w, nil
}
