package timeseries_test

import (
	"painel/src/timeseries"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLabels(t *testing.T) {
	tests := []struct {
		name     string
		dates    []string
		mode     timeseries.LabelMode
		expected []string
	}{
		{
			name:     "year only takes the first four characters",
			dates:    []string{"2023-07-15", "2011", "1999-12"},
			mode:     timeseries.YearOnly,
			expected: []string{"2023", "2011", "1999"},
		},
		{
			name:     "year only keeps strings without a numeric year",
			dates:    []string{"abc", "20x1-01-01", ""},
			mode:     timeseries.YearOnly,
			expected: []string{"abc", "20x1-01-01", ""},
		},
		{
			name:     "trimester one label per quarter",
			dates:    []string{"2020-01-15", "2020-04-20", "2020-07-10", "2020-10-05"},
			mode:     timeseries.Trimester,
			expected: []string{"2020 T1", "2020 T2", "2020 T3", "2020 T4"},
		},
		{
			name:     "trimester quarter boundaries",
			dates:    []string{"2023-03-31", "2023-04-01", "2023-06-30", "2023-12-01"},
			mode:     timeseries.Trimester,
			expected: []string{"2023 T1", "2023 T2", "2023 T2", "2023 T4"},
		},
		{
			name:     "trimester falls back per entry",
			dates:    []string{"2023-07-15", "2023", "2023-13-01", "2023-00-01", "2023-ab-01"},
			mode:     timeseries.Trimester,
			expected: []string{"2023 T3", "2023", "2023-13-01", "2023-00-01", "2023-ab-01"},
		},
		{
			name:     "monthly abbreviations",
			dates:    []string{"2023-01-01", "2023-07-15", "2024-12-31"},
			mode:     timeseries.Monthly,
			expected: []string{"2023 - Jan", "2023 - Jul", "2024 - Dec"},
		},
		{
			name:     "monthly accepts year-month strings",
			dates:    []string{"2012-02"},
			mode:     timeseries.Monthly,
			expected: []string{"2012 - Feb"},
		},
		{
			name:     "monthly out of range month falls back",
			dates:    []string{"2023-13-01", "2023-05-01"},
			mode:     timeseries.Monthly,
			expected: []string{"2023-13-01", "2023 - May"},
		},
		{
			name:     "daily is the identity",
			dates:    []string{"2024-08-01", "garbage"},
			mode:     timeseries.Daily,
			expected: []string{"2024-08-01", "garbage"},
		},
		{
			name:     "unknown mode is the identity",
			dates:    []string{"2024-08-01"},
			mode:     timeseries.LabelMode("weekly"),
			expected: []string{"2024-08-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timeseries.FormatLabels(tt.dates, tt.mode))
		})
	}
}

func TestFormatLabelsMonthlyAndYearMonthMatch(t *testing.T) {
	dates := []string{"2019-01-31", "2019-06-01", "bad", "2020-11-11"}
	assert.Equal(t,
		timeseries.FormatLabels(dates, timeseries.Monthly),
		timeseries.FormatLabels(dates, timeseries.YearMonth),
	)
}

func TestFormatLabelsEmpty(t *testing.T) {
	modes := []timeseries.LabelMode{
		timeseries.YearOnly, timeseries.Trimester, timeseries.Monthly,
		timeseries.YearMonth, timeseries.Daily, "",
	}
	for _, mode := range modes {
		labels := timeseries.FormatLabels(nil, mode)
		assert.NotNil(t, labels, "mode %q", mode)
		assert.Empty(t, labels, "mode %q", mode)
	}
}

func TestFormatLabelsDoesNotMutateInput(t *testing.T) {
	dates := []string{"2023-07-15"}
	labels := timeseries.FormatLabels(dates, timeseries.Trimester)
	labels[0] = "changed"
	assert.Equal(t, "2023-07-15", dates[0])
}

func TestFormatLabelsKeepsLength(t *testing.T) {
	dates := []string{"2023-07-15", "", "x", "2023-01", "2023"}
	for _, mode := range []timeseries.LabelMode{timeseries.YearOnly, timeseries.Trimester, timeseries.Monthly, timeseries.Daily} {
		assert.Len(t, timeseries.FormatLabels(dates, mode), len(dates))
	}
}

func TestParseLabelMode(t *testing.T) {
	mode, ok := timeseries.ParseLabelMode("TRIMESTER")
	assert.True(t, ok)
	assert.Equal(t, timeseries.Trimester, mode)

	mode, ok = timeseries.ParseLabelMode("yearmonth")
	assert.True(t, ok)
	assert.Equal(t, timeseries.YearMonth, mode)

	mode, ok = timeseries.ParseLabelMode("hourly")
	assert.False(t, ok)
	assert.Equal(t, timeseries.Daily, mode)
}
