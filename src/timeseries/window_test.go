package timeseries_test

import (
	"painel/src/timeseries"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterLastYears(t *testing.T) {
	t.Run("keeps the trailing window with an inclusive cutoff", func(t *testing.T) {
		dates := []string{"2010-06-01", "2015-06-01", "2020-06-01", "2023-06-01"}
		values := []float64{1, 2, 3, 4}

		w, err := timeseries.FilterLastYears(dates, values, 10)
		require.NoError(t, err)

		assert.Equal(t, []string{"2015-06-01", "2020-06-01", "2023-06-01"}, w.Dates)
		assert.Equal(t, []float64{2, 3, 4}, w.Values)
		assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), w.MostRecent)
		assert.Equal(t, time.Date(2013, 6, 1, 0, 0, 0, 0, time.UTC), w.Cutoff)
		assert.Zero(t, w.Skipped)
	})

	t.Run("entry exactly on the cutoff is kept", func(t *testing.T) {
		dates := []string{"2013-05-31", "2013-06-01", "2023-06-01"}
		w, err := timeseries.FilterLastYears(dates, []float64{1, 2, 3}, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"2013-06-01", "2023-06-01"}, w.Dates)
	})

	t.Run("zero years keeps only the most recent date", func(t *testing.T) {
		dates := []string{"2023-06-01", "2022-06-01", "2023-06-01", "2023-05-31"}
		w, err := timeseries.FilterLastYears(dates, []float64{1, 2, 3, 4}, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"2023-06-01", "2023-06-01"}, w.Dates)
		assert.Equal(t, []float64{1, 3}, w.Values)
	})

	t.Run("unsorted input keeps relative order", func(t *testing.T) {
		dates := []string{"2020-01-01", "2005-01-01", "2023-01-01", "2019-01-01"}
		w, err := timeseries.FilterLastYears(dates, []float64{1, 2, 3, 4}, 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"2020-01-01", "2023-01-01", "2019-01-01"}, w.Dates)
		assert.Equal(t, []float64{1, 3, 4}, w.Values)
	})

	t.Run("empty input is not an error", func(t *testing.T) {
		w, err := timeseries.FilterLastYears([]string{}, []float64{}, 10)
		require.NoError(t, err)
		assert.NotNil(t, w.Dates)
		assert.Empty(t, w.Dates)
		assert.Empty(t, w.Values)

		w, err = timeseries.FilterLastYears(nil, nil, 10)
		require.NoError(t, err)
		assert.Empty(t, w.Dates)
	})

	t.Run("unparseable dates are skipped and counted", func(t *testing.T) {
		dates := []string{"2020-01-01", "not a date", "2021-02-30", "2021-01-01"}
		w, err := timeseries.FilterLastYears(dates, []float64{1, 2, 3, 4}, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"2020-01-01", "2021-01-01"}, w.Dates)
		assert.Equal(t, []float64{1, 4}, w.Values)
		assert.Equal(t, 2, w.Skipped)
	})

	t.Run("only unparseable dates yields an empty window", func(t *testing.T) {
		w, err := timeseries.FilterLastYears([]string{"a", "b"}, []float64{1, 2}, 10)
		require.NoError(t, err)
		assert.Empty(t, w.Dates)
		assert.Equal(t, 2, w.Skipped)
		assert.True(t, w.Cutoff.IsZero())
	})

	t.Run("mixed granularities", func(t *testing.T) {
		dates := []string{"2000", "2015", "2020-03", "20230115"}
		w, err := timeseries.FilterLastYears(dates, []float64{1, 2, 3, 4}, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"2015", "2020-03", "20230115"}, w.Dates)
	})

	t.Run("length mismatch fails the whole call", func(t *testing.T) {
		_, err := timeseries.FilterLastYears([]string{"2020-01-01"}, []float64{1, 2}, 10)
		assert.ErrorIs(t, err, timeseries.ErrLengthMismatch)
	})

	t.Run("negative lookback fails", func(t *testing.T) {
		_, err := timeseries.FilterLastYears([]string{"2020-01-01"}, []float64{1}, -1)
		assert.ErrorIs(t, err, timeseries.ErrNegativeLookback)
	})

	t.Run("does not share memory with the input", func(t *testing.T) {
		dates := []string{"2020-01-01"}
		values := []float64{1}
		w, err := timeseries.FilterLastYears(dates, values, 1)
		require.NoError(t, err)
		w.Dates[0], w.Values[0] = "x", 9
		assert.Equal(t, "2020-01-01", dates[0])
		assert.Equal(t, 1.0, values[0])
	})
}

func TestSubtractYears(t *testing.T) {
	tests := []struct {
		in       time.Time
		years    int
		expected time.Time
	}{
		{time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), 10, time.Date(2013, 6, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 1, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 4, time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 20, time.Date(2003, 12, 31, 0, 0, 0, 0, time.UTC)},
		{time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), 0, time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, timeseries.SubtractYears(tt.in, tt.years), "%v - %d years", tt.in, tt.years)
	}
}

func TestParseDate(t *testing.T) {
	valid := map[string]time.Time{
		"2023-07-15": time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
		"2023-07":    time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
		"20230715":   time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
		"2023":       time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for in, expected := range valid {
		got, ok := timeseries.ParseDate(in)
		assert.True(t, ok, in)
		assert.Equal(t, expected, got, in)
	}

	for _, in := range []string{"", "15/07/2023", "2023-7-15", "2023-02-30", "year"} {
		_, ok := timeseries.ParseDate(in)
		assert.False(t, ok, in)
	}
}

func TestTimeSeriesValidate(t *testing.T) {
	assert.NoError(t, timeseries.TimeSeries{Dates: []string{"2020"}, Values: []float64{1}}.Validate())
	err := timeseries.TimeSeries{Dates: []string{"2020"}}.Validate()
	assert.ErrorIs(t, err, timeseries.ErrLengthMismatch)
	assert.True(t, timeseries.TimeSeries{}.IsEmpty())
}
