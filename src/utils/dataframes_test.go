package utils_test

import (
	"painel/src/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionDataFramesByIndex(t *testing.T) {
	ipca := utils.SeriesFrame("date", "IPCA", []string{"2024-02-01", "2024-01-01"}, []float64{0.83, 0.42})
	selic := utils.SeriesFrame("date", "SELIC", []string{"2024-01-01", "2024-03-01"}, []float64{11.65, 10.65})

	df := utils.UnionDataFramesByIndex("date", ipca, selic)
	require.NoError(t, df.Err)

	assert.Equal(t, [][]string{
		{"date", "IPCA", "SELIC"},
		{"2024-01-01", "0.42", "11.65"},
		{"2024-02-01", "0.83", ""},
		{"2024-03-01", "", "10.65"},
	}, df.Records())
}

func TestUnionDataFramesByIndexFillsGaps(t *testing.T) {
	first := utils.SeriesFrame("date", "PIB", []string{"2023-01-01"}, []float64{1})
	second := utils.SeriesFrame("date", "PIB", []string{"2023-01-01", "2023-04-01"}, []float64{9, 2})

	df := utils.UnionDataFramesByIndex("date", first, second)
	assert.Equal(t, [][]string{
		{"date", "PIB"},
		{"2023-01-01", "1"},
		{"2023-04-01", "2"},
	}, df.Records())
}

func TestUnionDataFramesByIndexEmpty(t *testing.T) {
	df := utils.UnionDataFramesByIndex("date")
	assert.Equal(t, 0, df.Nrow())
}
