package render_test

import (
	"bytes"
	"os/exec"
	"painel/src/charts"
	"painel/src/render"
	"painel/src/utils"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleChart(id string, typ charts.Type) *charts.Chart {
	return &charts.Chart{
		ID:               id,
		Title:            "Brasil: Variação Trimestral do PIB",
		Type:             typ,
		Label:            "PIB do Brasil",
		Unit:             "%",
		YAxisTitle:       "(%)",
		Labels:           []string{"2023 T1", "2023 T2"},
		Values:           []float64{1.4, -0.2},
		BorderColors:     []string{"rgb(135,206,250)", "rgb(255,0,0)"},
		BackgroundColors: []string{"rgba(135,206,250, 0.2)", "rgba(255,0,0, 0.2)"},
	}
}

func TestHandle(t *testing.T) {
	for _, typ := range []charts.Type{charts.Bar, charts.Line} {
		t.Run(string(typ), func(t *testing.T) {
			h := render.NewHandle(sampleChart("pib_db", typ))
			assert.Equal(t, "pib_db", h.ID())

			var buf bytes.Buffer
			require.NoError(t, h.Render(&buf))
			html := buf.String()
			assert.Contains(t, html, "2023 T1")
			assert.Contains(t, html, "pib_db")

			h.Dispose()
			h.Dispose()
			assert.True(t, h.Disposed())
			assert.ErrorIs(t, h.Render(&buf), render.ErrDisposed)
		})
	}
}

func TestLineColoursEachPoint(t *testing.T) {
	chart := sampleChart("bcpb", charts.Line)
	chart.Labels = []string{"2023-01", "2023-02", "2023-03"}
	chart.Values = []float64{5, -3, 2}
	chart.BorderColors, chart.BackgroundColors = charts.Colors(charts.SignedPalette{}, chart.Values)

	var buf bytes.Buffer
	require.NoError(t, render.NewHandle(chart).Render(&buf))
	html := buf.String()
	assert.Contains(t, html, `"piecewise"`)
	assert.Contains(t, html, "rgb(255,0,0)")
	assert.Contains(t, html, "rgb(135,206,250)")

	t.Run("uniform colours skip the visual map", func(t *testing.T) {
		chart.BorderColors, chart.BackgroundColors = charts.Colors(charts.Teal, chart.Values)
		buf.Reset()
		require.NoError(t, render.NewHandle(chart).Render(&buf))
		assert.NotContains(t, buf.String(), `"piecewise"`)
		assert.NotContains(t, buf.String(), "rgb(255,0,0)")
	})
}

func TestBoard(t *testing.T) {
	board := render.NewBoard()
	first := render.NewHandle(sampleChart("pib_db", charts.Bar))
	board.Replace(first)
	board.Replace(render.NewHandle(sampleChart("ipca", charts.Line)))

	t.Run("replace disposes the previous handle", func(t *testing.T) {
		second := render.NewHandle(sampleChart("pib_db", charts.Bar))
		board.Replace(second)
		assert.True(t, first.Disposed())
		assert.False(t, second.Disposed())

		handles := board.Handles()
		require.Len(t, handles, 2)
		assert.Equal(t, "pib_db", handles[0].ID())
		assert.Same(t, second, handles[0])
	})

	t.Run("replacing with the same handle keeps it alive", func(t *testing.T) {
		h := board.Handles()[1]
		board.Replace(h)
		assert.False(t, h.Disposed())
		assert.Len(t, board.Handles(), 2)
	})

	t.Run("render page", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, board.RenderPage(&buf, "Painel Brasil"))
		html := buf.String()
		assert.Contains(t, html, "Painel Brasil")
		assert.Contains(t, html, "pib_db")
		assert.Contains(t, html, "ipca")
	})

	t.Run("dispose removes the handle", func(t *testing.T) {
		assert.True(t, board.Dispose("ipca"))
		assert.False(t, board.Dispose("ipca"))
		assert.Len(t, board.Handles(), 1)
	})

	t.Run("close disposes everything", func(t *testing.T) {
		h := board.Handles()[0]
		board.Close()
		assert.True(t, h.Disposed())
		assert.Empty(t, board.Handles())
	})
}

func TestExportXLSX(t *testing.T) {
	buf, err := render.ExportXLSX(sampleChart("pib_db", charts.Bar))
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Dados")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Data", "PIB do Brasil (%)"}, rows[0])
	assert.Equal(t, "2023 T2", rows[2][0])
	assert.Equal(t, "-0.2", rows[2][1])
	assert.Contains(t, f.GetSheetList(), "Grafico")

	empty := sampleChart("pib_db", charts.Line)
	empty.Labels, empty.Values = nil, nil
	buf, err = render.ExportXLSX(empty)
	require.NoError(t, err)
	f2, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f2.Close()
	assert.Equal(t, []string{"Dados"}, f2.GetSheetList())
}

func TestExportTableXLSX(t *testing.T) {
	df := utils.UnionDataFramesByIndex("Data",
		utils.SeriesFrame("Data", "IPCA", []string{"2024-01-01", "2024-02-01"}, []float64{0.42, 0.83}),
		utils.SeriesFrame("Data", "SELIC", []string{"2024-02-01"}, []float64{11.15}),
	)
	buf, err := render.ExportTableXLSX(df)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	cases := map[string]string{
		"A1": "Data",
		"B1": "IPCA",
		"C1": "SELIC",
		"A2": "2024-01-01",
		"B2": "0.42",
		"C2": "",
		"C3": "11.15",
	}
	for cell, want := range cases {
		got, err := f.GetCellValue("Dados", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
	cellType, err := f.GetCellType("Dados", "B3")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
}

func TestGeneratePDF(t *testing.T) {
	if _, err := exec.LookPath("wkhtmltopdf"); err != nil {
		t.Skip("wkhtmltopdf not installed")
	}
	buf, err := render.GeneratePDF([]string{"<html><body><h1>Painel</h1></body></html>"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}
