package render

import (
	"bytes"
	"fmt"
	"painel/src/charts"
	"strconv"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

const (
	dataSheet  = "Dados"
	chartSheet = "Grafico"
)

// ExportXLSX writes the chart values to a data sheet and adds a native
// excel chart over them on a second sheet.
func ExportXLSX(c *charts.Chart) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(dataSheet, "A1", &[]interface{}{"Data", fmt.Sprintf("%s (%s)", c.Label, c.Unit)}); err != nil {
		return nil, err
	}
	for i, label := range c.Labels {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(dataSheet, cell, &[]interface{}{label, c.Values[i]}); err != nil {
			return nil, err
		}
	}

	if len(c.Labels) > 0 {
		chartType := excelize.Line
		if c.Type == charts.Bar {
			chartType = excelize.Col
		}
		last := len(c.Labels) + 1
		chart := excelize.Chart{
			Type: chartType,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", dataSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", dataSheet, last),
			}},
			Title: []excelize.RichTextRun{{
				Text: c.Title,
				Font: &excelize.Font{Bold: true, Size: 18},
			}},
			Legend: excelize.ChartLegend{Position: "bottom"},
			YAxis:  excelize.ChartAxis{MajorGridLines: true},
			Dimension: excelize.ChartDimension{
				Width:  1200,
				Height: 600,
			},
		}
		index, err := f.NewSheet(chartSheet)
		if err != nil {
			return nil, err
		}
		if err := f.AddChart(chartSheet, "A1", &chart); err != nil {
			return nil, fmt.Errorf("failed to add chart to sheet %s: %w", chartSheet, err)
		}
		f.SetActiveSheet(index)
	}

	return f.WriteToBuffer()
}

// ExportTableXLSX writes df to a single data sheet. The first column is
// written as text, numeric cells of the other columns as numbers.
func ExportTableXLSX(df dataframe.DataFrame) (*bytes.Buffer, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return nil, err
	}
	for i, record := range df.Records() {
		row := make([]interface{}, len(record))
		for j, cell := range record {
			row[j] = cell
			if i == 0 || j == 0 || cell == "" {
				continue
			}
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				row[j] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(dataSheet, "A", "A", 14); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// GeneratePDF generates a PDF from an array of HTML strings, one page each.
// It needs the wkhtmltopdf binary on PATH.
func GeneratePDF(htmlContents []string) (*bytes.Buffer, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	for _, html := range htmlContents {
		page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(html)))
		page.EnableLocalFileAccess.Set(true)
		page.JavascriptDelay.Set(1000)
		pdfg.AddPage(page)
	}

	pdfg.Dpi.Set(150)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationLandscape)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return bytes.NewBuffer(pdfg.Bytes()), nil
}
