package controllers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"painel/src/charts"
	"painel/src/indicators"
	"painel/src/render"
	"painel/src/utils"

	"github.com/go-gota/gota/dataframe"
)

var panelTitles = map[indicators.Panel]string{
	indicators.Brasil:  "Painel Brasil",
	indicators.Paraiba: "Painel Paraíba",
}

func PanelTitle(panel indicators.Panel) string {
	if title, ok := panelTitles[panel]; ok {
		return title
	}
	return "Painel " + string(panel)
}

// board builds one handle per panel indicator. Indicators that cannot be
// charted are logged and left out of the page.
func (c *Controller) board(ctx context.Context, panel indicators.Panel) (*render.Board, error) {
	inds := c.Service.Catalog().ByPanel(panel)
	if len(inds) == 0 {
		return nil, utils.NotFound(fmt.Sprintf("unknown panel: %s", panel))
	}
	logger := utils.LoggerFromContext(ctx)

	board := render.NewBoard()
	for _, ind := range inds {
		series, err := c.Service.GetSeries(ctx, ind.Key)
		if err != nil {
			if ctx.Err() != nil {
				board.Close()
				return nil, ctx.Err()
			}
			logger.WithError(err).WithField("indicator", ind.Key).Warn("indicator left out of panel")
			continue
		}
		chart, err := charts.Build(ind.Chart, *series)
		if err != nil {
			logger.WithError(err).WithField("indicator", ind.Key).Warn("indicator left out of panel")
			continue
		}
		c.Metrics.RecordChartBuild(ind.Key)
		board.Replace(render.NewHandle(chart))
	}
	return board, nil
}

// RenderPanel writes the HTML dashboard of panel.
func (c *Controller) RenderPanel(ctx context.Context, panel indicators.Panel, w io.Writer) error {
	board, err := c.board(ctx, panel)
	if err != nil {
		return err
	}
	defer board.Close()
	return board.RenderPage(w, PanelTitle(panel))
}

func (c *Controller) PanelPDF(ctx context.Context, panel indicators.Panel) (*bytes.Buffer, error) {
	var page bytes.Buffer
	if err := c.RenderPanel(ctx, panel, &page); err != nil {
		return nil, err
	}
	return c.GeneratePDF([]string{page.String()})
}

// PanelXLSX exports every stored series of panel as one table indexed by date.
func (c *Controller) PanelXLSX(ctx context.Context, panel indicators.Panel) (*bytes.Buffer, error) {
	inds := c.Service.Catalog().ByPanel(panel)
	if len(inds) == 0 {
		return nil, utils.NotFound(fmt.Sprintf("unknown panel: %s", panel))
	}
	logger := utils.LoggerFromContext(ctx)

	frames := make([]dataframe.DataFrame, 0, len(inds))
	for _, ind := range inds {
		series, err := c.Service.GetSeries(ctx, ind.Key)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.WithError(err).WithField("indicator", ind.Key).Warn("indicator left out of export")
			continue
		}
		if err := series.Validate(); err != nil {
			return nil, err
		}
		name := fmt.Sprintf("%s (%s)", ind.Label, ind.Unit)
		frames = append(frames, utils.SeriesFrame(dateColumn, name, series.Dates, series.Values))
	}
	return render.ExportTableXLSX(utils.UnionDataFramesByIndex(dateColumn, frames...))
}

const dateColumn = "Data"
