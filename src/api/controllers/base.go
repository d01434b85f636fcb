package controllers

import (
	"bytes"
	"context"
	"io"
	"painel/src/charts"
	"painel/src/indicators"
	"painel/src/render"
	"painel/src/schemas"
	"painel/src/services"
	"painel/src/timeseries"
	"painel/src/utils/metrics"
)

type IController interface {
	ListIndicators(ctx context.Context) ([]schemas.IndicatorResponse, error)
	Lookup(key string) (indicators.Indicator, bool)
	GetSeries(ctx context.Context, key string) (*timeseries.TimeSeries, error)
	GetChart(ctx context.Context, key string, query schemas.ChartQuery) (*charts.Chart, error)
	ExportXLSX(ctx context.Context, key string, query schemas.ChartQuery) (*bytes.Buffer, error)
	Refresh(ctx context.Context, key string) (int, error)
	RenderPanel(ctx context.Context, panel indicators.Panel, w io.Writer) error
	PanelPDF(ctx context.Context, panel indicators.Panel) (*bytes.Buffer, error)
	PanelXLSX(ctx context.Context, panel indicators.Panel) (*bytes.Buffer, error)
}

type Controller struct {
	Service services.IndicatorServiceI
	Metrics *metrics.Recorder
	// GeneratePDF turns rendered HTML pages into a PDF.
	GeneratePDF func(htmlContents []string) (*bytes.Buffer, error)
}

func NewController(service services.IndicatorServiceI, recorder *metrics.Recorder) *Controller {
	return &Controller{Service: service, Metrics: recorder, GeneratePDF: render.GeneratePDF}
}
