package render

import (
	"errors"
	"io"
	"painel/src/charts"
	"sync"

	"github.com/go-echarts/go-echarts/v2/components"
	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var ErrDisposed = errors.New("chart handle disposed")

type renderable interface {
	components.Charter
	Render(w io.Writer) error
}

// Handle is one rendered chart. It is safe for concurrent use; once disposed
// it refuses to render.
type Handle struct {
	id    string
	chart renderable

	mu       sync.Mutex
	disposed bool
}

// NewHandle builds a go-echarts bar or line chart from a chart payload.
func NewHandle(c *charts.Chart) *Handle {
	return &Handle{id: c.ID, chart: build(c)}
}

func build(c *charts.Chart) renderable {
	global := []echarts.GlobalOpts{
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Title,
			ChartID:   c.ID,
			Width:     "900px",
			Height:    "450px",
		}),
		echarts.WithTitleOpts(opts.Title{Title: c.Title, Subtitle: c.Label}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: c.YAxisTitle}),
	}

	if c.Type == charts.Bar {
		items := make([]opts.BarData, len(c.Values))
		for i, v := range c.Values {
			items[i] = opts.BarData{
				Value: v,
				ItemStyle: &opts.ItemStyle{
					Color:       c.BackgroundColors[i],
					BorderColor: c.BorderColors[i],
				},
			}
		}
		bar := echarts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(c.Labels).AddSeries(c.Label, items)
		return bar
	}

	items := make([]opts.LineData, len(c.Values))
	for i, v := range c.Values {
		items[i] = opts.LineData{Value: v}
	}
	border, background := charts.SeriesColor(0), ""
	if len(c.BorderColors) > 0 {
		border, background = c.BorderColors[0], c.BackgroundColors[0]
	}
	if pieces := pointPieces(c.BorderColors); pieces != nil {
		global = append(global, echarts.WithVisualMapOpts(opts.VisualMap{
			Type:      "piecewise",
			Dimension: "0",
			Pieces:    pieces,
		}))
	}
	line := echarts.NewLine()
	line.SetGlobalOptions(global...)
	line.SetXAxis(c.Labels).AddSeries(c.Label, items,
		echarts.WithLineStyleOpts(opts.LineStyle{Color: border}),
		echarts.WithItemStyleOpts(opts.ItemStyle{Color: border}),
		echarts.WithAreaStyleOpts(opts.AreaStyle{Color: background}),
	)
	return line
}

// pointPieces maps every x index to its own colour so a line chart keeps the
// palette of each point. Nil when all points share one colour.
func pointPieces(colors []string) []opts.Piece {
	uniform := true
	for _, c := range colors {
		if c != colors[0] {
			uniform = false
			break
		}
	}
	if uniform {
		return nil
	}
	pieces := make([]opts.Piece, len(colors))
	for i, c := range colors {
		// Bounds sit half a step around the index; zero bounds would be dropped
		// from the JSON.
		pieces[i] = opts.Piece{Min: float32(i) - 0.5, Max: float32(i) + 0.5, Color: c}
	}
	return pieces
}

func (h *Handle) ID() string {
	return h.id
}

// Render writes a standalone HTML document with the chart.
func (h *Handle) Render(w io.Writer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed {
		return ErrDisposed
	}
	return h.chart.Render(w)
}

// Dispose releases the chart. Calling it again is a no-op.
func (h *Handle) Dispose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disposed = true
	h.chart = nil
}

func (h *Handle) Disposed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.disposed
}

func (h *Handle) charter() (components.Charter, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed {
		return nil, false
	}
	return h.chart, true
}
