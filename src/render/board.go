package render

import (
	"io"
	"sync"

	"github.com/go-echarts/go-echarts/v2/components"
)

// Board is a caller-owned set of chart handles keyed by chart id.
type Board struct {
	mu      sync.Mutex
	order   []string
	handles map[string]*Handle
}

func NewBoard() *Board {
	return &Board{handles: map[string]*Handle{}}
}

// Replace installs h, disposing any handle previously held under its id.
func (b *Board) Replace(h *Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if previous, ok := b.handles[h.ID()]; ok {
		if previous != h {
			previous.Dispose()
		}
	} else {
		b.order = append(b.order, h.ID())
	}
	b.handles[h.ID()] = h
}

// Dispose disposes and forgets the handle stored under id.
func (b *Board) Dispose(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.handles[id]
	if !ok {
		return false
	}
	h.Dispose()
	delete(b.handles, id)
	for i, key := range b.order {
		if key == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Handles returns the live handles in insertion order.
func (b *Board) Handles() []*Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Handle, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.handles[id])
	}
	return out
}

// Close disposes every handle.
func (b *Board) Close() {
	b.mu.Lock()
	ids := append([]string(nil), b.order...)
	b.mu.Unlock()
	for _, id := range ids {
		b.Dispose(id)
	}
}

// RenderPage writes every live chart as one HTML page.
func (b *Board) RenderPage(w io.Writer, title string) error {
	page := components.NewPage()
	page.PageTitle = title
	page.SetLayout(components.PageFlexLayout)
	for _, h := range b.Handles() {
		if c, ok := h.charter(); ok {
			page.AddCharts(c)
		}
	}
	return page.Render(w)
}
