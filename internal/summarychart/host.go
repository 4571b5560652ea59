package summarychart

import (
	"context"
	"html/template"
	"sync"
)

// Container is the element a chart draws into.
type Container interface {
	ID() string
	SetContent(html string)
}

// Document looks up containers by id.
type Document interface {
	Lookup(id string) (Container, bool)
}

// Chart is the host charting library's handle on one chart.
type Chart interface {
	// Render draws the chart. The returned channel yields the outcome once.
	Render(ctx context.Context) <-chan error
	// UpdateOptions applies a partial configuration without redrawing.
	UpdateOptions(p Patch)
	ShowSeries(name string)
	HideSeries(name string)
}

// Zoomer is implemented by hosts that can move their category window.
type Zoomer interface {
	Zoom(minIndex, maxIndex int)
}

// Options is the full configuration a chart is constructed from.
type Options struct {
	ID         string
	XAxisTitle string
	Categories []string
	Series     Series
	Palette    Palette
	Labels     LabelState
	Visible    VisibleSet
	Formatter  *Formatter
	// Tooltips holds the prebuilt shared tooltip of each category.
	Tooltips []string
}

// Factory constructs a chart inside a container.
type Factory func(c Container, o Options) (Chart, error)

// Page is an in-memory Document whose containers collect rendered HTML.
type Page struct {
	mu     sync.Mutex
	panels map[string]*Panel
}

// NewPage returns a page holding a container for each id.
func NewPage(ids ...string) *Page {
	p := &Page{panels: make(map[string]*Panel, len(ids))}
	for _, id := range ids {
		p.panels[id] = &Panel{id: id}
	}
	return p
}

func (p *Page) Lookup(id string) (Container, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	panel, ok := p.panels[id]
	if !ok {
		return nil, false
	}
	return panel, true
}

// Panel returns the container with the given id, or nil.
func (p *Page) Panel(id string) *Panel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.panels[id]
}

// Panel is a Container backed by a string.
type Panel struct {
	id      string
	mu      sync.RWMutex
	content string
}

func (c *Panel) ID() string { return c.id }

func (c *Panel) SetContent(html string) {
	c.mu.Lock()
	c.content = html
	c.mu.Unlock()
}

// Content returns the current markup for embedding in a template.
func (c *Panel) Content() template.HTML {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return template.HTML(c.content)
}

// Text returns the current markup as a plain string.
func (c *Panel) Text() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.content
}
