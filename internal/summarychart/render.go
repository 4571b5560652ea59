package summarychart

import (
	"context"
	"fmt"
	"html"
	"sync"
	"time"

	"github.com/vytor/ergolog/internal/logger"
)

// Render outcomes reported to an Observer.
const (
	OutcomeRendered         = "rendered"
	OutcomeFailed           = "failed"
	OutcomeNoData           = "no_data"
	OutcomeMissingContainer = "missing_container"
)

// Observer is told how each render call ended.
type Observer interface {
	ChartRendered(outcome string, elapsed time.Duration)
}

// Renderer builds summary charts with a fixed host, palette and label policy.
type Renderer struct {
	factory    Factory
	thresholds Thresholds
	palette    Palette
	formatter  *Formatter
	observer   Observer
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

func WithThresholds(t Thresholds) RendererOption {
	return func(r *Renderer) { r.thresholds = t }
}

func WithPalette(p Palette) RendererOption {
	return func(r *Renderer) { r.palette = p }
}

func WithFormatter(f *Formatter) RendererOption {
	return func(r *Renderer) { r.formatter = f }
}

func WithObserver(o Observer) RendererOption {
	return func(r *Renderer) { r.observer = o }
}

// NewRenderer returns a Renderer drawing through factory.
func NewRenderer(factory Factory, opts ...RendererOption) *Renderer {
	r := &Renderer{
		factory:    factory,
		thresholds: DefaultThresholds,
		palette:    DefaultPalette,
		formatter:  DefaultFormatter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ErrorHTML is the inline message that replaces a chart that failed to render.
func ErrorHTML(err error) string {
	return `<div class="chart-error" style="text-align:center; padding:20px; color:red;">Error rendering chart: ` +
		html.EscapeString(err.Error()) + `</div>`
}

// RenderSummaryChart draws the summary chart into the container named
// containerID. It returns nil without drawing when the container does not
// exist or every series is empty. Rendering continues in the background;
// call Wait on the returned instance before interacting with it.
func (r *Renderer) RenderSummaryChart(
	ctx context.Context,
	doc Document,
	containerID string,
	categories []string,
	distance, duration, pace, reps []*float64,
	xAxisTitle string,
) *Instance {
	log := logger.FromContext(ctx).WithPrefix("summarychart")
	start := time.Now()

	container, ok := doc.Lookup(containerID)
	if !ok {
		log.Error("chart container %q not found", containerID)
		r.observe(OutcomeMissingContainer, start)
		return nil
	}

	series := Series{Distance: distance, Duration: duration, Pace: pace, Reps: reps}
	if series.Empty() {
		log.Debug("no summary data for %q, skipping chart", containerID)
		r.observe(OutcomeNoData, start)
		return nil
	}
	series = series.aligned(len(categories))

	initial := LabelState{DataLabels: true, AxisLabels: true}
	inst := &Instance{
		container:  container,
		thresholds: r.thresholds,
		total:      len(categories),
		labels:     initial,
		visible:    AllVisible,
		done:       make(chan struct{}),
		log:        log,
	}

	chart, err := r.factory(container, Options{
		ID:         containerID + "-chart",
		XAxisTitle: xAxisTitle,
		Categories: append([]string(nil), categories...),
		Series:     series,
		Palette:    r.palette,
		Labels:     initial,
		Visible:    AllVisible,
		Formatter:  r.formatter,
		Tooltips:   Tooltips(r.formatter, r.palette, categories, series),
	})
	if err != nil {
		inst.fail(err)
		close(inst.done)
		r.observe(OutcomeFailed, start)
		return inst
	}
	inst.chart = chart

	go func() {
		defer close(inst.done)
		var err error
		select {
		case err = <-chart.Render(ctx):
		case <-ctx.Done():
			err = ctx.Err()
		}
		if err != nil {
			inst.fail(err)
			r.observe(OutcomeFailed, start)
			return
		}
		inst.mounted()
		inst.setVisible(InitialVisible)
		log.Debug("chart %q rendered: categories=%d", containerID, len(categories))
		r.observe(OutcomeRendered, start)
	}()

	return inst
}

func (r *Renderer) observe(outcome string, start time.Time) {
	if r.observer != nil {
		r.observer.ChartRendered(outcome, time.Since(start))
	}
}

// Instance is one rendered chart and the state its event handlers mutate.
type Instance struct {
	mu         sync.Mutex
	chart      Chart
	container  Container
	thresholds Thresholds
	total      int
	labels     LabelState
	visible    VisibleSet
	err        error
	done       chan struct{}
	log        *logger.Logger
}

// Wait blocks until the render has completed and its follow-up effects ran.
// It returns the render failure, if any.
func (i *Instance) Wait(ctx context.Context) error {
	select {
	case <-i.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}

// Zoomed handles a zoom or pan to the inclusive category window [minIndex, maxIndex].
// The window is clamped to the existing categories; a window that is empty
// after clamping is ignored.
func (i *Instance) Zoomed(minIndex, maxIndex int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.err != nil || i.chart == nil {
		return
	}
	minIndex = max(minIndex, 0)
	maxIndex = min(maxIndex, i.total-1)
	if maxIndex < minIndex {
		i.log.Debug("ignoring empty zoom window [%d, %d]", minIndex, maxIndex)
		return
	}
	if z, ok := i.chart.(Zoomer); ok {
		z.Zoom(minIndex, maxIndex)
	}
	i.applyDensity(VisibleCount(minIndex, maxIndex))
}

// LegendClick shows the clicked series alone.
func (i *Instance) LegendClick(k Kind) {
	if !k.valid() {
		return
	}
	i.setVisible(Solo(k))
}

// Visible returns the kinds currently shown.
func (i *Instance) Visible() VisibleSet {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.visible
}

// Labels returns the label layers currently drawn.
func (i *Instance) Labels() LabelState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.labels
}

func (i *Instance) mounted() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.applyDensity(i.total)
}

// applyDensity must be called with mu held.
func (i *Instance) applyDensity(visible int) {
	patch := Diff(i.labels, visible, i.thresholds)
	if patch.Empty() {
		return
	}
	i.chart.UpdateOptions(patch)
	i.labels = patch.Apply(i.labels)
	i.log.Debug("label density updated: visible=%d data_labels=%t axis_labels=%t",
		visible, i.labels.DataLabels, i.labels.AxisLabels)
}

func (i *Instance) setVisible(next VisibleSet) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.err != nil || i.chart == nil {
		return
	}
	for _, k := range Kinds {
		if next.Has(k) {
			i.chart.ShowSeries(k.SeriesName())
		} else {
			i.chart.HideSeries(k.SeriesName())
		}
	}
	i.visible = next
}

func (i *Instance) fail(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.err = fmt.Errorf("render chart: %w", err)
	i.log.Error("chart render failed: %v", err)
	i.container.SetContent(ErrorHTML(err))
}
