package summarychart

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
)

const (
	chartHeight = "350px"
	axisOffset  = 70
)

// echartsChart draws the summary chart as an ECharts bar chart. Every state
// change regenerates the container markup; the browser loads the final page once.
type echartsChart struct {
	mu        sync.Mutex
	container Container
	opts      Options
	window    [2]int
	rendered  bool
}

// NewECharts is the Factory for the go-echarts host.
func NewECharts(c Container, o Options) (Chart, error) {
	if len(o.Categories) == 0 {
		return nil, fmt.Errorf("chart %s has no categories", o.ID)
	}
	if o.Formatter == nil {
		o.Formatter = DefaultFormatter
	}
	return &echartsChart{
		container: c,
		opts:      o,
		window:    [2]int{0, len(o.Categories) - 1},
	}, nil
}

func (e *echartsChart) Render(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		if err := ctx.Err(); err != nil {
			done <- err
			return
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		markup, err := e.markup()
		if err != nil {
			done <- err
			return
		}
		e.container.SetContent(markup)
		e.rendered = true
		done <- nil
	}()
	return done
}

func (e *echartsChart) UpdateOptions(p Patch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Labels = p.Apply(e.opts.Labels)
	e.refresh()
}

func (e *echartsChart) ShowSeries(name string) { e.setSeries(name, true) }
func (e *echartsChart) HideSeries(name string) { e.setSeries(name, false) }

func (e *echartsChart) setSeries(name string, show bool) {
	k, ok := KindBySeriesName(name)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if show {
		e.opts.Visible |= SetOf(k)
	} else {
		e.opts.Visible &^= SetOf(k)
	}
	e.refresh()
}

func (e *echartsChart) Zoom(minIndex, maxIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	last := len(e.opts.Categories) - 1
	if minIndex < 0 {
		minIndex = 0
	}
	if maxIndex > last {
		maxIndex = last
	}
	if maxIndex < minIndex {
		return
	}
	e.window = [2]int{minIndex, maxIndex}
	e.refresh()
}

// refresh must be called with mu held.
func (e *echartsChart) refresh() {
	if !e.rendered {
		return
	}
	markup, err := e.markup()
	if err != nil {
		e.container.SetContent(ErrorHTML(err))
		return
	}
	e.container.SetContent(markup)
}

func (e *echartsChart) markup() (string, error) {
	o := e.opts
	n := float32(len(o.Categories))

	selected := make(map[string]bool, len(Kinds))
	for _, k := range Kinds {
		selected[k.SeriesName()] = o.Visible.Has(k)
	}

	tooltipJS := indexedLookupJS(o.Tooltips, "params[0] ? params[0].dataIndex : params.dataIndex")

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: jsIdentifier.Replace(o.ID),
			Width:   "100%",
			Height:  chartHeight,
		}),
		charts.WithColorsOpts(opts.Colors(o.Palette[:])),
		charts.WithLegendOpts(opts.Legend{
			Show:     opts.Bool(true),
			Selected: selected,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "axis",
			Formatter: opts.FuncOpts(tooltipJS),
			AxisPointer: &opts.AxisPointer{
				Type: "shadow",
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: o.XAxisTitle,
			Type: "category",
			AxisLabel: &opts.AxisLabel{
				Show: opts.Bool(o.Labels.AxisLabels),
			},
		}),
		charts.WithGridOpts(opts.Grid{
			Left: fmt.Sprintf("%dpx", len(Kinds)*axisOffset),
		}),
		charts.WithYAxisOpts(yAxisFor(Distance, o.Palette)),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      float32(e.window[0]) / n * 100,
			End:        float32(e.window[1]+1) / n * 100,
			XAxisIndex: []int{0},
		}),
	)
	for _, k := range Kinds[1:] {
		bar.ExtendYAxis(yAxisFor(k, o.Palette))
	}
	bar.AddJSFuncStrs(opts.FuncOpts(axisOffsetsJS()))

	bar.SetXAxis(o.Categories)
	for _, k := range Kinds {
		values := o.Series.Of(k)
		labels := make([]string, len(values))
		data := make([]opts.BarData, len(values))
		for i, v := range values {
			labels[i] = o.Formatter.Label(k, v)
			if v != nil {
				data[i] = opts.BarData{Value: *v}
			} else {
				data[i] = opts.BarData{Value: "-"}
			}
		}
		labelJS := indexedLookupJS(labels, "params.dataIndex")
		bar.AddSeries(k.SeriesName(), data,
			charts.WithBarChartOpts(opts.BarChart{YAxisIndex: int(k)}),
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(o.Labels.DataLabels),
				Position:  "top",
				Formatter: string(opts.FuncOpts(labelJS)),
			}),
		)
	}

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func yAxisFor(k Kind, p Palette) opts.YAxis {
	color := p.Color(k)
	return opts.YAxis{
		Name:     k.AxisTitle(),
		Type:     "value",
		Position: "left",
		AxisLabel: &opts.AxisLabel{
			Color:     color,
			Formatter: opts.FuncOpts(axisFormatterJS[k]),
		},
		AxisLine: &opts.AxisLine{
			Show: opts.Bool(true),
			LineStyle: &opts.LineStyle{
				Color: color,
			},
		},
	}
}

// go-echarts declares a script variable named after the chart id.
var jsIdentifier = strings.NewReplacer("-", "_", ".", "_", " ", "_")

// axisOffsetsJS spaces the left-side value axes apart once the chart exists.
// opts.YAxis has no offset field, so the offsets are merged in with setOption.
func axisOffsetsJS() string {
	axes := make([]string, len(Kinds))
	for _, k := range Kinds {
		axes[k] = fmt.Sprintf("{offset: %d}", int(k)*axisOffset)
	}
	return fmt.Sprintf("%s.setOption({yAxis: [%s]});", render.EchartsInstancePlaceholder, strings.Join(axes, ", "))
}

// Function bodies are JSON-encoded as strings on their way into the page, so
// the embedded table uses single-quoted literals and carries no backslashes.
var jsLiteral = strings.NewReplacer(`\`, "&#92;", "'", "&#39;", "\n", " ")

// indexedLookupJS returns a formatter that picks the prebuilt string at index.
func indexedLookupJS(values []string, index string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + jsLiteral.Replace(v) + "'"
	}
	return fmt.Sprintf("function (params) { var t = [%s]; var i = %s; return t[i] || ''; }",
		strings.Join(quoted, ", "), index)
}

// Axis tick values are only known in the browser, so their formatters are
// the JavaScript twins of the Formatter methods.
var axisFormatterJS = [...]string{
	Distance: millionsJS,
	Duration: `function (v) {
		if (v === null || v === undefined || v < 0) { return ''; }
		var h = Math.floor(v / 3600), m = Math.floor((v % 3600) / 60), s = Math.floor(v % 60);
		return h + 'h ' + m + 'm ' + s + 's';
	}`,
	Pace: `function (v) {
		if (v === null || v === undefined || v <= 0) { return ''; }
		var m = Math.floor(v / 60), r = v % 60, s = Math.floor(r), t = Math.floor((r - s) * 10);
		return m + ':' + String(s).padStart(2, '0') + '.' + t;
	}`,
	Reps: millionsJS,
}

const millionsJS = `function (v) {
	if (v === null || v === undefined) { return ''; }
	var r = Math.round(v);
	if (r >= 1000000) { return (r / 1000000).toLocaleString(undefined, {minimumFractionDigits: 0, maximumFractionDigits: 1}) + ' mln'; }
	return r.toLocaleString();
}`
