package summarychart

import (
	"html"
	"strings"
)

// Tooltip renders the shared tooltip for category index idx: the category
// label, then one row for every series with its swatch, name and value.
func Tooltip(f *Formatter, palette Palette, categories []string, s Series, idx int) string {
	var sb strings.Builder
	label := ""
	if idx >= 0 && idx < len(categories) {
		label = categories[idx]
	}
	sb.WriteString(`<div class="chart-tooltip-title">`)
	sb.WriteString(html.EscapeString(label))
	sb.WriteString(`</div>`)

	for _, k := range Kinds {
		var v *float64
		if values := s.Of(k); idx >= 0 && idx < len(values) {
			v = values[idx]
		}
		sb.WriteString(`<div class="chart-tooltip-row">`)
		sb.WriteString(`<span class="chart-tooltip-marker" style="background-color: `)
		sb.WriteString(html.EscapeString(palette.Color(k)))
		sb.WriteString(`;"></span>`)
		sb.WriteString(`<span class="chart-tooltip-name">`)
		sb.WriteString(html.EscapeString(k.SeriesName()))
		sb.WriteString(`: </span><span class="chart-tooltip-value">`)
		sb.WriteString(html.EscapeString(f.TooltipValue(k, v)))
		sb.WriteString(`</span></div>`)
	}
	return sb.String()
}

// Tooltips renders the tooltip of every category.
func Tooltips(f *Formatter, palette Palette, categories []string, s Series) []string {
	out := make([]string, len(categories))
	for i := range categories {
		out[i] = Tooltip(f, palette, categories, s, i)
	}
	return out
}
