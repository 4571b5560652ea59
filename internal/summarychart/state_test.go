package summarychart_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/vytor/ergolog/internal/summarychart"
)

func TestThresholds_Target(t *testing.T) {
	tests := []struct {
		visible int
		want    sc.LabelState
	}{
		{3, sc.LabelState{DataLabels: true, AxisLabels: true}},
		{5, sc.LabelState{DataLabels: true, AxisLabels: true}},
		{6, sc.LabelState{DataLabels: false, AxisLabels: true}},
		{8, sc.LabelState{DataLabels: false, AxisLabels: true}},
		{9, sc.LabelState{DataLabels: false, AxisLabels: false}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sc.DefaultThresholds.Target(tt.visible), "visible=%d", tt.visible)
	}
}

func TestDiff(t *testing.T) {
	all := sc.LabelState{DataLabels: true, AxisLabels: true}

	p := sc.Diff(all, 6, sc.DefaultThresholds)
	require.NotNil(t, p.DataLabels)
	assert.False(t, *p.DataLabels)
	assert.Nil(t, p.AxisLabels)

	p = sc.Diff(all, 9, sc.DefaultThresholds)
	require.NotNil(t, p.DataLabels)
	require.NotNil(t, p.AxisLabels)
	assert.False(t, *p.DataLabels)
	assert.False(t, *p.AxisLabels)

	assert.True(t, sc.Diff(all, 3, sc.DefaultThresholds).Empty())

	after := p.Apply(all)
	assert.Equal(t, sc.LabelState{}, after)
	assert.True(t, sc.Diff(after, 9, sc.DefaultThresholds).Empty(), "same count twice yields no patch")
}

func TestDiff_CustomThresholds(t *testing.T) {
	p := sc.Diff(sc.LabelState{}, 2, sc.Thresholds{DataLabels: 2, AxisLabels: 1})
	require.NotNil(t, p.DataLabels)
	assert.True(t, *p.DataLabels)
	assert.Nil(t, p.AxisLabels)
}

func TestVisibleCount(t *testing.T) {
	assert.Equal(t, 6, sc.VisibleCount(2, 7))
	assert.Equal(t, 1, sc.VisibleCount(4, 4))
	assert.Equal(t, 0, sc.VisibleCount(5, 4))
}

func TestSolo(t *testing.T) {
	next := sc.Solo(sc.Reps)
	assert.Equal(t, []sc.Kind{sc.Reps}, next.Kinds())
	assert.True(t, next.Has(sc.Reps))
	assert.False(t, next.Has(sc.Distance))
	assert.Equal(t, "{reps}", next.String())
}

func TestVisibleSet(t *testing.T) {
	assert.Equal(t, []sc.Kind{sc.Distance}, sc.InitialVisible.Kinds())
	assert.Equal(t, sc.Kinds[:], sc.AllVisible.Kinds())
	assert.Equal(t, "{distance,pace}", sc.SetOf(sc.Pace, sc.Distance).String())
	assert.False(t, sc.AllVisible.Has(sc.Kind(7)))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want sc.Kind
	}{
		{"distance", sc.Distance},
		{"Duration", sc.Duration},
		{"Pace (s/500m)", sc.Pace},
		{" REPS ", sc.Reps},
	}
	for _, tt := range tests {
		got, err := sc.ParseKind(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := sc.ParseKind("watts")
	assert.Error(t, err)
}

func TestKindNames(t *testing.T) {
	names := make([]string, 0, len(sc.Kinds))
	titles := make([]string, 0, len(sc.Kinds))
	for _, k := range sc.Kinds {
		names = append(names, k.SeriesName())
		titles = append(titles, k.AxisTitle())
	}
	assert.Equal(t, []string{"Distance (m)", "Duration (s)", "Pace (s/500m)", "Reps"}, names)
	assert.Equal(t, []string{"Distance (m)", "Duration (s)", "Pace (/500m)", "Reps"}, titles)
}

func TestNewPalette(t *testing.T) {
	p, err := sc.NewPalette([]string{"#111", "#222", "#333", "#444"})
	require.NoError(t, err)
	assert.Equal(t, "#333", p.Color(sc.Pace))

	_, err = sc.NewPalette([]string{"#111"})
	assert.Error(t, err)
	assert.Equal(t, "#FF4560", sc.DefaultPalette.Color(sc.Reps))
}

func TestTooltip(t *testing.T) {
	categories := []string{"2023", "<2024>"}
	series := sc.Series{
		Distance: []*float64{sc.Float(1_500_000), sc.Float(2000)},
		Duration: []*float64{sc.Float(3725), nil},
		Pace:     []*float64{sc.Float(150), sc.Float(0)},
		Reps:     []*float64{nil},
	}

	first := sc.Tooltip(sc.DefaultFormatter, sc.DefaultPalette, categories, series, 0)
	assert.Contains(t, first, `<div class="chart-tooltip-title">2023</div>`)
	assert.Contains(t, first, "Distance (m): </span><span class=\"chart-tooltip-value\">1.5 mln")
	assert.Contains(t, first, "1h 2m 5s")
	assert.Contains(t, first, "2:30.0 /500m")
	assert.Contains(t, first, "Reps: </span><span class=\"chart-tooltip-value\">N/A")
	assert.Contains(t, first, "background-color: #FEB019;")

	second := sc.Tooltip(sc.DefaultFormatter, sc.DefaultPalette, categories, series, 1)
	assert.Contains(t, second, "&lt;2024&gt;")
	assert.Equal(t, 3, strings.Count(second, "N/A"), "duration, pace and reps are missing")

	all := sc.Tooltips(sc.DefaultFormatter, sc.DefaultPalette, categories, series)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0])
}
