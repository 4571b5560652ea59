// Package summarychart builds the workout summary bar chart: four metric series
// over shared categories, each on its own axis, with density-driven label
// visibility, a shared tooltip and a solo legend.
package summarychart

import (
	"fmt"
	"strings"
)

// Kind is one of the four metric series. The order of the constants is the
// display order.
type Kind int

const (
	Distance Kind = iota
	Duration
	Pace
	Reps
)

// Kinds lists every series kind in display order.
var Kinds = [...]Kind{Distance, Duration, Pace, Reps}

var kindInfo = [...]struct {
	key       string
	series    string
	axisTitle string
}{
	Distance: {"distance", "Distance (m)", "Distance (m)"},
	Duration: {"duration", "Duration (s)", "Duration (s)"},
	Pace:     {"pace", "Pace (s/500m)", "Pace (/500m)"},
	Reps:     {"reps", "Reps", "Reps"},
}

func (k Kind) valid() bool {
	return k >= Distance && k <= Reps
}

// String returns the short lowercase key, e.g. "pace".
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].key
}

// SeriesName is the legend and tooltip name of the series.
func (k Kind) SeriesName() string {
	if !k.valid() {
		return k.String()
	}
	return kindInfo[k].series
}

// AxisTitle is the title drawn next to the series' own y-axis.
func (k Kind) AxisTitle() string {
	if !k.valid() {
		return k.String()
	}
	return kindInfo[k].axisTitle
}

// ParseKind accepts a short key or a series name, ignoring case.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds {
		if strings.EqualFold(s, kindInfo[k].key) || strings.EqualFold(s, kindInfo[k].series) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown series %q", s)
}

// KindBySeriesName maps a legend name back to its kind.
func KindBySeriesName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if kindInfo[k].series == name {
			return k, true
		}
	}
	return 0, false
}

// Palette holds one colour per kind, indexed by Kind.
type Palette [len(Kinds)]string

// DefaultPalette is blue, green, amber and red.
var DefaultPalette = Palette{"#008FFB", "#00E396", "#FEB019", "#FF4560"}

// NewPalette builds a palette from exactly four colours.
func NewPalette(colors []string) (Palette, error) {
	var p Palette
	if len(colors) != len(p) {
		return p, fmt.Errorf("palette needs %d colours, got %d", len(p), len(colors))
	}
	copy(p[:], colors)
	return p, nil
}

// Color returns the colour of kind k.
func (p Palette) Color(k Kind) string {
	if !k.valid() {
		return ""
	}
	return p[k]
}

// Series holds the four aligned value sequences of one chart. A nil entry
// is a missing observation.
type Series struct {
	Distance []*float64
	Duration []*float64
	Pace     []*float64
	Reps     []*float64
}

// Of returns the values of kind k.
func (s Series) Of(k Kind) []*float64 {
	switch k {
	case Distance:
		return s.Distance
	case Duration:
		return s.Duration
	case Pace:
		return s.Pace
	case Reps:
		return s.Reps
	}
	return nil
}

// Empty reports whether no series has any element.
func (s Series) Empty() bool {
	for _, k := range Kinds {
		if len(s.Of(k)) > 0 {
			return false
		}
	}
	return true
}

// aligned pads short series with nils and trims long ones so every series
// has exactly n positions.
func (s Series) aligned(n int) Series {
	fit := func(in []*float64) []*float64 {
		out := make([]*float64, n)
		copy(out, in)
		return out
	}
	return Series{
		Distance: fit(s.Distance),
		Duration: fit(s.Duration),
		Pace:     fit(s.Pace),
		Reps:     fit(s.Reps),
	}
}

// Float returns a pointer to v, for building series literals.
func Float(v float64) *float64 {
	return &v
}
