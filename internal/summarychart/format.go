package summarychart

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NA is shown for a missing value.
const NA = "N/A"

// Formatter renders series values with locale digit grouping.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a Formatter for the given locale.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// DefaultFormatter groups digits the English way.
var DefaultFormatter = NewFormatter(language.English)

// Count rounds v to an integer and groups its digits.
func (f *Formatter) Count(v float64) string {
	return f.p.Sprintf("%d", int64(math.Round(v)))
}

// Millions renders a rounded value of a million or more as "1.3 mln" and
// anything smaller as a grouped integer.
func (f *Formatter) Millions(v float64) string {
	r := math.Round(v)
	if r < 1e6 {
		return f.Count(r)
	}
	m := math.Round(r/1e6*10) / 10
	if m == math.Trunc(m) {
		return f.p.Sprintf("%d mln", int64(m))
	}
	return f.p.Sprintf("%.1f mln", m)
}

// Distance formats meters.
func (f *Formatter) Distance(v float64) string {
	return f.Millions(v)
}

// Duration formats seconds as "1h 2m 5s". Negative input has no value.
func (f *Formatter) Duration(seconds float64) (string, bool) {
	if math.IsNaN(seconds) || seconds < 0 {
		return "", false
	}
	h := math.Floor(seconds / 3600)
	m := math.Floor(math.Mod(seconds, 3600) / 60)
	s := math.Floor(math.Mod(seconds, 60))
	return fmt.Sprintf("%.0fh %.0fm %.0fs", h, m, s), true
}

// Pace formats seconds per 500m as "2:05.3" with one tenth digit that is
// truncated, not rounded. Non-positive input has no value.
func (f *Formatter) Pace(seconds float64) (string, bool) {
	if math.IsNaN(seconds) || seconds <= 0 {
		return "", false
	}
	minutes := math.Floor(seconds / 60)
	rem := math.Mod(seconds, 60)
	whole := math.Floor(rem)
	tenth := math.Floor((rem - whole) * 10)
	return fmt.Sprintf("%.0f:%02.0f.%.0f", minutes, whole, tenth), true
}

// Reps formats a repetition count as "1,234 reps".
func (f *Formatter) Reps(v float64) string {
	return f.Count(v) + " reps"
}

type formatFunc func(f *Formatter, v float64) (string, bool)

func always(fn func(*Formatter, float64) string) formatFunc {
	return func(f *Formatter, v float64) (string, bool) {
		return fn(f, v), true
	}
}

var kindFormatters = [...]formatFunc{
	Distance: always((*Formatter).Distance),
	Duration: (*Formatter).Duration,
	Pace:     (*Formatter).Pace,
	Reps:     always((*Formatter).Reps),
}

// Format renders v as kind k. It reports false for a nil value and for
// values the kind has no rendering for.
func (f *Formatter) Format(k Kind, v *float64) (string, bool) {
	if v == nil || !k.valid() || math.IsNaN(*v) {
		return "", false
	}
	return kindFormatters[k](f, *v)
}

// Label is the per-bar data label: the formatted value or "".
func (f *Formatter) Label(k Kind, v *float64) string {
	s, _ := f.Format(k, v)
	return s
}

// TooltipValue is the tooltip cell for one series. Paces carry a "/500m"
// unit and missing values read "N/A".
func (f *Formatter) TooltipValue(k Kind, v *float64) string {
	s, ok := f.Format(k, v)
	if !ok {
		return NA
	}
	if k == Pace {
		return s + " /500m"
	}
	return s
}
