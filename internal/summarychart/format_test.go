package summarychart_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	sc "github.com/vytor/ergolog/internal/summarychart"
)

func TestFormatter_Distance(t *testing.T) {
	f := sc.DefaultFormatter
	tests := []struct {
		in   float64
		want string
	}{
		{999, "999"},
		{999.6, "1,000"},
		{12345.4, "12,345"},
		{999_999.4, "999,999"},
		{1_000_000, "1 mln"},
		{1_250_000, "1.3 mln"},
		{1_949_999, "1.9 mln"},
		{12_345_678, "12.3 mln"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Distance(tt.in), "Distance(%v)", tt.in)
	}
}

func TestFormatter_Duration(t *testing.T) {
	f := sc.DefaultFormatter
	tests := []struct {
		in   float64
		want string
		ok   bool
	}{
		{3725, "1h 2m 5s", true},
		{0, "0h 0m 0s", true},
		{59.9, "0h 0m 59s", true},
		{90061, "25h 1m 1s", true},
		{-1, "", false},
		{math.NaN(), "", false},
	}

	for _, tt := range tests {
		got, ok := f.Duration(tt.in)
		assert.Equal(t, tt.ok, ok, "Duration(%v)", tt.in)
		assert.Equal(t, tt.want, got, "Duration(%v)", tt.in)
	}
}

func TestFormatter_Pace(t *testing.T) {
	f := sc.DefaultFormatter
	tests := []struct {
		in   float64
		want string
		ok   bool
	}{
		{150, "2:30.0", true},
		{125.5, "2:05.5", true},
		{105.75, "1:45.7", true},
		{9.25, "0:09.2", true},
		{0, "", false},
		{-3, "", false},
	}

	for _, tt := range tests {
		got, ok := f.Pace(tt.in)
		assert.Equal(t, tt.ok, ok, "Pace(%v)", tt.in)
		assert.Equal(t, tt.want, got, "Pace(%v)", tt.in)
	}
}

func TestFormatter_Reps(t *testing.T) {
	assert.Equal(t, "1,234 reps", sc.DefaultFormatter.Reps(1234.4))
	assert.Equal(t, "0 reps", sc.DefaultFormatter.Reps(0))
}

func TestFormatter_Locale(t *testing.T) {
	de := sc.NewFormatter(language.German)
	assert.Equal(t, "1.234.567", de.Count(1234567))
}

func TestFormatter_FormatByKind(t *testing.T) {
	f := sc.DefaultFormatter

	got, ok := f.Format(sc.Distance, sc.Float(4200))
	assert.True(t, ok)
	assert.Equal(t, "4,200", got)

	got, ok = f.Format(sc.Reps, sc.Float(12))
	assert.True(t, ok)
	assert.Equal(t, "12 reps", got)

	_, ok = f.Format(sc.Duration, nil)
	assert.False(t, ok)

	_, ok = f.Format(sc.Kind(9), sc.Float(1))
	assert.False(t, ok)
}

func TestFormatter_TooltipValue(t *testing.T) {
	f := sc.DefaultFormatter
	assert.Equal(t, "2:30.0 /500m", f.TooltipValue(sc.Pace, sc.Float(150)))
	assert.Equal(t, sc.NA, f.TooltipValue(sc.Pace, sc.Float(0)))
	assert.Equal(t, sc.NA, f.TooltipValue(sc.Distance, nil))
	assert.Equal(t, "1h 0m 0s", f.TooltipValue(sc.Duration, sc.Float(3600)))
}

func TestFormatter_Label(t *testing.T) {
	f := sc.DefaultFormatter
	assert.Equal(t, "", f.Label(sc.Pace, sc.Float(-1)))
	assert.Equal(t, "", f.Label(sc.Reps, nil))
	assert.Equal(t, "2,000", f.Label(sc.Distance, sc.Float(2000)))
}
