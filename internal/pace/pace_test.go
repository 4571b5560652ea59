package pace_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/ergolog/internal/pace"
)

func TestParseTimeString(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"45", 45},
		{"45.5", 45.5},
		{"10:00", 600},
		{"7:30.2", 450.2},
		{"1:02:03.45", 3723.45},
		{"1.9:30:00", 5400},
		{" 2 :05", 125},
		{"12abc", 12},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, pace.ParseTimeString(tt.in), 1e-9)
		})
	}
}

func TestParseTimeString_NaN(t *testing.T) {
	for _, in := range []string{"abc", "x:10", "1:x:10", "1:2:3:4", ":"} {
		t.Run(in, func(t *testing.T) {
			assert.True(t, math.IsNaN(pace.ParseTimeString(in)))
		})
	}
}

func TestFormatSplit(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00.00"},
		{150, "02:30.00"},
		{105.456, "01:45.46"},
		{59.999, "01:00.00"},
		{4000, "66:40.00"},
		{-1, pace.Placeholder},
		{math.NaN(), pace.Placeholder},
		{math.Inf(1), pace.Placeholder},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pace.FormatSplit(tt.in), "FormatSplit(%v)", tt.in)
	}
}

func TestTimeStringRoundTrip(t *testing.T) {
	inputs := []string{"1:02:03.45", "0:00:00.01", "12:34.56", "7:05.1", "59.99", "3.07", "2:00:00.00"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			seconds := pace.ParseTimeString(in)
			again := pace.ParseTimeString(pace.FormatSplit(seconds))
			assert.InDelta(t, seconds, again, 0.01)
		})
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		time     string
		distance string
		want     string
	}{
		{"ten minutes over 2k", "10:00", "2000", "02:30.00"},
		{"empty time", "", "2000", pace.Placeholder},
		{"zero distance", "5:00", "0", pace.Placeholder},
		{"negative distance", "5:00", "-10", pace.Placeholder},
		{"missing distance", "5:00", "", pace.Placeholder},
		{"non numeric time", "abc", "2000", pace.InvalidTime},
		{"zero time", "0:00", "2000", pace.InvalidTime},
		{"hour long row", "1:00:00", "15000", "02:00.00"},
		{"fractional seconds", "6:30.5", "1000", "03:15.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pace.Calculate(tt.time, tt.distance))
		})
	}
}

func TestCompute_NaNDistance(t *testing.T) {
	assert.Equal(t, pace.Placeholder, pace.Compute("5:00", math.NaN()))
}

func TestSeconds(t *testing.T) {
	assert.InDelta(t, 150.0, pace.Seconds(600, 2000), 1e-9)
	assert.True(t, math.IsNaN(pace.Seconds(600, 0)))
	assert.True(t, math.IsNaN(pace.Seconds(0, 2000)))
}

type changeBus struct {
	handlers map[pace.Field][]func()
}

func (b *changeBus) OnChange(f pace.Field, fn func()) {
	if b.handlers == nil {
		b.handlers = make(map[pace.Field][]func())
	}
	b.handlers[f] = append(b.handlers[f], fn)
}

func (b *changeBus) set(f pace.Field, v string) {
	f.SetValue(v)
	for _, fn := range b.handlers[f] {
		fn()
	}
}

func TestForm_InitAndBind(t *testing.T) {
	form := &pace.Form{
		Date:     pace.NewValue(""),
		Time:     pace.NewValue("8:00"),
		Distance: pace.NewValue("2000"),
		Pace:     pace.NewValue(""),
	}
	bus := &changeBus{}
	form.Bind(bus)

	form.Init(time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-05", form.Date.Value())
	assert.Equal(t, "02:00.00", form.Pace.Value())

	bus.set(form.Time, "")
	assert.Equal(t, pace.Placeholder, form.Pace.Value())

	bus.set(form.Time, "7:00")
	bus.set(form.Distance, "1000")
	assert.Equal(t, "03:30.00", form.Pace.Value())

	bus.set(form.Time, "nope")
	assert.Equal(t, pace.InvalidTime, form.Pace.Value())
}

func TestForm_MissingFields(t *testing.T) {
	form := &pace.Form{Pace: pace.NewValue("stale")}
	require.NotPanics(t, func() { form.Init(time.Now()) })
	assert.Equal(t, pace.Placeholder, form.Pace.Value())
}
