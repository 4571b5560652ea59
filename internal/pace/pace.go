// Package pace turns an elapsed time and a distance into a split per 500 meters
// and keeps a workout form's pace field in sync with its time and distance fields.
package pace

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// Placeholder is shown while the inputs are incomplete.
	Placeholder = "--:--.--"
	// InvalidTime is shown when the time field cannot be read as a positive duration.
	InvalidTime = "Invalid Time"

	// SplitDistance is the reference distance a pace is expressed over.
	SplitDistance = 500.0

	dateLayout = "2006-01-02"
)

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// ParseTimeString converts "H:M:S", "M:S" or "S" into total seconds. Hours
// and minutes take the leading integer of their segment and seconds keep
// their fraction. A segment without a leading number yields NaN. The empty
// string is zero seconds.
func ParseTimeString(s string) float64 {
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		return parseInt(parts[0])*3600 + parseInt(parts[1])*60 + parseFloat(parts[2])
	case 2:
		return parseInt(parts[0])*60 + parseFloat(parts[1])
	case 1:
		return parseFloat(parts[0])
	default:
		return math.NaN()
	}
}

func parseInt(s string) float64 {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseFloat(s string) float64 {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseDistance reads the leading number of s, NaN when there is none.
func ParseDistance(s string) float64 {
	return parseFloat(s)
}

// FormatSplit renders seconds as MM:SS.hh. Minutes are not wrapped at an hour.
// Rounding to hundredths carries into seconds and minutes, so 59.999 becomes
// "01:00.00".
func FormatSplit(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return Placeholder
	}
	hundredths := int64(math.Round(seconds * 100))
	minutes := hundredths / 6000
	secs := (hundredths / 100) % 60
	frac := hundredths % 100
	return fmt.Sprintf("%02d:%02d.%02d", minutes, secs, frac)
}

// Seconds returns the pace in seconds per 500 units, or NaN when it is undefined.
func Seconds(totalSeconds, distance float64) float64 {
	if !(distance > 0) || math.IsNaN(totalSeconds) || totalSeconds <= 0 {
		return math.NaN()
	}
	return totalSeconds / distance * SplitDistance
}

// Compute returns the display string for a time field and a numeric distance.
func Compute(timeStr string, distance float64) string {
	if timeStr == "" || !(distance > 0) {
		return Placeholder
	}
	total := ParseTimeString(timeStr)
	if math.IsNaN(total) || total <= 0 {
		return InvalidTime
	}
	return FormatSplit(total / distance * SplitDistance)
}

// Calculate is Compute for a raw distance field value.
func Calculate(timeStr, distanceStr string) string {
	return Compute(timeStr, ParseDistance(distanceStr))
}

// FormatDate renders t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
