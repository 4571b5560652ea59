package ergdata

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tormoder/fit"
)

var ErrNoSession = errors.New("fit file has no session")

// ParseFIT extracts the first session of a FIT activity file.
func ParseFIT(data []byte) (*Workout, error) {
	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode fit: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("fit file is not an activity: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return nil, ErrNoSession
	}
	session := activity.Sessions[0]

	start := session.StartTime
	if start.IsZero() || fit.IsBaseTime(start) {
		return nil, errors.New("fit session has no start time")
	}

	equipment, name := describeSport(session.Sport)
	day := start.UTC()
	w := &Workout{
		CardioLogID: fmt.Sprintf("fit_%d", start.Unix()),
		Equipment:   equipment,
		Name:        name,
		Date:        time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
	}
	if d := positive(session.GetTotalTimerTimeScaled()); d > 0 {
		w.DurationSeconds = &d
	} else if d := positive(session.GetTotalElapsedTimeScaled()); d > 0 {
		w.DurationSeconds = &d
	}
	if m := positive(session.GetTotalDistanceScaled()); m > 0 {
		w.DistanceMeters = &m
	}
	return w, nil
}

func positive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// describeSport maps a FIT sport to an equipment type and a workout name.
func describeSport(s fit.Sport) (equipment, name string) {
	switch s {
	case fit.SportRowing:
		return "ROWER", "Rowing"
	case fit.SportCycling:
		return "BIKE", "Cycling"
	case fit.SportRunning:
		return "TREADMILL", "Running"
	case fit.SportWalking:
		return "TREADMILL", "Walking"
	default:
		return DefaultEquipment, "Rowing"
	}
}
