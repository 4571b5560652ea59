// Package ergdata reads workout exports: ErgData JSON and FIT activity files.
package ergdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultEquipment is used when an export does not name its machine.
const DefaultEquipment = "SKILLROW"

var (
	ErrMissingData        = errors.New(`main "data" object is missing or empty`)
	ErrMissingCardioLogID = errors.New("cardio log id is missing")
)

// DateError reports an export date that is not DD/MM/YYYY.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date format: %q, expected DD/MM/YYYY", e.Value)
}

// Workout is the summary extracted from one export file.
type Workout struct {
	CardioLogID     string
	Equipment       string
	Name            string
	Target          string
	Date            time.Time
	DurationSeconds *float64
	DistanceMeters  *float64
	IsoReps         *int64
	Level           *float64
}

type export struct {
	Data *payload `json:"data"`
}

type payload struct {
	CardioLogID json.RawMessage `json:"cardioLogId"`
	Name        string          `json:"name"`
	Date        string          `json:"date"`
	Target      string          `json:"target"`
	Equipment   string          `json:"equipment"`
	Summary     []summaryEntry  `json:"data"`
	Analytics   struct {
		Descriptors []descriptor `json:"descriptor"`
		Samples     []sample     `json:"samples"`
	} `json:"analitics"`
}

type summaryEntry struct {
	Property string    `json:"property"`
	RawValue flexFloat `json:"rawValue"`
	Unit     string    `json:"uM"`
}

type descriptor struct {
	Index *int `json:"i"`
	Pr    struct {
		Name string `json:"name"`
		Unit string `json:"um"`
	} `json:"pr"`
}

type sample struct {
	T      *flexFloat  `json:"t"`
	Values []flexFloat `json:"vs"`
}

// flexFloat accepts numbers, numeric strings and null.
type flexFloat struct {
	v  float64
	ok bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = flexFloat{}
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*f = flexFloat{}
		return nil
	}
	*f = flexFloat{v: v, ok: true}
	return nil
}

// ParseJSON extracts the workout summary from an ErgData JSON export.
func ParseJSON(data []byte) (*Workout, error) {
	var doc export
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	p := doc.Data
	if p == nil {
		return nil, ErrMissingData
	}

	id := cardioLogID(p.CardioLogID)
	if id == "" {
		return nil, ErrMissingCardioLogID
	}

	date, err := parseDate(p.Date)
	if err != nil {
		return nil, err
	}

	w := &Workout{
		CardioLogID: id,
		Equipment:   DefaultEquipment,
		Name:        strings.TrimSpace(p.Name),
		Target:      strings.TrimSpace(p.Target),
		Date:        date,
	}
	if e := strings.TrimSpace(p.Equipment); e != "" {
		w.Equipment = strings.ToUpper(e)
	}

	w.DurationSeconds = p.duration()
	idx := p.indexes()
	w.DistanceMeters = p.sampledDistance(idx.distance)
	if w.DistanceMeters == nil {
		w.DistanceMeters = p.summaryDistance()
	}
	w.IsoReps = p.lastIsoReps(idx.isoReps)
	if w.DurationSeconds != nil {
		w.Level = p.averageLevel(idx.level, *w.DurationSeconds)
	}
	return w, nil
}

func cardioLogID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(raw)
}

// parseDate reads DD/MM/YYYY and ignores a trailing time of day.
func parseDate(s string) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, &DateError{Value: s}
	}
	t, err := time.Parse("02/01/2006", fields[0])
	if err != nil {
		return time.Time{}, &DateError{Value: s}
	}
	return t, nil
}

func (p *payload) duration() *float64 {
	for _, e := range p.Summary {
		if e.Property != "Duration" || !e.RawValue.ok {
			continue
		}
		v := e.RawValue.v
		switch strings.ToLower(e.Unit) {
		case "min", "minute", "minutes":
			v *= 60
		case "h", "hour", "hours":
			v *= 3600
		case "ms", "millisecond", "milliseconds":
			v /= 1000
		case "s", "sec", "second", "seconds", "":
		default:
			continue
		}
		return &v
	}
	return nil
}

func (p *payload) summaryDistance() *float64 {
	for _, e := range p.Summary {
		if !strings.Contains(strings.ToLower(e.Property), "distance") || !e.RawValue.ok {
			continue
		}
		v := e.RawValue.v
		switch strings.ToLower(e.Unit) {
		case "km":
			v *= 1000
		case "mi":
			v *= 1609.34
		case "m", "":
		default:
			continue
		}
		return &v
	}
	return nil
}

type sampleIndexes struct {
	distance, isoReps, level int
}

// indexes finds the sample columns of the metrics the summary needs; -1 when absent.
func (p *payload) indexes() sampleIndexes {
	idx := sampleIndexes{distance: -1, isoReps: -1, level: -1}
	for _, d := range p.Analytics.Descriptors {
		if d.Index == nil || d.Pr.Name == "" {
			continue
		}
		switch {
		case d.Pr.Name == "IsoReps" && d.Pr.Unit == "Number":
			idx.isoReps = *d.Index
		case d.Pr.Name == "Level" && d.Pr.Unit == "Number":
			idx.level = *d.Index
		case idx.distance < 0 && strings.Contains(strings.ToLower(d.Pr.Name), "distance"):
			idx.distance = *d.Index
		}
	}
	return idx
}

func (s sample) value(i int) (float64, bool) {
	if i < 0 || i >= len(s.Values) || !s.Values[i].ok {
		return 0, false
	}
	return s.Values[i].v, true
}

// sampledDistance is the distance reading of the latest sample.
func (p *payload) sampledDistance(i int) *float64 {
	var (
		best   *float64
		bestAt = math.Inf(-1)
	)
	for _, s := range p.Analytics.Samples {
		v, ok := s.value(i)
		if !ok {
			continue
		}
		at := math.Inf(-1)
		if s.T != nil && s.T.ok {
			at = s.T.v
		}
		if best == nil || at >= bestAt {
			best, bestAt = &v, at
		}
	}
	return best
}

func (p *payload) lastIsoReps(i int) *int64 {
	var last *int64
	for _, s := range p.Analytics.Samples {
		if v, ok := s.value(i); ok {
			n := int64(math.Round(v))
			last = &n
		}
	}
	return last
}

// averageLevel weights each level by how long it was held. The first level
// also covers the time before its sample and the last one runs to the end.
func (p *payload) averageLevel(i int, duration float64) *float64 {
	if i < 0 || duration <= 0 {
		return nil
	}
	type point struct{ t, level float64 }
	var points []point
	for _, s := range p.Analytics.Samples {
		v, ok := s.value(i)
		if !ok || s.T == nil || !s.T.ok {
			continue
		}
		points = append(points, point{t: s.T.v, level: v})
	}
	if len(points) == 0 {
		return nil
	}
	sort.SliceStable(points, func(a, b int) bool { return points[a].t < points[b].t })

	var sum, last float64
	for k, pt := range points {
		level := pt.level
		if k > 0 {
			level = points[k-1].level
		}
		if d := pt.t - last; d > 0 {
			sum += level * d
		}
		last = pt.t
	}
	if d := duration - last; d > 0 {
		sum += points[len(points)-1].level * d
	}
	avg := sum / duration
	return &avg
}
