package pace

import "time"

// Field is a single form input.
type Field interface {
	Value() string
	SetValue(string)
}

// ChangeSource delivers change notifications for a field. It is the
// in-process event source for a Form; the browser form reaches the same
// recompute through the /api/pace endpoint instead.
type ChangeSource interface {
	OnChange(field Field, fn func())
}

// Form wires the date, time, distance and pace inputs of the workout entry form.
type Form struct {
	Date     Field
	Time     Field
	Distance Field
	Pace     Field
}

// Recompute writes the current pace into the pace field.
func (f *Form) Recompute() {
	if f.Pace == nil {
		return
	}
	var timeStr, distStr string
	if f.Time != nil {
		timeStr = f.Time.Value()
	}
	if f.Distance != nil {
		distStr = f.Distance.Value()
	}
	f.Pace.SetValue(Calculate(timeStr, distStr))
}

// Init fills the date field with now's calendar date and computes the pace
// once so pre-filled time and distance values are reflected.
func (f *Form) Init(now time.Time) {
	if f.Date != nil {
		f.Date.SetValue(FormatDate(now))
	}
	f.Recompute()
}

// Bind registers Recompute for changes of the time and distance fields of
// an in-process form.
func (f *Form) Bind(src ChangeSource) {
	if f.Time != nil {
		src.OnChange(f.Time, f.Recompute)
	}
	if f.Distance != nil {
		src.OnChange(f.Distance, f.Recompute)
	}
}

// Value is an in-memory Field.
type Value struct {
	v string
}

func NewValue(v string) *Value { return &Value{v: v} }

func (v *Value) Value() string     { return v.v }
func (v *Value) SetValue(s string) { v.v = s }
