package summarychart

// Thresholds are the largest visible category counts at which per-bar data
// labels and x-axis tick labels are still drawn.
type Thresholds struct {
	DataLabels int
	AxisLabels int
}

// DefaultThresholds shows data labels up to 5 bars and axis labels up to 8.
var DefaultThresholds = Thresholds{DataLabels: 5, AxisLabels: 8}

// LabelState is which label layers are currently drawn.
type LabelState struct {
	DataLabels bool
	AxisLabels bool
}

// Target is the label state wanted for the given number of visible categories.
func (t Thresholds) Target(visible int) LabelState {
	return LabelState{
		DataLabels: visible <= t.DataLabels,
		AxisLabels: visible <= t.AxisLabels,
	}
}

// Patch is a partial chart configuration. A nil field is left untouched.
type Patch struct {
	DataLabels *bool
	AxisLabels *bool
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.DataLabels == nil && p.AxisLabels == nil
}

// Apply returns s with the patch's fields written over it.
func (p Patch) Apply(s LabelState) LabelState {
	if p.DataLabels != nil {
		s.DataLabels = *p.DataLabels
	}
	if p.AxisLabels != nil {
		s.AxisLabels = *p.AxisLabels
	}
	return s
}

// Diff returns the fields of the target state for visible categories that
// differ from current.
func Diff(current LabelState, visible int, t Thresholds) Patch {
	want := t.Target(visible)
	var p Patch
	if want.DataLabels != current.DataLabels {
		v := want.DataLabels
		p.DataLabels = &v
	}
	if want.AxisLabels != current.AxisLabels {
		v := want.AxisLabels
		p.AxisLabels = &v
	}
	return p
}

// VisibleCount is the number of categories between two zoom window indexes,
// inclusive.
func VisibleCount(minIndex, maxIndex int) int {
	if maxIndex < minIndex {
		return 0
	}
	return maxIndex - minIndex + 1
}
