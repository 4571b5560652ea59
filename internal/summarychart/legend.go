package summarychart

import "strings"

// VisibleSet is a set of series kinds.
type VisibleSet uint8

// SetOf builds a set from kinds.
func SetOf(kinds ...Kind) VisibleSet {
	var v VisibleSet
	for _, k := range kinds {
		if k.valid() {
			v |= 1 << uint(k)
		}
	}
	return v
}

// InitialVisible is the set shown once the chart has rendered.
var InitialVisible = SetOf(Distance)

// AllVisible contains every kind.
var AllVisible = SetOf(Kinds[:]...)

// Has reports whether k is in the set.
func (v VisibleSet) Has(k Kind) bool {
	return k.valid() && v&(1<<uint(k)) != 0
}

// Kinds lists the members in display order.
func (v VisibleSet) Kinds() []Kind {
	var out []Kind
	for _, k := range Kinds {
		if v.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (v VisibleSet) String() string {
	names := make([]string, 0, len(Kinds))
	for _, k := range v.Kinds() {
		names = append(names, k.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Solo is the visible set after a legend click on clicked: that series alone,
// whatever was visible before.
func Solo(clicked Kind) VisibleSet {
	return SetOf(clicked)
}
