package selector

import "carpick/internal/models"

type FieldID int

const (
	FieldManufacturer FieldID = iota
	FieldMake
	FieldModel
)

func (f FieldID) String() string {
	switch f {
	case FieldManufacturer:
		return "manufacturer"
	case FieldMake:
		return "make"
	case FieldModel:
		return "model"
	}
	return "unknown"
}

// Field is one selection input. It holds either nothing, free text, or a
// resolved entity, plus the options loaded for it.
type Field[T models.Entity] struct {
	id       FieldID
	enabled  bool
	text     string
	selected T
	resolved bool
	options  []T
	visible  []T

	// lastKey is the key of the most recent resolution. Typing keeps it so
	// picking the same entity again is not treated as a change.
	lastKey  int
	hadValue bool

	// gen identifies the latest lookup issued for this field.
	gen uint64
}

func newField[T models.Entity](id FieldID) *Field[T] {
	return &Field[T]{id: id, options: []T{}, visible: []T{}}
}

func (f *Field[T]) ID() FieldID   { return f.id }
func (f *Field[T]) Enabled() bool { return f.enabled }

// Text is what the input shows: the typed text, or the resolved label.
func (f *Field[T]) Text() string { return f.text }

func (f *Field[T]) Selected() (T, bool) {
	return f.selected, f.resolved
}

// Options is the full list loaded for the field.
func (f *Field[T]) Options() []T { return f.options }

// Visible is Options filtered by the current query.
func (f *Field[T]) Visible() []T { return f.visible }

// Labels returns the display labels of the visible options.
func (f *Field[T]) Labels() []string {
	labels := make([]string, len(f.visible))
	for i, v := range f.visible {
		labels[i] = v.Label()
	}
	return labels
}

func (f *Field[T]) query() string {
	if f.resolved {
		return f.selected.Title()
	}
	return f.text
}

func (f *Field[T]) refilter() {
	f.visible = Filter(f.options, f.query())
}

func (f *Field[T]) setText(text string) {
	var zero T
	f.text = text
	f.selected = zero
	f.resolved = false
	f.refilter()
}

// resolve stores v and reports whether it differs from the previous
// resolution.
func (f *Field[T]) resolve(v T) bool {
	changed := !f.hadValue || f.lastKey != v.Key()
	f.selected = v
	f.resolved = true
	f.lastKey = v.Key()
	f.hadValue = true
	f.text = v.Label()
	f.refilter()
	return changed
}

// reset clears and disables the field and invalidates lookups in flight.
func (f *Field[T]) reset() {
	var zero T
	f.text = ""
	f.selected = zero
	f.resolved = false
	f.lastKey = 0
	f.hadValue = false
	f.enabled = false
	f.options = []T{}
	f.visible = []T{}
	f.gen++
}

func (f *Field[T]) begin() uint64 {
	f.gen++
	return f.gen
}

// load installs items fetched under gen. It refuses superseded lookups.
func (f *Field[T]) load(gen uint64, items []T) bool {
	if gen != f.gen {
		return false
	}
	f.options = items
	f.enabled = true
	f.refilter()
	return true
}
