package metadata

import (
	"fmt"
	"reflect"
	"sort"
)

// Shape identifies which variant a stored Value is.
type Shape int

const (
	ShapeScalar Shape = iota + 1
	ShapeSequence
	ShapeTagset
	ShapeParameters
)

// String returns the string representation of Shape
func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeSequence:
		return "sequence"
	case ShapeTagset:
		return "tagset"
	case ShapeParameters:
		return "parameters"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Value is a stored metadata value. The shape of a value is decided by the
// policy that created it: Set stores a Scalar, Append and Prepend store a
// Sequence, Put stores a *Tagset.
type Value interface {
	Shape() Shape
	clone() Value
}

// Scalar is a value written with the Set policy.
type Scalar struct {
	V any
}

// Shape implements Value.
func (Scalar) Shape() Shape { return ShapeScalar }

func (s Scalar) clone() Value { return s }

// Sequence is an ordered, possibly duplicated list of values.
type Sequence []any

// Shape implements Value.
func (Sequence) Shape() Shape { return ShapeSequence }

func (s Sequence) clone() Value {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// contains reports whether v is already in the sequence.
func (s Sequence) contains(v any) bool {
	for _, item := range s {
		if equal(item, v) {
			return true
		}
	}
	return false
}

// Tagset is an unordered collection without duplicates. Iteration follows
// insertion order so output is stable, but callers must not rely on it.
type Tagset struct {
	items []any
}

// NewTagset builds a tagset from items, dropping duplicates.
func NewTagset(items ...any) *Tagset {
	t := &Tagset{}
	for _, item := range items {
		t.Add(item)
	}
	return t
}

// Shape implements Value.
func (*Tagset) Shape() Shape { return ShapeTagset }

func (t *Tagset) clone() Value {
	if t == nil {
		return &Tagset{}
	}
	out := &Tagset{items: make([]any, len(t.items))}
	copy(out.items, t.items)
	return out
}

// Add inserts v and reports whether the set changed.
func (t *Tagset) Add(v any) bool {
	if t.Has(v) {
		return false
	}
	t.items = append(t.items, v)
	return true
}

// Has reports whether an equal value is in the set.
func (t *Tagset) Has(v any) bool {
	if t == nil {
		return false
	}
	for _, item := range t.items {
		if equal(item, v) {
			return true
		}
	}
	return false
}

// Len returns the number of values in the set.
func (t *Tagset) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// Values returns a copy of the set's values.
func (t *Tagset) Values() []any {
	if t == nil {
		return nil
	}
	out := make([]any, len(t.items))
	copy(out, t.items)
	return out
}

// Equal reports whether both sets hold the same values, regardless of order.
func (t *Tagset) Equal(other *Tagset) bool {
	if t.Len() != other.Len() {
		return false
	}
	for _, item := range t.Values() {
		if !other.Has(item) {
			return false
		}
	}
	return true
}

// Parameters holds the metadata of every parameter of one member, indexed by
// parameter position and then by metadata key.
type Parameters struct {
	byIndex map[int]map[Key]Value
}

func newParameters() *Parameters {
	return &Parameters{byIndex: make(map[int]map[Key]Value)}
}

// Shape implements Value.
func (*Parameters) Shape() Shape { return ShapeParameters }

func (p *Parameters) clone() Value {
	out := newParameters()
	if p == nil {
		return out
	}
	for index, entries := range p.byIndex {
		out.byIndex[index] = cloneEntries(entries)
	}
	return out
}

// Indices returns the annotated parameter positions in ascending order.
func (p *Parameters) Indices() []int {
	if p == nil {
		return nil
	}
	indices := make([]int, 0, len(p.byIndex))
	for index := range p.byIndex {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices
}

// At returns a copy of the metadata of the parameter at index, or nil.
func (p *Parameters) At(index int) map[Key]Value {
	if p == nil {
		return nil
	}
	entries, ok := p.byIndex[index]
	if !ok {
		return nil
	}
	return cloneEntries(entries)
}

// entries returns the live map for index, creating it when needed.
func (p *Parameters) entries(index int) map[Key]Value {
	entries, ok := p.byIndex[index]
	if !ok {
		entries = make(map[Key]Value)
		p.byIndex[index] = entries
	}
	return entries
}

func (p *Parameters) get(index int, key Key) (Value, bool) {
	entries, ok := p.byIndex[index]
	if !ok {
		return nil, false
	}
	v, ok := entries[key]
	return v, ok
}

// toValue wraps data for storage. Values are stored as given (copied) so a
// caller can pre-initialize a key with a Sequence or Tagset; a plain []any
// is stored as a Sequence.
func toValue(data any) Value {
	if v, ok := data.(Value); ok && v != nil {
		return v.clone()
	}
	if items, ok := data.([]any); ok && items != nil {
		return append(Sequence{}, items...)
	}
	return Scalar{V: data}
}

func cloneValue(v Value) Value {
	if v == nil {
		return nil
	}
	return v.clone()
}

func cloneEntries(entries map[Key]Value) map[Key]Value {
	if entries == nil {
		return nil
	}
	out := make(map[Key]Value, len(entries))
	for k, v := range entries {
		out[k] = cloneValue(v)
	}
	return out
}

// equal compares by == when the dynamic values are comparable (identity for
// pointers), and deeply otherwise.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// IsNil reports whether v is nil or a nil pointer, map, slice, func, chan or
// interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Items returns the values held by v in stored order: the single value of a
// Scalar, the elements of a Sequence or the members of a Tagset. It returns
// nil for nil and for a *Parameters container.
func Items(v Value) []any {
	switch val := v.(type) {
	case Scalar:
		return []any{val.V}
	case Sequence:
		return val.clone().(Sequence)
	case *Tagset:
		return val.Values()
	default:
		return nil
	}
}
