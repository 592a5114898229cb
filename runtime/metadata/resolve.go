package metadata

import (
	"fmt"
	"reflect"
)

// Key identifies one piece of metadata at a declaration site. Any non-nil
// comparable value works; NewKey returns keys that cannot collide with keys
// created elsewhere.
type Key = any

type symbol struct {
	name string
}

func (s *symbol) String() string { return "Symbol(" + s.name + ")" }

// NewKey returns a unique key. Two calls with the same name return distinct keys.
func NewKey(name string) Key {
	return &symbol{name: name}
}

// Member names a field or method of a declaring type.
type Member string

// ConstructorMember is the pseudo-member holding constructor parameter metadata.
const ConstructorMember Member = ""

// IsConstructor reports whether m is the constructor pseudo-member.
func (m Member) IsConstructor() bool { return m == ConstructorMember }

// ObjectType states whether a target is an instance or the declaring type itself.
type ObjectType int

const (
	// Auto selects the operation's default: Instance for reads, Constructor
	// for class writes, and inferred from the member for field and parameter writes.
	Auto ObjectType = iota
	// Instance means the target is a value whose type is the declaring type.
	Instance
	// Constructor means the target is the declaring type (a reflect.Type).
	Constructor
)

// String returns the string representation of ObjectType
func (o ObjectType) String() string {
	switch o {
	case Auto:
		return "auto"
	case Instance:
		return "instance"
	case Constructor:
		return "constructor"
	default:
		return fmt.Sprintf("object_type(%d)", int(o))
	}
}

// or returns o, or def when o is Auto.
func (o ObjectType) or(def ObjectType) ObjectType {
	if o == Auto {
		return def
	}
	return o
}

// memberDefault is the writer default for field and parameter sites.
func memberDefault(member Member) ObjectType {
	if member.IsConstructor() {
		return Constructor
	}
	return Instance
}

// TypeOf returns the canonical handle of T.
func TypeOf[T any]() reflect.Type {
	return canonical(reflect.TypeOf((*T)(nil)).Elem())
}

// Resolve returns the canonical handle of the declaring type of target.
// A reflect.Type target is always treated as the declaring type; other
// targets are instances unless kind is Constructor, which rejects them.
// Pointer types resolve to their element type, so T and *T share storage.
func Resolve(target any, kind ObjectType) (reflect.Type, error) {
	if target == nil {
		return nil, &TargetError{Target: target, Kind: kind, Reason: "target is nil"}
	}
	if t, ok := target.(reflect.Type); ok {
		return canonical(t), nil
	}
	if kind == Constructor {
		return nil, &TargetError{Target: target, Kind: kind, Reason: "constructor view requires a reflect.Type"}
	}
	return canonical(reflect.TypeOf(target)), nil
}

func canonical(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func validateKey(key Key) error {
	if key == nil {
		return fmt.Errorf("%w: key is nil", ErrInvalidKey)
	}
	if !reflect.ValueOf(key).Comparable() {
		return fmt.Errorf("%w: %T is not comparable", ErrInvalidKey, key)
	}
	return nil
}

func validateIndex(index int) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return nil
}
