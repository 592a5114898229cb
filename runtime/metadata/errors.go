package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTarget is returned when a declaration site cannot be resolved
	// to a declaring type (nil target, or a non-type target in the constructor view).
	ErrInvalidTarget = errors.New("invalid metadata target")

	// ErrShape is returned when a combination policy meets a stored value of an
	// incompatible shape, e.g. appending to a value that was written with Set.
	ErrShape = errors.New("incompatible metadata shape")

	// ErrInvalidKey is returned for nil or non-comparable metadata keys.
	ErrInvalidKey = errors.New("invalid metadata key")

	// ErrInvalidIndex is returned for negative parameter indices.
	ErrInvalidIndex = errors.New("invalid parameter index")

	// ErrTypeNotFound is returned by Schema.Lookup when no type matches.
	ErrTypeNotFound = errors.New("type not found")

	// ErrAmbiguousType is returned by Schema.Lookup when a bare name matches
	// types from several packages.
	ErrAmbiguousType = errors.New("type name is ambiguous")
)

// TargetError describes a target that could not be resolved.
type TargetError struct {
	Target any
	Kind   ObjectType
	Reason string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("cannot resolve %s target %T: %s", e.Kind, e.Target, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidTarget) hold.
func (e *TargetError) Unwrap() error {
	return ErrInvalidTarget
}

// ShapeError describes a write that found a stored value of the wrong shape.
type ShapeError struct {
	Policy Policy
	Key    Key
	Have   Shape
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("cannot %s metadata %v: stored value is a %s", e.Policy, e.Key, e.Have)
}

// Unwrap makes errors.Is(err, ErrShape) hold.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}
