// Package annotation attaches arbitrary values ("annotations") to types,
// fields, methods and parameters.
//
// Annotations are kept in the order they are listed. Decorators stack like
// function wrappers, so the innermost one runs first; every annotation is
// therefore prepended, which restores listing order:
//
//	err := metadata.Declare[Invoice]().
//		Class(
//			annotation.AnnotateClass("note1"),
//			annotation.AnnotateClass("note2"),
//			annotation.AnnotateClass("note3"),
//		).
//		Commit()
//
//	notes, _ := annotation.GetClassAnnotations(Invoice{}, metadata.Auto)
//	// notes == []any{"note1", "note2", "note3"}
//
// A nil annotation produces a decorator that does nothing, so annotations can
// be added conditionally without branching.
package annotation

import (
	"github.com/flute-go/reflection/runtime/metadata"
)

// Metadata keys under which annotations are stored.
var (
	KeyClass           = metadata.NewKey("flute.annotation.for-class")
	KeyField           = metadata.NewKey("flute.annotation.for-field")
	KeyMethodParameter = metadata.NewKey("flute.annotation.for-method-parameter")
)

// Annotator reads and writes annotations in one registry.
type Annotator struct {
	registry *metadata.Registry
}

// New creates an Annotator backed by registry, or by the default registry
// when registry is nil.
func New(registry *metadata.Registry) *Annotator {
	if registry == nil {
		registry = metadata.Default()
	}
	return &Annotator{registry: registry}
}

// Registry returns the registry the annotator writes to.
func (a *Annotator) Registry() *metadata.Registry {
	return a.registry
}

// AnnotateClass adds annotation to the declaring type.
func (a *Annotator) AnnotateClass(annotation any) metadata.ClassDecorator {
	if metadata.IsNil(annotation) {
		return func(any) error { return nil }
	}
	return a.registry.PrependClassMetadata(KeyClass, annotation, metadata.Auto)
}

// AnnotateField adds annotation to a field or method.
func (a *Annotator) AnnotateField(annotation any) metadata.FieldDecorator {
	if metadata.IsNil(annotation) {
		return func(any, metadata.Member) error { return nil }
	}
	return a.registry.PrependPropertyMetadata(KeyField, annotation, metadata.Auto)
}

// AnnotateProperty adds annotation to a struct field.
func (a *Annotator) AnnotateProperty(annotation any) metadata.FieldDecorator {
	return a.AnnotateField(annotation)
}

// AnnotateMethod adds annotation to a method.
func (a *Annotator) AnnotateMethod(annotation any) metadata.FieldDecorator {
	return a.AnnotateField(annotation)
}

// AnnotateMethodParameter adds annotation to a method or constructor parameter.
func (a *Annotator) AnnotateMethodParameter(annotation any) metadata.ParameterDecorator {
	if metadata.IsNil(annotation) {
		return func(any, metadata.Member, int) error { return nil }
	}
	return a.registry.PrependMethodParameterMetadata(KeyMethodParameter, annotation, metadata.Auto)
}

// Annotate adds annotation to whichever site the decorator is applied to.
func (a *Annotator) Annotate(annotation any) metadata.Decorator {
	if metadata.IsNil(annotation) {
		return metadata.Noop()
	}
	return metadata.Dispatch(
		a.AnnotateClass(annotation),
		a.AnnotateField(annotation),
		a.AnnotateMethodParameter(annotation),
	)
}

// GetClassAnnotations returns the annotations of the declaring type of
// target in listing order, or nil.
func (a *Annotator) GetClassAnnotations(target any, kind metadata.ObjectType) ([]any, error) {
	v, err := a.registry.GetClassMetadata(target, KeyClass, kind)
	if err != nil {
		return nil, err
	}
	return metadata.Items(v), nil
}

// GetFieldAnnotations returns the annotations of a field or method, or nil.
func (a *Annotator) GetFieldAnnotations(target any, member metadata.Member, kind metadata.ObjectType) ([]any, error) {
	v, err := a.registry.GetFieldMetadata(target, member, KeyField, kind)
	if err != nil {
		return nil, err
	}
	return metadata.Items(v), nil
}

// GetPropertyAnnotations returns the annotations of a struct field, or nil.
func (a *Annotator) GetPropertyAnnotations(target any, member metadata.Member, kind metadata.ObjectType) ([]any, error) {
	return a.GetFieldAnnotations(target, member, kind)
}

// GetMethodAnnotations returns the annotations of a method, or nil.
func (a *Annotator) GetMethodAnnotations(target any, member metadata.Member, kind metadata.ObjectType) ([]any, error) {
	return a.GetFieldAnnotations(target, member, kind)
}

// GetMethodParameterAnnotations returns the annotations of the parameter at
// index of member, or nil. Use metadata.ConstructorMember for constructor
// parameters.
func (a *Annotator) GetMethodParameterAnnotations(target any, member metadata.Member, index int, kind metadata.ObjectType) ([]any, error) {
	v, err := a.registry.GetMethodParameterMetadata(target, member, index, KeyMethodParameter, kind)
	if err != nil {
		return nil, err
	}
	return metadata.Items(v), nil
}

// LatestAnnotation returns the last annotation of type T.
func LatestAnnotation[T any](annotations []any) (T, bool) {
	for i := len(annotations) - 1; i >= 0; i-- {
		if v, ok := annotations[i].(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// All returns every annotation of type T, in order.
func All[T any](annotations []any) []T {
	var out []T
	for _, a := range annotations {
		if v, ok := a.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
