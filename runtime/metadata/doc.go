// Package metadata attaches arbitrary data to declarations of Go types and
// reads it back at runtime.
//
// # Overview
//
// Frameworks such as dependency injection, validation and serialization need
// to know things about declarations that Go's type system does not record.
// This package keeps that information in a registry keyed by the declaring
// type. Four kinds of declaration sites are supported:
//
//   - the type itself ("class" metadata)
//   - a field or method ("field" metadata; both share one namespace)
//   - a parameter of a method, by zero-based position
//   - a parameter of the constructor pseudo-member (ConstructorMember)
//
// Metadata can be attached and read through either the type (a reflect.Type,
// see TypeOf) or any instance of it. Pointer types resolve to their element
// type, so *T and T share storage.
//
// # Combination Policies
//
// Every write folds a new value into whatever is stored under the same key:
//
//   - Set overwrites (stored as Scalar)
//   - Append adds to the end of a Sequence
//   - Prepend adds to the start of a Sequence
//   - Put adds to a Tagset, ignoring duplicates
//
// Mixing policies of incompatible shape on one key fails with ErrShape.
// Put tolerates a Sequence and only suppresses duplicates in it.
//
// # Decorators
//
// Writers are decorator factories: ClassMetadata(key, value, kind) returns a
// ClassDecorator that performs the write when invoked with a target. Use
// Declare to list the decorators of a type in source order and apply them
// with stacked-decorator semantics:
//
//	var Column = metadata.NewKey("orm.column")
//
//	err := metadata.Declare[User]().
//		Field("Email", metadata.FieldMetadata(Column, "email", metadata.Auto)).
//		Commit()
//
//	v, err := metadata.GetFieldMetadata(&User{}, "Email", Column, metadata.Auto)
//	// v == metadata.Scalar{V: "email"}
//
// Reads never fail on missing data; they return nil. Values returned by reads
// are copies and may be modified freely.
//
// The annotation and tag packages build on this package with fixed policies.
package metadata
