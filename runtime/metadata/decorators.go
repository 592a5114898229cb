package metadata

import (
	"fmt"
	"reflect"
)

// ClassDecorator attaches metadata to the declaring type of target.
type ClassDecorator func(target any) error

// FieldDecorator attaches metadata to a field or method of target.
type FieldDecorator func(target any, member Member) error

// ParameterDecorator attaches metadata to the parameter at index of a method
// (or of the constructor when member is ConstructorMember).
type ParameterDecorator func(target any, member Member, index int) error

// Decorator attaches metadata to any declaration site.
type Decorator func(target any, site Site) error

// Site identifies a declaration site within a declaring type.
type Site interface {
	isSite()
}

// ClassSite is the declaring type itself.
type ClassSite struct{}

// FieldSite is a field or method.
type FieldSite struct {
	Member Member
}

// ParameterSite is a parameter of a method, or of the constructor when
// Member is ConstructorMember.
type ParameterSite struct {
	Member Member
	Index  int
}

func (ClassSite) isSite()     {}
func (FieldSite) isSite()     {}
func (ParameterSite) isSite() {}

// String implements fmt.Stringer.
func (ClassSite) String() string { return "class" }

// String implements fmt.Stringer.
func (s FieldSite) String() string { return "field " + memberLabel(s.Member) }

// String implements fmt.Stringer.
func (s ParameterSite) String() string {
	return fmt.Sprintf("parameter %d of %s", s.Index, memberLabel(s.Member))
}

func memberLabel(m Member) string {
	if m.IsConstructor() {
		return "constructor"
	}
	return string(m)
}

// SiteFor infers a site from loosely shaped arguments: no member and no index
// is the class, an integer index is a parameter (of the constructor when
// member is empty), anything else is a field.
func SiteFor(member Member, index any) Site {
	if index == nil {
		if member.IsConstructor() {
			return ClassSite{}
		}
		return FieldSite{Member: member}
	}
	if i, ok := asIndex(index); ok {
		return ParameterSite{Member: member, Index: i}
	}
	return FieldSite{Member: member}
}

func asIndex(index any) (int, bool) {
	v := reflect.ValueOf(index)
	switch {
	case v.CanInt():
		return int(v.Int()), true
	case v.CanUint():
		return int(v.Uint()), true
	default:
		return 0, false
	}
}

func (r *Registry) classDecorator(policy Policy, key Key, data any, kind ObjectType) ClassDecorator {
	return func(target any) error {
		return r.writeClass(target, kind, key, policy, data)
	}
}

func (r *Registry) fieldDecorator(policy Policy, key Key, data any, kind ObjectType) FieldDecorator {
	return func(target any, member Member) error {
		return r.writeField(target, member, kind, key, policy, data)
	}
}

func (r *Registry) parameterDecorator(policy Policy, key Key, data any, kind ObjectType) ParameterDecorator {
	return func(target any, member Member, index int) error {
		return r.writeParameter(target, member, index, kind, key, policy, data)
	}
}

// ClassMetadata stores data under key for the class, replacing any prior value.
// kind describes the target the decorator will receive; Auto means Constructor.
func (r *Registry) ClassMetadata(key Key, data any, kind ObjectType) ClassDecorator {
	return r.classDecorator(PolicySet, key, data, kind)
}

// AppendClassMetadata adds data to the end of the class Sequence under key.
func (r *Registry) AppendClassMetadata(key Key, data any, kind ObjectType) ClassDecorator {
	return r.classDecorator(PolicyAppend, key, data, kind)
}

// PrependClassMetadata adds data to the start of the class Sequence under key.
func (r *Registry) PrependClassMetadata(key Key, data any, kind ObjectType) ClassDecorator {
	return r.classDecorator(PolicyPrepend, key, data, kind)
}

// PutClassMetadata adds data to the class Tagset under key.
func (r *Registry) PutClassMetadata(key Key, data any, kind ObjectType) ClassDecorator {
	return r.classDecorator(PolicyPut, key, data, kind)
}

// FieldMetadata stores data under key for a field or method.
// With Auto, the target is taken as an instance unless the member is the constructor.
func (r *Registry) FieldMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.fieldDecorator(PolicySet, key, data, kind)
}

// AppendFieldMetadata adds data to the end of the member's Sequence under key.
func (r *Registry) AppendFieldMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.fieldDecorator(PolicyAppend, key, data, kind)
}

// PrependFieldMetadata adds data to the start of the member's Sequence under key.
func (r *Registry) PrependFieldMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.fieldDecorator(PolicyPrepend, key, data, kind)
}

// PutFieldMetadata adds data to the member's Tagset under key.
func (r *Registry) PutFieldMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.fieldDecorator(PolicyPut, key, data, kind)
}

// PropertyMetadata is FieldMetadata for struct fields.
func (r *Registry) PropertyMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.FieldMetadata(key, data, kind)
}

// AppendPropertyMetadata is AppendFieldMetadata for struct fields.
func (r *Registry) AppendPropertyMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.AppendFieldMetadata(key, data, kind)
}

// PrependPropertyMetadata is PrependFieldMetadata for struct fields.
func (r *Registry) PrependPropertyMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.PrependFieldMetadata(key, data, kind)
}

// PutPropertyMetadata is PutFieldMetadata for struct fields.
func (r *Registry) PutPropertyMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.PutFieldMetadata(key, data, kind)
}

// MethodMetadata is FieldMetadata for methods. Methods and fields share one
// namespace per declaring type.
func (r *Registry) MethodMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.FieldMetadata(key, data, kind)
}

// AppendMethodMetadata is AppendFieldMetadata for methods.
func (r *Registry) AppendMethodMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.AppendFieldMetadata(key, data, kind)
}

// PrependMethodMetadata is PrependFieldMetadata for methods.
func (r *Registry) PrependMethodMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.PrependFieldMetadata(key, data, kind)
}

// PutMethodMetadata is PutFieldMetadata for methods.
func (r *Registry) PutMethodMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return r.PutFieldMetadata(key, data, kind)
}

// MethodParameterMetadata stores data under key for one parameter.
func (r *Registry) MethodParameterMetadata(key Key, data any, kind ObjectType) ParameterDecorator {
	return r.parameterDecorator(PolicySet, key, data, kind)
}

// AppendMethodParameterMetadata adds data to the end of the parameter's Sequence under key.
func (r *Registry) AppendMethodParameterMetadata(key Key, data any, kind ObjectType) ParameterDecorator {
	return r.parameterDecorator(PolicyAppend, key, data, kind)
}

// PrependMethodParameterMetadata adds data to the start of the parameter's Sequence under key.
func (r *Registry) PrependMethodParameterMetadata(key Key, data any, kind ObjectType) ParameterDecorator {
	return r.parameterDecorator(PolicyPrepend, key, data, kind)
}

// PutMethodParameterMetadata adds data to the parameter's Tagset under key.
func (r *Registry) PutMethodParameterMetadata(key Key, data any, kind ObjectType) ParameterDecorator {
	return r.parameterDecorator(PolicyPut, key, data, kind)
}

// SetMetadata stores value under key at whatever site the decorator is
// applied to. A nil site is the class.
func (r *Registry) SetMetadata(key Key, value any, kind ObjectType) Decorator {
	return Dispatch(
		r.ClassMetadata(key, value, kind),
		r.FieldMetadata(key, value, kind),
		r.MethodParameterMetadata(key, value, kind),
	)
}

// Dispatch combines one decorator per site kind into a Decorator.
func Dispatch(class ClassDecorator, field FieldDecorator, param ParameterDecorator) Decorator {
	return func(target any, site Site) error {
		switch s := site.(type) {
		case nil, ClassSite:
			return class(target)
		case FieldSite:
			return field(target, s.Member)
		case ParameterSite:
			return param(target, s.Member, s.Index)
		default:
			return fmt.Errorf("metadata: unsupported site %T", site)
		}
	}
}

// Noop returns a Decorator that accepts any site and does nothing.
func Noop() Decorator {
	return func(any, Site) error { return nil }
}
