// Package reflection combines Go's reflect information about a type with the
// annotations, tags and metadata stored for it.
package reflection

import (
	"reflect"
	"sort"

	"github.com/flute-go/reflection/runtime/annotation"
	"github.com/flute-go/reflection/runtime/metadata"
	"github.com/flute-go/reflection/runtime/tag"
)

// Option configures an Object.
type Option func(*Object)

// InRegistry reads from registry instead of the default one.
func InRegistry(registry *metadata.Registry) Option {
	return func(o *Object) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// Object is a view of one declaring type.
type Object struct {
	typ         reflect.Type
	registry    *metadata.Registry
	annotations *annotation.Annotator
	tags        *tag.Tagger
}

// Of returns the view of the declaring type of target.
func Of(target any, kind metadata.ObjectType, opts ...Option) (*Object, error) {
	handle, err := metadata.Resolve(target, kind)
	if err != nil {
		return nil, err
	}
	return newObject(handle, opts), nil
}

// For returns the view of T.
func For[T any](opts ...Option) *Object {
	return newObject(metadata.TypeOf[T](), opts)
}

func newObject(handle reflect.Type, opts []Option) *Object {
	o := &Object{typ: handle, registry: metadata.Default()}
	for _, opt := range opts {
		opt(o)
	}
	o.annotations = annotation.New(o.registry)
	o.tags = tag.New(o.registry)
	return o
}

// Type returns the declaring type.
func (o *Object) Type() reflect.Type { return o.typ }

// Name returns the package-local name of the type, e.g. "billing.Account".
func (o *Object) Name() string { return o.typ.String() }

// Annotations returns the class annotations in listing order, or nil.
func (o *Object) Annotations() ([]any, error) {
	return o.annotations.GetClassAnnotations(o.typ, metadata.Constructor)
}

// Tags returns the class tags, or nil.
func (o *Object) Tags() (*metadata.Tagset, error) {
	return o.tags.GetClassTags(o.typ, metadata.Constructor)
}

// Metadata returns the class metadata stored under key, or nil.
func (o *Object) Metadata(key metadata.Key) (metadata.Value, error) {
	return o.registry.GetClassMetadata(o.typ, key, metadata.Constructor)
}

// SetMetadata stores value under key for the class, replacing any prior value.
func (o *Object) SetMetadata(key metadata.Key, value any) error {
	return o.registry.ClassMetadata(key, value, metadata.Constructor)(o.typ)
}

// ConstructorParameterAnnotations returns the annotations of constructor
// parameter index, or nil.
func (o *Object) ConstructorParameterAnnotations(index int) ([]any, error) {
	return o.annotations.GetMethodParameterAnnotations(o.typ, metadata.ConstructorMember, index, metadata.Constructor)
}

// ConstructorParameterTags returns the tags of constructor parameter index,
// or nil.
func (o *Object) ConstructorParameterTags(index int) (*metadata.Tagset, error) {
	return o.tags.GetMethodParameterTags(o.typ, metadata.ConstructorMember, index, metadata.Constructor)
}

// Fields returns the struct fields of the type in declaration order. Non-struct
// types have none.
func (o *Object) Fields() []*Field {
	if o.typ.Kind() != reflect.Struct {
		return nil
	}
	fields := make([]*Field, 0, o.typ.NumField())
	for i := 0; i < o.typ.NumField(); i++ {
		sf := o.typ.Field(i)
		fields = append(fields, &Field{obj: o, name: metadata.Member(sf.Name), typ: sf.Type})
	}
	return fields
}

// Field returns the struct field or method called name.
func (o *Object) Field(name string) (*Field, bool) {
	if o.typ.Kind() == reflect.Struct {
		if sf, ok := o.typ.FieldByName(name); ok {
			return &Field{obj: o, name: metadata.Member(sf.Name), typ: sf.Type}, true
		}
	}
	if m, ok := o.Method(name); ok {
		return &m.Field, true
	}
	return nil, false
}

// Methods returns the exported methods of *T, sorted by name.
func (o *Object) Methods() []*Method {
	ptr := reflect.PointerTo(o.typ)
	methods := make([]*Method, 0, ptr.NumMethod())
	for i := 0; i < ptr.NumMethod(); i++ {
		methods = append(methods, newMethod(o, ptr.Method(i)))
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].name < methods[j].name })
	return methods
}

// Method returns the exported method called name. Methods with pointer
// receivers are included.
func (o *Object) Method(name string) (*Method, bool) {
	m, ok := reflect.PointerTo(o.typ).MethodByName(name)
	if !ok {
		return nil, false
	}
	return newMethod(o, m), true
}

// AnnotatedMembers returns the names of members that carry any metadata,
// sorted. The constructor pseudo-member is reported as "".
func (o *Object) AnnotatedMembers() ([]metadata.Member, error) {
	all, err := o.registry.GetAllFieldsMetadata(o.typ, metadata.Constructor)
	if err != nil {
		return nil, err
	}
	members := make([]metadata.Member, 0, len(all))
	for m := range all {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members, nil
}
