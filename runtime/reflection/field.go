package reflection

import (
	"reflect"

	"github.com/flute-go/reflection/runtime/metadata"
)

// Field is a view of a struct field or a method of a declaring type.
type Field struct {
	obj      *Object
	name     metadata.Member
	typ      reflect.Type
	isMethod bool
}

// Object returns the declaring type's view.
func (f *Field) Object() *Object { return f.obj }

// Name returns the member name.
func (f *Field) Name() metadata.Member { return f.name }

// Type returns the field type, or the method's func type (receiver included).
func (f *Field) Type() reflect.Type { return f.typ }

// IsMethod reports whether the member is a method.
func (f *Field) IsMethod() bool { return f.isMethod }

// IsProperty reports whether the member is a struct field.
func (f *Field) IsProperty() bool { return !f.isMethod }

// Annotations returns the member's annotations in listing order, or nil.
func (f *Field) Annotations() ([]any, error) {
	return f.obj.annotations.GetFieldAnnotations(f.obj.typ, f.name, metadata.Constructor)
}

// Tags returns the member's tags, or nil.
func (f *Field) Tags() (*metadata.Tagset, error) {
	return f.obj.tags.GetFieldTags(f.obj.typ, f.name, metadata.Constructor)
}

// Metadata returns the member metadata stored under key, or nil.
func (f *Field) Metadata(key metadata.Key) (metadata.Value, error) {
	return f.obj.registry.GetFieldMetadata(f.obj.typ, f.name, key, metadata.Constructor)
}

// SetMetadata stores value under key for the member.
func (f *Field) SetMetadata(key metadata.Key, value any) error {
	return f.obj.registry.FieldMetadata(key, value, metadata.Constructor)(f.obj.typ, f.name)
}
