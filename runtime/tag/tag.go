// Package tag attaches unordered, duplicate-free labels to types, fields,
// methods and parameters.
//
// Tags are stored with the Put policy: tagging a site twice with an equal
// value keeps a single tag.
package tag

import (
	"github.com/flute-go/reflection/runtime/metadata"
)

// Metadata keys under which tags are stored.
var (
	KeyClass           = metadata.NewKey("flute.tag.for-class")
	KeyField           = metadata.NewKey("flute.tag.for-field")
	KeyMethodParameter = metadata.NewKey("flute.tag.for-method-parameter")
)

// Tagger reads and writes tags in one registry.
type Tagger struct {
	registry *metadata.Registry
}

// New creates a Tagger backed by registry, or by the default registry when
// registry is nil.
func New(registry *metadata.Registry) *Tagger {
	if registry == nil {
		registry = metadata.Default()
	}
	return &Tagger{registry: registry}
}

// TagClass adds tag to the class tags of the decorated type.
func (t *Tagger) TagClass(tag any) metadata.ClassDecorator {
	if metadata.IsNil(tag) {
		return func(any) error { return nil }
	}
	return t.registry.PutClassMetadata(KeyClass, tag, metadata.Auto)
}

// TagField adds tag to the tags of a field or method.
func (t *Tagger) TagField(tag any) metadata.FieldDecorator {
	if metadata.IsNil(tag) {
		return func(any, metadata.Member) error { return nil }
	}
	return t.registry.PutPropertyMetadata(KeyField, tag, metadata.Auto)
}

// TagProperty is TagField for struct fields.
func (t *Tagger) TagProperty(tag any) metadata.FieldDecorator {
	return t.TagField(tag)
}

// TagMethod is TagField for methods.
func (t *Tagger) TagMethod(tag any) metadata.FieldDecorator {
	return t.TagField(tag)
}

// TagMethodParameter adds tag to the tags of a method or constructor parameter.
func (t *Tagger) TagMethodParameter(tag any) metadata.ParameterDecorator {
	if metadata.IsNil(tag) {
		return func(any, metadata.Member, int) error { return nil }
	}
	return t.registry.PutMethodParameterMetadata(KeyMethodParameter, tag, metadata.Auto)
}

// Tag adds tag to whichever site the decorator is applied to.
func (t *Tagger) Tag(tag any) metadata.Decorator {
	if metadata.IsNil(tag) {
		return metadata.Noop()
	}
	return metadata.Dispatch(t.TagClass(tag), t.TagField(tag), t.TagMethodParameter(tag))
}

// GetClassTags returns the class tags of target, or nil.
func (t *Tagger) GetClassTags(target any, kind metadata.ObjectType) (*metadata.Tagset, error) {
	v, err := t.registry.GetClassMetadata(target, KeyClass, kind)
	if err != nil {
		return nil, err
	}
	return asTagset(v), nil
}

// GetFieldTags returns the tags of member, or nil.
func (t *Tagger) GetFieldTags(target any, member metadata.Member, kind metadata.ObjectType) (*metadata.Tagset, error) {
	v, err := t.registry.GetFieldMetadata(target, member, KeyField, kind)
	if err != nil {
		return nil, err
	}
	return asTagset(v), nil
}

// GetPropertyTags is GetFieldTags for struct fields.
func (t *Tagger) GetPropertyTags(target any, member metadata.Member, kind metadata.ObjectType) (*metadata.Tagset, error) {
	return t.GetFieldTags(target, member, kind)
}

// GetMethodTags is GetFieldTags for methods.
func (t *Tagger) GetMethodTags(target any, member metadata.Member, kind metadata.ObjectType) (*metadata.Tagset, error) {
	return t.GetFieldTags(target, member, kind)
}

// GetMethodParameterTags returns the tags of the parameter at index of
// member. Use metadata.ConstructorMember for constructor parameters.
func (t *Tagger) GetMethodParameterTags(target any, member metadata.Member, index int, kind metadata.ObjectType) (*metadata.Tagset, error) {
	v, err := t.registry.GetMethodParameterMetadata(target, member, index, KeyMethodParameter, kind)
	if err != nil {
		return nil, err
	}
	return asTagset(v), nil
}

// asTagset returns v as a tagset. A value stored as a sequence is returned
// as a set view of its elements; nothing stored yields nil.
func asTagset(v metadata.Value) *metadata.Tagset {
	switch val := v.(type) {
	case nil:
		return nil
	case *metadata.Tagset:
		return val
	default:
		items := metadata.Items(v)
		if items == nil {
			return nil
		}
		return metadata.NewTagset(items...)
	}
}

// HasTag reports whether set contains tag. A nil set has no tags.
func HasTag(set *metadata.Tagset, tag any) bool {
	return set.Has(tag)
}
