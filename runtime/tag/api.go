package tag

import "github.com/flute-go/reflection/runtime/metadata"

var std = New(metadata.Default())

// TagClass tags the declaring type in the default registry.
func TagClass(tag any) metadata.ClassDecorator { return std.TagClass(tag) }

// TagField tags a field or method in the default registry.
func TagField(tag any) metadata.FieldDecorator { return std.TagField(tag) }

// TagProperty tags a struct field in the default registry.
func TagProperty(tag any) metadata.FieldDecorator { return std.TagProperty(tag) }

// TagMethod tags a method in the default registry.
func TagMethod(tag any) metadata.FieldDecorator { return std.TagMethod(tag) }

// TagMethodParameter tags a parameter in the default registry.
func TagMethodParameter(tag any) metadata.ParameterDecorator { return std.TagMethodParameter(tag) }

// Tag tags any site in the default registry.
func Tag(tag any) metadata.Decorator { return std.Tag(tag) }

// GetClassTags reads class tags from the default registry.
func GetClassTags(target any, kind metadata.ObjectType) (*metadata.Tagset, error) {
	return std.GetClassTags(target, kind)
}

// GetFieldTags reads field tags from the default registry.
func GetFieldTags(target any, member metadata.Member, kind metadata.ObjectType) (*metadata.Tagset, error) {
	return std.GetFieldTags(target, member, kind)
}

// GetPropertyTags reads property tags from the default registry.
func GetPropertyTags(target any, member metadata.Member, kind metadata.ObjectType) (*metadata.Tagset, error) {
	return std.GetPropertyTags(target, member, kind)
}

// GetMethodTags reads method tags from the default registry.
func GetMethodTags(target any, member metadata.Member, kind metadata.ObjectType) (*metadata.Tagset, error) {
	return std.GetMethodTags(target, member, kind)
}

// GetMethodParameterTags reads parameter tags from the default registry.
func GetMethodParameterTags(target any, member metadata.Member, index int, kind metadata.ObjectType) (*metadata.Tagset, error) {
	return std.GetMethodParameterTags(target, member, index, kind)
}
