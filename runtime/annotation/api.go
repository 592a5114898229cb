package annotation

import "github.com/flute-go/reflection/runtime/metadata"

var std = New(metadata.Default())

// AnnotateClass adds annotation to the declaring type in the default registry.
func AnnotateClass(annotation any) metadata.ClassDecorator {
	return std.AnnotateClass(annotation)
}

// AnnotateField adds annotation to a field or method in the default registry.
func AnnotateField(annotation any) metadata.FieldDecorator {
	return std.AnnotateField(annotation)
}

// AnnotateProperty adds annotation to a struct field in the default registry.
func AnnotateProperty(annotation any) metadata.FieldDecorator {
	return std.AnnotateProperty(annotation)
}

// AnnotateMethod adds annotation to a method in the default registry.
func AnnotateMethod(annotation any) metadata.FieldDecorator {
	return std.AnnotateMethod(annotation)
}

// AnnotateMethodParameter adds annotation to a parameter in the default registry.
func AnnotateMethodParameter(annotation any) metadata.ParameterDecorator {
	return std.AnnotateMethodParameter(annotation)
}

// Annotate adds annotation to any site in the default registry.
func Annotate(annotation any) metadata.Decorator {
	return std.Annotate(annotation)
}

// GetClassAnnotations reads class annotations from the default registry.
func GetClassAnnotations(target any, kind metadata.ObjectType) ([]any, error) {
	return std.GetClassAnnotations(target, kind)
}

// GetFieldAnnotations reads field annotations from the default registry.
func GetFieldAnnotations(target any, member metadata.Member, kind metadata.ObjectType) ([]any, error) {
	return std.GetFieldAnnotations(target, member, kind)
}

// GetPropertyAnnotations reads property annotations from the default registry.
func GetPropertyAnnotations(target any, member metadata.Member, kind metadata.ObjectType) ([]any, error) {
	return std.GetPropertyAnnotations(target, member, kind)
}

// GetMethodAnnotations reads method annotations from the default registry.
func GetMethodAnnotations(target any, member metadata.Member, kind metadata.ObjectType) ([]any, error) {
	return std.GetMethodAnnotations(target, member, kind)
}

// GetMethodParameterAnnotations reads parameter annotations from the default registry.
func GetMethodParameterAnnotations(target any, member metadata.Member, index int, kind metadata.ObjectType) ([]any, error) {
	return std.GetMethodParameterAnnotations(target, member, index, kind)
}
