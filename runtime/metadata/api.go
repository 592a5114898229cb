package metadata

// The functions in this file operate on the default registry.
//
// Example usage:
//
//	var Route = metadata.NewKey("http.route")
//
//	if err := metadata.ClassMetadata(Route, "/users", metadata.Auto)(metadata.TypeOf[UserController]()); err != nil {
//		log.Fatal(err)
//	}
//	v, _ := metadata.GetClassMetadata(&UserController{}, Route, metadata.Auto)
//	fmt.Println(v.(metadata.Scalar).V) // /users

// ClassMetadata stores data under key for the class. See Registry.ClassMetadata.
func ClassMetadata(key Key, data any, kind ObjectType) ClassDecorator {
	return globalRegistry.ClassMetadata(key, data, kind)
}

// AppendClassMetadata adds data to the end of the class Sequence under key.
func AppendClassMetadata(key Key, data any, kind ObjectType) ClassDecorator {
	return globalRegistry.AppendClassMetadata(key, data, kind)
}

// PrependClassMetadata adds data to the start of the class Sequence under key.
func PrependClassMetadata(key Key, data any, kind ObjectType) ClassDecorator {
	return globalRegistry.PrependClassMetadata(key, data, kind)
}

// PutClassMetadata adds data to the class Tagset under key.
func PutClassMetadata(key Key, data any, kind ObjectType) ClassDecorator {
	return globalRegistry.PutClassMetadata(key, data, kind)
}

// GetClassMetadata returns the class metadata stored under key, or nil.
func GetClassMetadata(target any, key Key, kind ObjectType) (Value, error) {
	return globalRegistry.GetClassMetadata(target, key, kind)
}

// FieldMetadata stores data under key for a field or method.
func FieldMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.FieldMetadata(key, data, kind)
}

// AppendFieldMetadata adds data to the end of the member's Sequence under key.
func AppendFieldMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.AppendFieldMetadata(key, data, kind)
}

// PrependFieldMetadata adds data to the start of the member's Sequence under key.
func PrependFieldMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.PrependFieldMetadata(key, data, kind)
}

// PutFieldMetadata adds data to the member's Tagset under key.
func PutFieldMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.PutFieldMetadata(key, data, kind)
}

// PropertyMetadata stores data under key for a struct field.
func PropertyMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.PropertyMetadata(key, data, kind)
}

// AppendPropertyMetadata adds data to the end of the field's Sequence under key.
func AppendPropertyMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.AppendPropertyMetadata(key, data, kind)
}

// PrependPropertyMetadata adds data to the start of the field's Sequence under key.
func PrependPropertyMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.PrependPropertyMetadata(key, data, kind)
}

// PutPropertyMetadata adds data to the field's Tagset under key.
func PutPropertyMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.PutPropertyMetadata(key, data, kind)
}

// MethodMetadata stores data under key for a method.
func MethodMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.MethodMetadata(key, data, kind)
}

// AppendMethodMetadata adds data to the end of the method's Sequence under key.
func AppendMethodMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.AppendMethodMetadata(key, data, kind)
}

// PrependMethodMetadata adds data to the start of the method's Sequence under key.
func PrependMethodMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.PrependMethodMetadata(key, data, kind)
}

// PutMethodMetadata adds data to the method's Tagset under key.
func PutMethodMetadata(key Key, data any, kind ObjectType) FieldDecorator {
	return globalRegistry.PutMethodMetadata(key, data, kind)
}

// GetAllFieldsMetadata returns the metadata of every member of the declaring type.
func GetAllFieldsMetadata(target any, kind ObjectType) (map[Member]map[Key]Value, error) {
	return globalRegistry.GetAllFieldsMetadata(target, kind)
}

// GetAllMetadataOfField returns every value stored for member, or nil.
func GetAllMetadataOfField(target any, member Member, kind ObjectType) (map[Key]Value, error) {
	return globalRegistry.GetAllMetadataOfField(target, member, kind)
}

// GetFieldMetadata returns the value stored for member under key, or nil.
func GetFieldMetadata(target any, member Member, key Key, kind ObjectType) (Value, error) {
	return globalRegistry.GetFieldMetadata(target, member, key, kind)
}

// MethodParameterMetadata stores data under key for one parameter.
func MethodParameterMetadata(key Key, data any, kind ObjectType) ParameterDecorator {
	return globalRegistry.MethodParameterMetadata(key, data, kind)
}

// AppendMethodParameterMetadata adds data to the end of the parameter's Sequence under key.
func AppendMethodParameterMetadata(key Key, data any, kind ObjectType) ParameterDecorator {
	return globalRegistry.AppendMethodParameterMetadata(key, data, kind)
}

// PrependMethodParameterMetadata adds data to the start of the parameter's Sequence under key.
func PrependMethodParameterMetadata(key Key, data any, kind ObjectType) ParameterDecorator {
	return globalRegistry.PrependMethodParameterMetadata(key, data, kind)
}

// PutMethodParameterMetadata adds data to the parameter's Tagset under key.
func PutMethodParameterMetadata(key Key, data any, kind ObjectType) ParameterDecorator {
	return globalRegistry.PutMethodParameterMetadata(key, data, kind)
}

// GetAllMethodParametersMetadata returns the parameter metadata of member, or nil.
func GetAllMethodParametersMetadata(target any, member Member, kind ObjectType) (*Parameters, error) {
	return globalRegistry.GetAllMethodParametersMetadata(target, member, kind)
}

// GetAllMetadataForMethodParameter returns every value stored for one parameter, or nil.
func GetAllMetadataForMethodParameter(target any, member Member, index int, kind ObjectType) (map[Key]Value, error) {
	return globalRegistry.GetAllMetadataForMethodParameter(target, member, index, kind)
}

// GetMethodParameterMetadata returns the value stored under key for one parameter, or nil.
func GetMethodParameterMetadata(target any, member Member, index int, key Key, kind ObjectType) (Value, error) {
	return globalRegistry.GetMethodParameterMetadata(target, member, index, key, kind)
}

// SetMetadata stores value under key at any site. See Registry.SetMetadata.
func SetMetadata(key Key, value any, kind ObjectType) Decorator {
	return globalRegistry.SetMetadata(key, value, kind)
}

// Snapshot returns a snapshot of the default registry.
func Snapshot() *Schema {
	return globalRegistry.Snapshot()
}
