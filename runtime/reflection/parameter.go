package reflection

import (
	"reflect"

	"github.com/flute-go/reflection/runtime/metadata"
)

// Parameter is a view of one method parameter. Index 0 is the first
// parameter after the receiver.
type Parameter struct {
	method *Method
	index  int
}

// Method returns the declaring method.
func (p *Parameter) Method() *Method { return p.method }

// Index returns the zero-based parameter position.
func (p *Parameter) Index() int { return p.index }

// Type returns the parameter type.
func (p *Parameter) Type() reflect.Type {
	return p.method.method.Type.In(p.index + 1)
}

// Annotations returns the parameter's annotations in listing order, or nil.
func (p *Parameter) Annotations() ([]any, error) {
	obj := p.method.obj
	return obj.annotations.GetMethodParameterAnnotations(obj.typ, p.method.name, p.index, metadata.Constructor)
}

// Tags returns the parameter's tags, or nil.
func (p *Parameter) Tags() (*metadata.Tagset, error) {
	obj := p.method.obj
	return obj.tags.GetMethodParameterTags(obj.typ, p.method.name, p.index, metadata.Constructor)
}
