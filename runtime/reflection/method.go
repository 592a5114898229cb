package reflection

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/flute-go/reflection/runtime/metadata"
)

// ErrInvoke is returned when a method cannot be called with the given
// receiver or arguments.
var ErrInvoke = errors.New("cannot invoke method")

// Method is a view of a method of *T.
type Method struct {
	Field
	method reflect.Method
}

func newMethod(o *Object, m reflect.Method) *Method {
	return &Method{
		Field:  Field{obj: o, name: metadata.Member(m.Name), typ: m.Type, isMethod: true},
		method: m,
	}
}

// NumParameters returns the number of parameters, not counting the receiver.
func (m *Method) NumParameters() int {
	return m.method.Type.NumIn() - 1
}

// Parameters returns a view of every parameter, not counting the receiver.
func (m *Method) Parameters() []*Parameter {
	params := make([]*Parameter, m.NumParameters())
	for i := range params {
		params[i] = &Parameter{method: m, index: i}
	}
	return params
}

// Parameter returns the parameter at index.
func (m *Method) Parameter(index int) (*Parameter, bool) {
	if index < 0 || index >= m.NumParameters() {
		return nil, false
	}
	return &Parameter{method: m, index: index}, true
}

// ReturnTypes returns the method's result types.
func (m *Method) ReturnTypes() []reflect.Type {
	out := make([]reflect.Type, m.method.Type.NumOut())
	for i := range out {
		out[i] = m.method.Type.Out(i)
	}
	return out
}

// Invoke calls the method on receiver, which must be a *T.
func (m *Method) Invoke(receiver any, args ...any) ([]any, error) {
	recv := reflect.ValueOf(receiver)
	if !recv.IsValid() || recv.Type() != m.method.Type.In(0) {
		return nil, fmt.Errorf("%w %s: receiver is %T, want %s", ErrInvoke, m.name, receiver, m.method.Type.In(0))
	}
	if n := m.NumParameters(); len(args) != n && !(m.method.Type.IsVariadic() && len(args) >= n-1) {
		return nil, fmt.Errorf("%w %s: got %d arguments, want %d", ErrInvoke, m.name, len(args), n)
	}

	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, recv)
	for i, arg := range args {
		want := m.argType(i)
		if arg == nil {
			in = append(in, reflect.Zero(want))
			continue
		}
		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(want) {
			return nil, fmt.Errorf("%w %s: argument %d is %T, want %s", ErrInvoke, m.name, i, arg, want)
		}
		in = append(in, v)
	}

	results := m.method.Func.Call(in)
	out := make([]any, len(results))
	for i, r := range results {
		out[i] = r.Interface()
	}
	return out, nil
}

// argType returns the type a caller passes for argument i, expanding a
// trailing variadic parameter.
func (m *Method) argType(i int) reflect.Type {
	t := m.method.Type
	last := t.NumIn() - 1
	if t.IsVariadic() && i+1 >= last {
		return t.In(last).Elem()
	}
	return t.In(i + 1)
}
