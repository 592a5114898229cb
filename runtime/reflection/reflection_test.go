package reflection

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flute-go/reflection/runtime/annotation"
	"github.com/flute-go/reflection/runtime/metadata"
	"github.com/flute-go/reflection/runtime/tag"
)

type required struct{}

type maxLen struct{ N int }

type order struct {
	ID    string
	Items []string
	total int
}

func (o *order) Add(item string, qty int) error {
	if qty <= 0 {
		return errors.New("qty must be positive")
	}
	for i := 0; i < qty; i++ {
		o.Items = append(o.Items, item)
	}
	return nil
}

func (o order) Count() int { return len(o.Items) }

func (o *order) Label(prefix string, parts ...string) string {
	out := prefix
	for _, p := range parts {
		out += "-" + p
	}
	return out
}

func declareOrder(t *testing.T) *metadata.Registry {
	t.Helper()
	reg := metadata.NewRegistry()
	a := annotation.New(reg)
	tg := tag.New(reg)

	require.NoError(t, metadata.Declare[order]().
		Class(a.AnnotateClass("entity"), tg.TagClass("sales")).
		Field("ID", a.AnnotateProperty(required{}), a.AnnotateProperty(maxLen{36}), tg.TagProperty("key")).
		Method("Add", a.AnnotateMethod("command")).
		Parameter("Add", 1, a.AnnotateMethodParameter(maxLen{100}), tg.TagMethodParameter("positive")).
		Parameter(metadata.ConstructorMember, 0, a.AnnotateMethodParameter("id"), tg.TagMethodParameter("ctor")).
		Commit())
	return reg
}

func TestOf(t *testing.T) {
	reg := declareOrder(t)

	for _, target := range []any{&order{}, order{}, metadata.TypeOf[order]()} {
		obj, err := Of(target, metadata.Auto, InRegistry(reg))
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeOf(order{}), obj.Type())
		assert.Equal(t, "reflection.order", obj.Name())
	}

	_, err := Of(nil, metadata.Auto)
	assert.ErrorIs(t, err, metadata.ErrInvalidTarget)

	_, err = Of(order{}, metadata.Constructor)
	assert.ErrorIs(t, err, metadata.ErrInvalidTarget)
}

func TestObject_ClassView(t *testing.T) {
	reg := declareOrder(t)
	obj := For[order](InRegistry(reg))

	anns, err := obj.Annotations()
	require.NoError(t, err)
	assert.Equal(t, []any{"entity"}, anns)

	tags, err := obj.Tags()
	require.NoError(t, err)
	assert.True(t, tags.Has("sales"))

	ctor, err := obj.ConstructorParameterAnnotations(0)
	require.NoError(t, err)
	assert.Equal(t, []any{"id"}, ctor)

	ctorTags, err := obj.ConstructorParameterTags(0)
	require.NoError(t, err)
	assert.True(t, ctorTags.Has("ctor"))

	missing, err := obj.ConstructorParameterAnnotations(1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	members, err := obj.AnnotatedMembers()
	require.NoError(t, err)
	assert.Equal(t, []metadata.Member{metadata.ConstructorMember, "Add", "ID"}, members)
}

func TestObject_Metadata(t *testing.T) {
	key := metadata.NewKey("test.version")
	obj := For[order](InRegistry(metadata.NewRegistry()))

	v, err := obj.Metadata(key)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, obj.SetMetadata(key, 3))
	v, err = obj.Metadata(key)
	require.NoError(t, err)
	assert.Equal(t, metadata.Scalar{V: 3}, v)

	f, ok := obj.Field("ID")
	require.True(t, ok)
	require.NoError(t, f.SetMetadata(key, "v"))
	fv, err := f.Metadata(key)
	require.NoError(t, err)
	assert.Equal(t, metadata.Scalar{V: "v"}, fv)
}

func TestObject_Fields(t *testing.T) {
	reg := declareOrder(t)
	obj := For[order](InRegistry(reg))

	fields := obj.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, metadata.Member("ID"), fields[0].Name())
	assert.Equal(t, metadata.Member("total"), fields[2].Name())
	assert.True(t, fields[0].IsProperty())
	assert.Equal(t, reflect.TypeOf(""), fields[0].Type())
	assert.Same(t, obj, fields[0].Object())

	anns, err := fields[0].Annotations()
	require.NoError(t, err)
	latest, ok := annotation.LatestAnnotation[maxLen](anns)
	require.True(t, ok)
	assert.Equal(t, 36, latest.N)
	assert.Equal(t, []any{required{}, maxLen{36}}, anns)

	tags, err := fields[0].Tags()
	require.NoError(t, err)
	assert.True(t, tags.Has("key"))

	none, err := fields[1].Annotations()
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.Nil(t, For[int]().Fields())
}

func TestObject_FieldResolvesMethods(t *testing.T) {
	reg := declareOrder(t)
	obj := For[order](InRegistry(reg))

	f, ok := obj.Field("Add")
	require.True(t, ok)
	assert.True(t, f.IsMethod())
	assert.False(t, f.IsProperty())

	anns, err := f.Annotations()
	require.NoError(t, err)
	assert.Equal(t, []any{"command"}, anns)

	_, ok = obj.Field("Missing")
	assert.False(t, ok)
}

func TestObject_Methods(t *testing.T) {
	obj := For[order]()

	methods := obj.Methods()
	names := make([]metadata.Member, len(methods))
	for i, m := range methods {
		names[i] = m.Name()
	}
	assert.Equal(t, []metadata.Member{"Add", "Count", "Label"}, names)

	add, ok := obj.Method("Add")
	require.True(t, ok)
	assert.Equal(t, 2, add.NumParameters())
	assert.Equal(t, []reflect.Type{reflect.TypeOf((*error)(nil)).Elem()}, add.ReturnTypes())

	params := add.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, reflect.TypeOf(""), params[0].Type())
	assert.Equal(t, reflect.TypeOf(0), params[1].Type())
	assert.Equal(t, 1, params[1].Index())
	assert.Same(t, add, params[1].Method())

	_, ok = add.Parameter(2)
	assert.False(t, ok)
	_, ok = obj.Method("total")
	assert.False(t, ok)
}

func TestParameter_Annotations(t *testing.T) {
	reg := declareOrder(t)
	add, ok := For[order](InRegistry(reg)).Method("Add")
	require.True(t, ok)

	qty, ok := add.Parameter(1)
	require.True(t, ok)

	anns, err := qty.Annotations()
	require.NoError(t, err)
	assert.Equal(t, []any{maxLen{100}}, anns)

	tags, err := qty.Tags()
	require.NoError(t, err)
	assert.True(t, tags.Has("positive"))

	item, _ := add.Parameter(0)
	none, err := item.Annotations()
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMethod_Invoke(t *testing.T) {
	obj := For[order]()
	add, _ := obj.Method("Add")
	o := &order{}

	out, err := add.Invoke(o, "apple", 2)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0])
	assert.Equal(t, []string{"apple", "apple"}, o.Items)

	out, err = add.Invoke(o, "pear", 0)
	require.NoError(t, err)
	assert.EqualError(t, out[0].(error), "qty must be positive")

	_, err = add.Invoke(order{}, "x", 1)
	assert.ErrorIs(t, err, ErrInvoke)

	_, err = add.Invoke(o, "x")
	assert.ErrorIs(t, err, ErrInvoke)

	_, err = add.Invoke(o, 1, 1)
	assert.ErrorIs(t, err, ErrInvoke)

	label, _ := obj.Method("Label")
	out, err = label.Invoke(o, "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, "a-b-c", out[0])

	out, err = label.Invoke(o, "solo")
	require.NoError(t, err)
	assert.Equal(t, "solo", out[0])
}
