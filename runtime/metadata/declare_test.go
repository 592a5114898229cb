package metadata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclare_AppliesInnermostFirst(t *testing.T) {
	r := NewRegistry()

	err := Declare[widget]().
		Field("Name",
			r.PrependFieldMetadata(testKey, "outer", Auto),
			r.PrependFieldMetadata(testKey, "inner", Auto),
		).
		Commit()
	require.NoError(t, err)

	v, err := r.GetFieldMetadata(widgetType(), "Name", testKey, Auto)
	require.NoError(t, err)
	assert.Equal(t, Sequence{"outer", "inner"}, v)
}

func TestDeclare_ClassAppliedLast(t *testing.T) {
	var order []string

	trace := func(name string) FieldDecorator {
		return func(any, Member) error {
			order = append(order, name)
			return nil
		}
	}

	err := DeclareType(widgetType()).
		Class(func(any) error {
			order = append(order, "class")
			return nil
		}).
		Field("Name", trace("name")).
		Method("Render", trace("render")).
		Field("Name", trace("name again")).
		Commit()
	require.NoError(t, err)

	assert.Equal(t, []string{"name again", "name", "render", "class"}, order)
}

func TestDeclare_ParametersAndSites(t *testing.T) {
	r := NewRegistry()

	err := Declare[widget]().
		Parameter("Render", 1, r.AppendMethodParameterMetadata(testKey, "width", Auto)).
		Parameter(ConstructorMember, 0, r.MethodParameterMetadata(testKey, "ctor", Auto)).
		At(FieldSite{Member: "Width"}, r.SetMetadata(testKey, "at-field", Auto)).
		At(ClassSite{}, r.SetMetadata(testKey, "at-class", Auto)).
		Commit()
	require.NoError(t, err)

	width, err := r.GetMethodParameterMetadata(widgetType(), "Render", 1, testKey, Auto)
	require.NoError(t, err)
	assert.Equal(t, Sequence{"width"}, width)

	ctor, err := r.GetMethodParameterMetadata(widgetType(), ConstructorMember, 0, testKey, Auto)
	require.NoError(t, err)
	assert.Equal(t, Scalar{V: "ctor"}, ctor)

	field, err := r.GetFieldMetadata(widgetType(), "Width", testKey, Auto)
	require.NoError(t, err)
	assert.Equal(t, Scalar{V: "at-field"}, field)

	class, err := r.GetClassMetadata(widgetType(), testKey, Auto)
	require.NoError(t, err)
	assert.Equal(t, Scalar{V: "at-class"}, class)
}

func TestDeclare_CommitTwice(t *testing.T) {
	d := Declare[widget]()
	require.NoError(t, d.Commit())
	assert.ErrorIs(t, d.Commit(), ErrCommitted)
}

func TestDeclare_InvalidTarget(t *testing.T) {
	d := DeclareType(nil)
	assert.Nil(t, d.Type())
	assert.ErrorIs(t, d.Commit(), ErrInvalidTarget)
}

func TestDeclare_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	called := false

	err := Declare[widget]().
		Field("Name", func(any, Member) error { return boom }).
		Class(func(any) error {
			called = true
			return nil
		}).
		Commit()

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "field Name")
	assert.False(t, called)
}

func TestDeclare_NilDecoratorsIgnored(t *testing.T) {
	err := Declare[widget]().
		Class(nil).
		Field("Name", nil).
		Parameter("Render", 0, nil).
		At(nil, nil).
		Commit()
	assert.NoError(t, err)
}
