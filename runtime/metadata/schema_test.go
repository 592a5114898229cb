package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zebra struct{ Stripes int }

func TestSnapshot_Empty(t *testing.T) {
	s := NewRegistry().Snapshot()

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, SchemaVersion, s.Version)
	assert.False(t, s.Generated.IsZero())
	assert.NotNil(t, s.Types)
	assert.Empty(t, s.Types)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"types":[]`)
}

func TestSnapshot_Contents(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.PutClassMetadata(testKey, "z", Auto)(TypeOf[zebra]()))
	require.NoError(t, r.AppendClassMetadata(testKey, "w1", Auto)(widgetType()))
	require.NoError(t, r.AppendClassMetadata(testKey, "w2", Auto)(widgetType()))
	require.NoError(t, r.FieldMetadata(testKey, 42, Auto)(widgetType(), "Width"))
	require.NoError(t, r.MethodParameterMetadata(testKey, "title", Auto)(widgetType(), "Render", 0))
	require.NoError(t, r.MethodParameterMetadata(testKey, "ctor", Auto)(widgetType(), ConstructorMember, 1))

	s := r.Snapshot()
	require.Len(t, s.Types, 2)

	// Sorted by package-qualified name.
	assert.Less(t, s.Types[0].Name, s.Types[1].Name)
	w, err := s.Lookup("widget")
	require.NoError(t, err)
	assert.Equal(t, "metadata.widget", w.Short)
	assert.Equal(t, "struct", w.Kind)

	require.Len(t, w.Class, 1)
	assert.Equal(t, "sequence", w.Class[0].Shape)
	require.Len(t, w.Class[0].Values, 2)
	assert.Equal(t, "w1", w.Class[0].Values[0].Text)
	assert.Equal(t, "string", w.Class[0].Values[0].Type)

	require.Len(t, w.Members, 3)
	assert.True(t, w.Members[0].Constructor)
	assert.Equal(t, "Render", w.Members[1].Name)
	assert.Equal(t, "Width", w.Members[2].Name)

	// The parameter container is rendered as parameters, not as an entry.
	assert.Empty(t, w.Members[1].Entries)
	require.Len(t, w.Members[1].Parameters, 1)
	assert.Equal(t, 0, w.Members[1].Parameters[0].Index)
	assert.Equal(t, "title", w.Members[1].Parameters[0].Entries[0].Values[0].Text)

	require.Len(t, w.Members[0].Parameters, 1)
	assert.Equal(t, 1, w.Members[0].Parameters[0].Index)

	assert.Equal(t, "scalar", w.Members[2].Entries[0].Shape)
	assert.Equal(t, "42", w.Members[2].Entries[0].Values[0].Text)
	assert.Equal(t, "int", w.Members[2].Entries[0].Values[0].Type)

	z, err := s.Lookup("metadata.zebra")
	require.NoError(t, err)
	assert.Equal(t, "tagset", z.Class[0].Shape)
}

func TestSchema_Lookup(t *testing.T) {
	s := &Schema{Types: []TypeSchema{
		{Name: "example.com/a.User", Short: "a.User"},
		{Name: "example.com/b.User", Short: "b.User"},
		{Name: "example.com/b.Order", Short: "b.Order"},
	}}

	got, err := s.Lookup("example.com/a.User")
	require.NoError(t, err)
	assert.Equal(t, "a.User", got.Short)

	got, err = s.Lookup("b.User")
	require.NoError(t, err)
	assert.Equal(t, "example.com/b.User", got.Name)

	got, err = s.Lookup("Order")
	require.NoError(t, err)
	assert.Equal(t, "b.Order", got.Short)

	_, err = s.Lookup("User")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousType)
	assert.Contains(t, err.Error(), "example.com/a.User, example.com/b.User")

	_, err = s.Lookup("Missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeNotFound)

	var empty *Schema
	_, err = empty.Lookup("User")
	assert.ErrorIs(t, err, ErrTypeNotFound)

	assert.Equal(t, []string{"example.com/a.User", "example.com/b.User", "example.com/b.Order"}, s.Names())
}
