package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flute-go/reflection/runtime/metadata"
)

type account struct {
	Owner   string
	Balance int
}

func (a *account) Transfer(to string, amount int) error { return nil }

type untagged struct{}

func declareAccount(t *testing.T, tg *Tagger) {
	t.Helper()
	require.NoError(t, metadata.Declare[account]().
		Class(tg.TagClass("classTag1"), tg.TagClass("classTag2"), tg.TagClass("classTag1")).
		Field("Owner", tg.TagProperty("propTag1"), tg.TagProperty("propTag1"), tg.TagProperty("propTag2")).
		Method("Transfer", tg.TagMethod("me1"), tg.TagMethod("me2")).
		Parameter(metadata.ConstructorMember, 0, tg.TagMethodParameter("lorem"), tg.TagMethodParameter("ipsum")).
		Parameter("Transfer", 1,
			tg.TagMethodParameter("test1"),
			tg.TagMethodParameter("test2"),
			tg.TagMethodParameter("test3"),
		).
		Commit())
}

func TestTags_BothViews(t *testing.T) {
	tg := New(metadata.NewRegistry())
	declareAccount(t, tg)

	views := map[string]struct {
		target any
		kind   metadata.ObjectType
	}{
		"constructor": {metadata.TypeOf[account](), metadata.Constructor},
		"instance":    {&account{}, metadata.Instance},
	}

	for name, view := range views {
		t.Run(name, func(t *testing.T) {
			class, err := tg.GetClassTags(view.target, view.kind)
			require.NoError(t, err)
			assert.True(t, metadata.NewTagset("classTag1", "classTag2").Equal(class))

			prop, err := tg.GetPropertyTags(view.target, "Owner", view.kind)
			require.NoError(t, err)
			assert.True(t, metadata.NewTagset("propTag1", "propTag2").Equal(prop))

			method, err := tg.GetMethodTags(view.target, "Transfer", view.kind)
			require.NoError(t, err)
			assert.True(t, metadata.NewTagset("me1", "me2").Equal(method))

			field, err := tg.GetFieldTags(view.target, "Transfer", view.kind)
			require.NoError(t, err)
			assert.True(t, method.Equal(field))

			ctor, err := tg.GetMethodParameterTags(view.target, metadata.ConstructorMember, 0, view.kind)
			require.NoError(t, err)
			assert.True(t, metadata.NewTagset("lorem", "ipsum").Equal(ctor))

			param, err := tg.GetMethodParameterTags(view.target, "Transfer", 1, view.kind)
			require.NoError(t, err)
			assert.Equal(t, 3, param.Len())
			assert.True(t, HasTag(param, "test2"))
		})
	}
}

func TestTags_Absent(t *testing.T) {
	tg := New(metadata.NewRegistry())
	declareAccount(t, tg)

	class, err := tg.GetClassTags(untagged{}, metadata.Auto)
	require.NoError(t, err)
	assert.Nil(t, class)

	prop, err := tg.GetPropertyTags(&account{}, "Balance", metadata.Auto)
	require.NoError(t, err)
	assert.Nil(t, prop)

	param, err := tg.GetMethodParameterTags(&account{}, "Transfer", 0, metadata.Auto)
	require.NoError(t, err)
	assert.Nil(t, param)

	ctor, err := tg.GetMethodParameterTags(&account{}, metadata.ConstructorMember, 1, metadata.Auto)
	require.NoError(t, err)
	assert.Nil(t, ctor)

	assert.False(t, HasTag(nil, "anything"))
}

func TestTags_NilIsNoop(t *testing.T) {
	tg := New(metadata.NewRegistry())

	require.NoError(t, metadata.Declare[untagged]().
		Class(tg.TagClass(nil), tg.TagClass("x")).
		Field("F", tg.TagField(nil)).
		Parameter("M", 0, tg.TagMethodParameter(nil)).
		At(metadata.ClassSite{}, tg.Tag(nil)).
		Commit())

	class, err := tg.GetClassTags(untagged{}, metadata.Auto)
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, class.Values())

	field, err := tg.GetFieldTags(untagged{}, "F", metadata.Auto)
	require.NoError(t, err)
	assert.Nil(t, field)
}

func TestTag_Sites(t *testing.T) {
	tg := New(metadata.NewRegistry())

	require.NoError(t, metadata.Declare[account]().
		At(metadata.SiteFor(metadata.ConstructorMember, nil), tg.Tag("c")).
		At(metadata.SiteFor("Owner", nil), tg.Tag("f")).
		At(metadata.SiteFor("Transfer", 0), tg.Tag("p")).
		Commit())

	class, err := tg.GetClassTags(account{}, metadata.Auto)
	require.NoError(t, err)
	assert.True(t, class.Has("c"))

	field, err := tg.GetFieldTags(account{}, "Owner", metadata.Auto)
	require.NoError(t, err)
	assert.True(t, field.Has("f"))

	param, err := tg.GetMethodParameterTags(account{}, "Transfer", 0, metadata.Auto)
	require.NoError(t, err)
	assert.True(t, param.Has("p"))
}

func TestTags_LegacySequenceView(t *testing.T) {
	reg := metadata.NewRegistry()
	tg := New(reg)
	handle := metadata.TypeOf[account]()

	require.NoError(t, reg.AppendClassMetadata(KeyClass, "a", metadata.Auto)(handle))
	require.NoError(t, tg.TagClass("a")(handle))
	require.NoError(t, tg.TagClass("b")(handle))

	// The stored value keeps its sequence shape.
	raw, err := reg.GetClassMetadata(handle, KeyClass, metadata.Auto)
	require.NoError(t, err)
	assert.Equal(t, metadata.Sequence{"a", "b"}, raw)

	tags, err := tg.GetClassTags(handle, metadata.Auto)
	require.NoError(t, err)
	assert.True(t, metadata.NewTagset("a", "b").Equal(tags))
}

func TestTags_ShapeConflict(t *testing.T) {
	reg := metadata.NewRegistry()
	tg := New(reg)
	handle := metadata.TypeOf[account]()

	require.NoError(t, reg.ClassMetadata(KeyClass, "scalar", metadata.Auto)(handle))
	assert.ErrorIs(t, tg.TagClass("x")(handle), metadata.ErrShape)
}

func TestDefaultTagger(t *testing.T) {
	defer metadata.Reset()

	require.NoError(t, metadata.Declare[account]().
		Class(TagClass("g")).
		At(metadata.ClassSite{}, Tag("any")).
		Field("Owner", TagField("f"), TagProperty("p")).
		Method("Transfer", TagMethod("m")).
		Parameter("Transfer", 0, TagMethodParameter("arg")).
		Commit())

	class, err := GetClassTags(account{}, metadata.Auto)
	require.NoError(t, err)
	assert.Equal(t, 2, class.Len())

	field, err := GetFieldTags(account{}, "Owner", metadata.Auto)
	require.NoError(t, err)
	prop, err := GetPropertyTags(account{}, "Owner", metadata.Auto)
	require.NoError(t, err)
	assert.True(t, field.Equal(prop))

	method, err := GetMethodTags(account{}, "Transfer", metadata.Auto)
	require.NoError(t, err)
	assert.True(t, method.Has("m"))

	arg, err := GetMethodParameterTags(account{}, "Transfer", 0, metadata.Auto)
	require.NoError(t, err)
	assert.True(t, arg.Has("arg"))
}
