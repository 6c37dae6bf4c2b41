package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludora/content-service/internal/testutil"
	"github.com/ludora/content-service/pkg/apperror"
)

func words(t *testing.T, entities []Entity) []string {
	t.Helper()
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		w, ok := e.(*Word)
		require.True(t, ok, "got %T", e)
		out = append(out, w.Word)
	}
	return out
}

func TestBunAccessor_CreateFillsDefaults(t *testing.T) {
	ctx := context.Background()
	acc := NewBunAccessor[Word](testutil.NewSQLiteDB(t))

	created, err := acc.Create(ctx, &Word{Word: "כלב", Root: "כלב"})
	require.NoError(t, err)

	meta := created.Meta()
	assert.NotEmpty(t, meta.ID)
	assert.False(t, meta.CreatedAt.IsZero())
	assert.Equal(t, ProvenanceManual, meta.Provenance)

	got, err := acc.Get(ctx, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, "כלב", got.(*Word).Word)
	assert.Equal(t, VariantWord, got.Variant())
}

func TestBunAccessor_GetMissing(t *testing.T) {
	acc := NewBunAccessor[Image](testutil.NewSQLiteDB(t))

	_, err := acc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestBunAccessor_ListSort(t *testing.T) {
	ctx := context.Background()
	acc := NewBunAccessor[Word](testutil.NewSQLiteDB(t))
	for _, w := range []string{"b", "c", "a"} {
		_, err := acc.Create(ctx, &Word{Word: w})
		require.NoError(t, err)
	}

	asc, err := acc.List(ctx, ParseSort("word"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, words(t, asc))

	desc, err := acc.List(ctx, ParseSort("-word"))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, words(t, desc))

	_, err = acc.List(ctx, ParseSort("password; DROP TABLE x"))
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))
}

func TestBunAccessor_FindAndSearch(t *testing.T) {
	ctx := context.Background()
	acc := NewBunAccessor[Word](testutil.NewSQLiteDB(t))
	seed := []*Word{
		{Word: "כתב", Root: "כתב", Context: "writing"},
		{Word: "מכתב", Root: "כתב", Context: "letter"},
		{Word: "שלום", Root: "שלם", Context: "greeting"},
	}
	for _, w := range seed {
		_, err := acc.Create(ctx, w)
		require.NoError(t, err)
	}

	found, err := acc.Find(ctx, Filter{"root": "כתב"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"כתב", "מכתב"}, words(t, found))

	hits, err := acc.Search(ctx, "LETT", []string{"word", "context"})
	require.NoError(t, err)
	assert.Equal(t, []string{"מכתב"}, words(t, hits))

	all, err := acc.Search(ctx, "  ", []string{"word"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = acc.Find(ctx, Filter{"nope": 1})
	assert.Error(t, err)
}

func TestBunAccessor_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	acc := NewBunAccessor[Attribute](testutil.NewSQLiteDB(t))

	created, err := acc.Create(ctx, &Attribute{AttributeType: "color", Value: "red", Base: Base{CreatedBy: "a@x"}})
	require.NoError(t, err)
	id := created.Meta().ID

	updated, err := acc.Update(ctx, &Attribute{Base: Base{ID: id, Approved: true}, AttributeType: "color", Value: "blue"})
	require.NoError(t, err)
	attr := updated.(*Attribute)
	assert.Equal(t, "blue", attr.Value)
	assert.Equal(t, "a@x", attr.CreatedBy, "created_by is never rewritten")

	_, err = acc.Update(ctx, &Attribute{Base: Base{ID: "missing"}})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	require.NoError(t, acc.Delete(ctx, id))
	assert.True(t, errors.Is(acc.Delete(ctx, id), apperror.ErrNotFound))
}

func TestBunAccessor_CreateRejectsWrongVariant(t *testing.T) {
	acc := NewBunAccessor[Word](testutil.NewSQLiteDB(t))

	_, err := acc.Create(context.Background(), &Image{Name: "x"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
