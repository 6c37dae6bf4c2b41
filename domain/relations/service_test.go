package relations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/internal/testutil"
	"github.com/ludora/content-service/pkg/apperror"
	"github.com/ludora/content-service/pkg/logger"
)

const actor = "editor@example.com"

var (
	wordA  = content.NewRef(content.VariantWord, "w-a")
	wordB  = content.NewRef(content.VariantWord, "w-b")
	image1 = content.NewRef(content.VariantImage, "img-1")
	attr1  = content.NewRef(content.VariantAttribute, "attr-1")
	attr2  = content.NewRef(content.VariantAttribute, "attr-2")
	game1  = content.NewRef(content.VariantGame, "game-1")
)

// failingStore wraps an EdgeStore and fails selected calls.
type failingStore struct {
	EdgeStore
	findErr     error
	createErrOn map[string]error // by target id
	creates     int
	updates     int
}

func (f *failingStore) FindTouching(ctx context.Context, ref content.Ref) ([]*Edge, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.EdgeStore.FindTouching(ctx, ref)
}

func (f *failingStore) Create(ctx context.Context, edge *Edge) error {
	if err, ok := f.createErrOn[edge.TargetID]; ok {
		return err
	}
	f.creates++
	return f.EdgeStore.Create(ctx, edge)
}

func (f *failingStore) Update(ctx context.Context, edge *Edge) error {
	f.updates++
	return f.EdgeStore.Update(ctx, edge)
}

func newTestService(t *testing.T) (*Service, *failingStore) {
	t.Helper()
	store := &failingStore{EdgeStore: NewRepository(testutil.NewSQLiteDB(t), logger.Discard())}
	return NewService(store, nil, logger.Discard()), store
}

func TestUpsertEdge_SingleEdgePerPair(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	res, err := svc.UpsertEdge(ctx, actor, wordA, wordB, NewLabelSet(LabelTranslation))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.Equal(t, wordA, res.Edge.Source())
	assert.Equal(t, wordB, res.Edge.Target())
	assert.True(t, res.Edge.Approved)
	assert.Equal(t, content.ProvenanceManual, res.Edge.Provenance)
	assert.Equal(t, actor, res.Edge.CreatedBy)

	// Reverse direction extends the same edge.
	res, err = svc.UpsertEdge(ctx, actor, wordB, wordA, NewLabelSet(LabelAntonym))
	require.NoError(t, err)
	assert.Equal(t, OutcomeMerged, res.Outcome)

	edges := svc.ListEdges(ctx, wordA)
	require.Len(t, edges, 1)
	assert.True(t, NewLabelSet(LabelTranslation, LabelAntonym).Equal(edges[0].Types))
	assert.Equal(t, wordA, edges[0].Source(), "source stays the creating side")

	// Repeating a subset is a reported no-op.
	res, err = svc.UpsertEdge(ctx, actor, wordB, wordA, NewLabelSet(LabelTranslation))
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, res.Outcome)

	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 1, store.updates)
	assert.Len(t, svc.ListEdges(ctx, wordB), 1)
}

func TestUpsertEdge_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	tests := []struct {
		name   string
		ref    content.Ref
		target content.Ref
		labels LabelSet
		want   *apperror.Error
	}{
		{"no labels", wordA, wordB, LabelSet{}, apperror.ErrValidation},
		{"self link", wordA, wordA, NewLabelSet(LabelAntonym), apperror.ErrValidation},
		{"game endpoint", wordA, game1, NewLabelSet(LabelTranslation), apperror.ErrValidation},
		{"attribute to attribute", attr1, attr2, NewLabelSet(LabelAttributeOf), apperror.ErrIncompatibleTypes},
		{"label outside matrix", wordA, attr1, NewLabelSet(LabelTranslation), apperror.ErrIncompatibleTypes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertEdge(ctx, actor, tt.ref, tt.target, tt.labels)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
	assert.Zero(t, store.creates)
}

func TestListEdges_HidesGameEdges(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.UpsertEdge(ctx, actor, image1, wordA, NewLabelSet(LabelTranslation))
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, &Edge{
		ID: "g", SourceType: game1.Type, SourceID: game1.ID,
		TargetType: image1.Type, TargetID: image1.ID, Types: LabelSet{},
	}))

	edges := svc.ListEdges(ctx, image1)
	require.Len(t, edges, 1)
	assert.False(t, edges[0].TouchesGame())

	all, err := store.FindTouching(ctx, image1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListEdges_ReadFailureIsEmpty(t *testing.T) {
	svc, store := newTestService(t)
	store.findErr = errors.New("connection reset")

	edges := svc.ListEdges(context.Background(), wordA)
	assert.NotNil(t, edges)
	assert.Empty(t, edges)
}

func TestBulkUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("tallies per item", func(t *testing.T) {
		svc, store := newTestService(t)
		store.createErrOn = map[string]error{"w-c": errors.New("disk full")}

		_, err := svc.UpsertEdge(ctx, actor, wordA, wordB, NewLabelSet(LabelTranslation))
		require.NoError(t, err)

		targets := []content.Ref{wordB, content.NewRef(content.VariantWord, "w-c"), image1}
		res, err := svc.BulkUpsert(ctx, actor, wordA, targets, NewLabelSet(LabelTranslation))
		require.NoError(t, err)

		assert.Equal(t, 2, res.Succeeded)
		assert.Equal(t, 1, res.Failed)
		assert.False(t, res.OK())
		require.Len(t, res.Results, 3)
		assert.Equal(t, OutcomeUnchanged, res.Results[0].Outcome)
		assert.False(t, res.Results[1].Success)
		require.NotNil(t, res.Results[1].Error)
		assert.Equal(t, OutcomeCreated, res.Results[2].Outcome)
	})

	t.Run("all no-op is success", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpsertEdge(ctx, actor, wordA, wordB, NewLabelSet(LabelAntonym))
		require.NoError(t, err)

		res, err := svc.BulkUpsert(ctx, actor, wordA, []content.Ref{wordB}, NewLabelSet(LabelAntonym))
		require.NoError(t, err)
		assert.True(t, res.OK())
		assert.Equal(t, 1, res.Succeeded)
	})

	t.Run("empty intersection writes nothing", func(t *testing.T) {
		svc, store := newTestService(t)

		_, err := svc.BulkUpsert(ctx, actor, wordA, []content.Ref{image1, attr1}, NewLabelSet(LabelTranslation))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrIncompatibleTypes))
		assert.Contains(t, err.Error(), "Attribute")
		assert.Zero(t, store.creates)
	})

	t.Run("label outside intersection writes nothing", func(t *testing.T) {
		svc, store := newTestService(t)

		_, err := svc.BulkUpsert(ctx, actor, content.NewRef(content.VariantContentList, "l1"),
			[]content.Ref{attr1, wordA}, NewLabelSet(LabelAttributeOf))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrIncompatibleTypes))
		assert.Zero(t, store.creates)
	})

	t.Run("no targets", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.BulkUpsert(ctx, actor, wordA, nil, NewLabelSet(LabelAntonym))
		assert.True(t, errors.Is(err, apperror.ErrValidation))
	})
}

func TestDeleteEdge(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	res, err := svc.UpsertEdge(ctx, actor, wordA, image1, NewLabelSet(LabelTranslation))
	require.NoError(t, err)

	got, err := svc.GetEdge(ctx, res.Edge.ID)
	require.NoError(t, err)
	assert.Equal(t, LabelSet{LabelTranslation}, got.Types)

	require.NoError(t, svc.DeleteEdge(ctx, res.Edge.ID))
	assert.Empty(t, svc.ListEdges(ctx, wordA))
	assert.True(t, errors.Is(svc.DeleteEdge(ctx, res.Edge.ID), apperror.ErrNotFound))
}
