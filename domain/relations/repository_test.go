package relations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/internal/testutil"
	"github.com/ludora/content-service/pkg/apperror"
	"github.com/ludora/content-service/pkg/logger"
)

func edge(id string, source, target content.Ref, labels ...Label) *Edge {
	now := time.Now().UTC()
	return &Edge{
		ID:         id,
		SourceType: source.Type,
		SourceID:   source.ID,
		TargetType: target.Type,
		TargetID:   target.ID,
		Types:      NewLabelSet(labels...),
		Provenance: content.ProvenanceManual,
		Approved:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestRepository_FindTouchingAndPair(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutil.NewSQLiteDB(t), logger.Discard())

	require.NoError(t, repo.Create(ctx, edge("e1", wordA, wordB, LabelTranslation)))
	require.NoError(t, repo.Create(ctx, edge("e2", image1, wordA, LabelAntonym)))
	require.NoError(t, repo.Create(ctx, edge("e3", wordB, image1, LabelAntonym)))
	// A legacy self edge matches both reads and must come back once.
	require.NoError(t, repo.Create(ctx, edge("e4", wordA, wordA, LabelAntonym)))

	touching, err := repo.FindTouching(ctx, wordA)
	require.NoError(t, err)
	ids := make([]string, 0, len(touching))
	for _, e := range touching {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{"e1", "e2", "e4"}, ids)

	pair, err := repo.FindPair(ctx, wordA, image1)
	require.NoError(t, err)
	require.Len(t, pair, 1)
	assert.Equal(t, "e2", pair[0].ID)

	pair, err = repo.FindPair(ctx, image1, wordA)
	require.NoError(t, err)
	require.Len(t, pair, 1)

	none, err := repo.FindPair(ctx, wordA, attr1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutil.NewSQLiteDB(t), logger.Discard())

	e := edge("e1", wordA, wordB, LabelTranslation)
	require.NoError(t, repo.Create(ctx, e))

	e.Types = e.Types.Add(LabelAntonym)
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, LabelSet{LabelTranslation, LabelAntonym}, got.Types)

	require.NoError(t, repo.Delete(ctx, "e1"))
	_, err = repo.Get(ctx, "e1")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, "e1"), apperror.ErrNotFound))
	assert.True(t, errors.Is(repo.Update(ctx, e), apperror.ErrNotFound))
}

func TestEdge_Counterpart(t *testing.T) {
	e := edge("e", wordA, image1)
	assert.Equal(t, image1, e.Counterpart(wordA))
	assert.Equal(t, wordA, e.Counterpart(image1))
	assert.True(t, e.Touches(image1))
	assert.False(t, e.Touches(wordB))
	assert.False(t, e.TouchesGame())
	assert.True(t, edge("g", game1, wordA).TouchesGame())
}

func TestRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutil.NewPostgresDB(t), logger.Discard())

	require.NoError(t, repo.Create(ctx, edge("pg-1", wordA, wordB, LabelTranslation, LabelAntonym)))

	got, err := repo.FindPair(ctx, wordB, wordA)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Types.Equal(NewLabelSet(LabelAntonym, LabelTranslation)))

	got[0].Types = got[0].Types.Add(LabelListMember)
	require.NoError(t, repo.Update(ctx, got[0]))

	stored, err := repo.Get(ctx, "pg-1")
	require.NoError(t, err)
	assert.True(t, stored.Types.Contains(LabelListMember))
}
