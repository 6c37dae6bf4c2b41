package suggestions

import (
	"context"
	"log/slog"
	"time"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/pkg/logger"
)

// Snapshot is a read-only view of the catalog records the engine matches
// against. Suggestions are reproducible for a fixed snapshot.
type Snapshot struct {
	Words    []*content.Word
	WordsEN  []*content.WordEN
	LoadedAt time.Time
}

// LoadSnapshot reads every Word and WordEN. A failed read leaves that list
// empty.
func LoadSnapshot(ctx context.Context, catalog *content.Catalog, log *slog.Logger) *Snapshot {
	log = log.With(logger.Scope("suggestions.snapshot"))
	snap := &Snapshot{
		Words:    []*content.Word{},
		WordsEN:  []*content.WordEN{},
		LoadedAt: time.Now().UTC(),
	}

	for _, e := range listAll(ctx, catalog, content.VariantWord, log) {
		if w, ok := e.(*content.Word); ok {
			snap.Words = append(snap.Words, w)
		}
	}
	for _, e := range listAll(ctx, catalog, content.VariantWordEN, log) {
		if w, ok := e.(*content.WordEN); ok {
			snap.WordsEN = append(snap.WordsEN, w)
		}
	}
	return snap
}

func listAll(ctx context.Context, catalog *content.Catalog, v content.Variant, log *slog.Logger) []content.Entity {
	entry, ok := catalog.Lookup(v)
	if !ok {
		return nil
	}
	items, err := entry.Accessor.List(ctx, content.Sort{})
	if err != nil {
		log.Warn("failed to load snapshot records", slog.String("type", string(v)), logger.Error(err))
		return nil
	}
	return items
}
