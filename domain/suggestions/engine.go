package suggestions

import (
	"sort"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/domain/relations"
	"github.com/ludora/content-service/pkg/textnorm"
)

// DefaultLimit caps a suggestion list when the caller gives no limit.
const DefaultLimit = 10

// Reason says which heuristic produced a suggestion.
type Reason string

const (
	ReasonWordOverlap      Reason = "word_overlap"
	ReasonVocalizedOverlap Reason = "vocalized_overlap"
	ReasonSharedRoot       Reason = "shared_root"
)

// Suggestion is one proposed relationship target.
type Suggestion struct {
	Target  content.Ref     `json:"target"`
	Display string          `json:"display"`
	Label   relations.Label `json:"relationship_type"`
	Score   float64         `json:"score"`
	Reason  Reason          `json:"reason"`
}

// Engine scores candidates from a snapshot. It has no state of its own.
type Engine struct {
	limit int
}

// NewEngine creates an engine with the given default cap.
func NewEngine(limit int) *Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{limit: limit}
}

// Suggest ranks candidates for source and keeps the best limit of them.
// A non-positive limit uses the engine default.
func (e *Engine) Suggest(snap *Snapshot, source content.Entity, limit int) []Suggestion {
	if limit <= 0 {
		limit = e.limit
	}
	ranked := e.Rank(snap, source)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Rank returns every candidate for source, best first. Ties break on
// display text and then id, so output is stable for a fixed snapshot.
func (e *Engine) Rank(snap *Snapshot, source content.Entity) []Suggestion {
	out := []Suggestion{}
	if snap == nil || source == nil {
		return out
	}

	switch src := source.(type) {
	case *content.Word:
		out = append(out, wordToEnglish(snap, src)...)
		out = append(out, sharedRoot(snap, src)...)
	case *content.WordEN:
		out = append(out, englishToWord(snap, src)...)
	}

	out = keepBest(out)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Display != b.Display {
			return a.Display < b.Display
		}
		return a.Target.ID < b.Target.ID
	})
	return out
}

func wordToEnglish(snap *Snapshot, w *content.Word) []Suggestion {
	form := textnorm.Fold(w.Word)
	if form == "" {
		return nil
	}

	var out []Suggestion
	for _, en := range snap.WordsEN {
		score := textnorm.Similarity(form, textnorm.Fold(en.Word))
		if score == 0 {
			continue
		}
		out = append(out, Suggestion{
			Target:  content.RefOf(en),
			Display: en.Word,
			Label:   relations.LabelTranslation,
			Score:   score,
			Reason:  ReasonWordOverlap,
		})
	}
	return out
}

func sharedRoot(snap *Snapshot, w *content.Word) []Suggestion {
	root := textnorm.Fold(w.Root)
	if root == "" {
		return nil
	}

	var out []Suggestion
	for _, other := range snap.Words {
		if other.ID == w.ID || textnorm.Fold(other.Root) != root {
			continue
		}
		out = append(out, Suggestion{
			Target:  content.RefOf(other),
			Display: other.Word,
			Label:   relations.LabelAntonym,
			Score:   1,
			Reason:  ReasonSharedRoot,
		})
	}
	return out
}

func englishToWord(snap *Snapshot, en *content.WordEN) []Suggestion {
	form := textnorm.Fold(en.Word)
	if form == "" {
		return nil
	}

	var out []Suggestion
	for _, w := range snap.Words {
		score, reason := textnorm.Similarity(form, textnorm.Fold(w.Word)), ReasonWordOverlap
		if vs := textnorm.Similarity(form, textnorm.Fold(w.Vocalized)); vs > score {
			score, reason = vs, ReasonVocalizedOverlap
		}
		if score == 0 {
			continue
		}
		out = append(out, Suggestion{
			Target:  content.RefOf(w),
			Display: w.Word,
			Label:   relations.LabelTranslation,
			Score:   score,
			Reason:  reason,
		})
	}
	return out
}

// keepBest leaves one suggestion per target and label, the highest scored.
func keepBest(in []Suggestion) []Suggestion {
	type key struct {
		ref   content.Ref
		label relations.Label
	}
	best := make(map[key]int, len(in))
	out := make([]Suggestion, 0, len(in))
	for _, s := range in {
		k := key{s.Target, s.Label}
		if i, ok := best[k]; ok {
			if s.Score > out[i].Score {
				out[i] = s
			}
			continue
		}
		best[k] = len(out)
		out = append(out, s)
	}
	return out
}
