package suggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/domain/relations"
)

func word(id, w, vocalized, root string) *content.Word {
	return &content.Word{Base: content.Base{ID: id}, Word: w, Vocalized: vocalized, Root: root}
}

func english(id, w string) *content.WordEN {
	return &content.WordEN{Base: content.Base{ID: id}, Word: w}
}

func targets(in []Suggestion) []content.Ref {
	out := make([]content.Ref, len(in))
	for i, s := range in {
		out[i] = s.Target
	}
	return out
}

func TestRank_SharedRoot(t *testing.T) {
	w1 := word("w1", "כתב", "כָּתַב", "כתב")
	w2 := word("w2", "מכתב", "מִכְתָּב", "כָּתַב")
	w3 := word("w3", "כלב", "כֶּלֶב", "כלב")
	snap := &Snapshot{Words: []*content.Word{w1, w2, w3}}

	out := NewEngine(0).Rank(snap, w1)

	require.Len(t, out, 1)
	assert.Equal(t, content.RefOf(w2), out[0].Target)
	assert.Equal(t, relations.LabelAntonym, out[0].Label)
	assert.Equal(t, ReasonSharedRoot, out[0].Reason)
	assert.NotContains(t, targets(out), content.RefOf(w1))
}

func TestRank_EmptyRootMatchesNothing(t *testing.T) {
	w1 := word("w1", "כתב", "", "")
	w2 := word("w2", "מכתב", "", "")
	snap := &Snapshot{Words: []*content.Word{w1, w2}}

	assert.Empty(t, NewEngine(0).Rank(snap, w1))
}

func TestRank_WordToEnglish(t *testing.T) {
	src := word("w1", "Pizza", "", "")
	snap := &Snapshot{WordsEN: []*content.WordEN{
		english("e1", "pizza"),
		english("e2", "pizzas"),
		english("e3", "pasta"),
	}}

	out := NewEngine(0).Rank(snap, src)

	require.Len(t, out, 2)
	assert.Equal(t, content.NewRef(content.VariantWordEN, "e1"), out[0].Target)
	assert.Equal(t, 1.0, out[0].Score)
	assert.Equal(t, relations.LabelTranslation, out[0].Label)
	assert.Equal(t, content.NewRef(content.VariantWordEN, "e2"), out[1].Target)
	assert.Less(t, out[1].Score, out[0].Score)
}

func TestRank_EnglishToWordUsesVocalizedForm(t *testing.T) {
	src := english("e1", "Café")
	snap := &Snapshot{Words: []*content.Word{
		word("w1", "קפה", "cafe", ""),
		word("w2", "תה", "tea", ""),
	}}

	out := NewEngine(0).Rank(snap, src)

	require.Len(t, out, 1)
	assert.Equal(t, content.NewRef(content.VariantWord, "w1"), out[0].Target)
	assert.Equal(t, ReasonVocalizedOverlap, out[0].Reason)
	assert.Equal(t, 1.0, out[0].Score)
}

func TestRank_UnsupportedSourceIsEmpty(t *testing.T) {
	snap := &Snapshot{Words: []*content.Word{word("w1", "כתב", "", "כתב")}}

	out := NewEngine(0).Rank(snap, &content.Image{Base: content.Base{ID: "img"}, Name: "כתב"})
	assert.NotNil(t, out)
	assert.Empty(t, out)

	assert.Empty(t, NewEngine(0).Rank(nil, word("w1", "כתב", "", "כתב")))
}

func TestRank_DeterministicOrder(t *testing.T) {
	src := word("w0", "א", "", "שמר")
	snap := &Snapshot{Words: []*content.Word{
		src,
		word("w9", "שומר", "", "שמר"),
		word("w3", "משמרת", "", "שמר"),
		word("w2", "שומר", "", "שמר"),
	}}

	engine := NewEngine(0)
	first := engine.Rank(snap, src)
	second := engine.Rank(snap, src)

	assert.Equal(t, first, second)
	// Equal scores break on display text, then id.
	assert.Equal(t, []content.Ref{
		content.NewRef(content.VariantWord, "w3"),
		content.NewRef(content.VariantWord, "w2"),
		content.NewRef(content.VariantWord, "w9"),
	}, targets(first))
}

func TestSuggest_Limit(t *testing.T) {
	src := word("w0", "א", "", "שמר")
	snap := &Snapshot{Words: []*content.Word{src}}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		snap.Words = append(snap.Words, word(id, "שומר", "", "שמר"))
	}

	assert.Len(t, NewEngine(3).Suggest(snap, src, 0), 3)
	assert.Len(t, NewEngine(3).Suggest(snap, src, 2), 2)
	assert.Len(t, NewEngine(3).Suggest(snap, src, 50), 5)
}

func TestKeepBest(t *testing.T) {
	ref := content.NewRef(content.VariantWord, "w1")
	in := []Suggestion{
		{Target: ref, Label: relations.LabelTranslation, Score: 0.5, Reason: ReasonWordOverlap},
		{Target: ref, Label: relations.LabelTranslation, Score: 0.9, Reason: ReasonVocalizedOverlap},
		{Target: ref, Label: relations.LabelAntonym, Score: 1, Reason: ReasonSharedRoot},
	}

	out := keepBest(in)

	require.Len(t, out, 2)
	assert.Equal(t, 0.9, out[0].Score)
	assert.Equal(t, relations.LabelAntonym, out[1].Label)
}
