package relations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludora/content-service/domain/content"
)

var allVariants = []content.Variant{
	content.VariantWord, content.VariantWordEN, content.VariantImage, content.VariantQA,
	content.VariantAttribute, content.VariantContentList, content.VariantGame, content.VariantRules,
}

func TestAllowedTypes(t *testing.T) {
	tests := []struct {
		source, target content.Variant
		want           LabelSet
	}{
		{content.VariantWord, content.VariantImage, LabelSet{LabelTranslation, LabelAntonym}},
		{content.VariantWord, content.VariantWordEN, LabelSet{LabelTranslation, LabelAntonym}},
		{content.VariantWord, content.VariantWord, LabelSet{LabelTranslation, LabelAntonym}},
		{content.VariantWord, content.VariantAttribute, LabelSet{LabelAttributeOf}},
		{content.VariantImage, content.VariantQA, LabelSet{LabelAttributeOf}},
		{content.VariantQA, content.VariantQA, LabelSet{LabelAttributeOf}},
		{content.VariantWordEN, content.VariantContentList, LabelSet{LabelListMember}},
		{content.VariantContentList, content.VariantAttribute, LabelSet{LabelAttributeOf, LabelListMember}},
		{content.VariantAttribute, content.VariantAttribute, LabelSet{}},
		{content.VariantWord, content.VariantGame, LabelSet{}},
		{content.VariantRules, content.VariantWord, LabelSet{}},
		{content.VariantWord, "Unknown", LabelSet{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.source)+"_"+string(tt.target), func(t *testing.T) {
			assert.True(t, tt.want.Equal(AllowedTypes(tt.source, tt.target)), "got %v", AllowedTypes(tt.source, tt.target))
		})
	}
}

func TestAllowedTypes_Symmetric(t *testing.T) {
	for _, a := range allVariants {
		for _, b := range allVariants {
			assert.True(t, AllowedTypes(a, b).Equal(AllowedTypes(b, a)), "%s/%s", a, b)
		}
	}
	assert.Equal(t, AllowedTypes(content.VariantWord, content.VariantImage), AllowedTypes(content.VariantImage, content.VariantWord))
}

func TestSelectableLabels(t *testing.T) {
	t.Run("empty selection", func(t *testing.T) {
		got, conflict := SelectableLabels(content.VariantWord, nil)
		assert.Nil(t, conflict)
		assert.Empty(t, got)
	})

	t.Run("word-like targets", func(t *testing.T) {
		got, conflict := SelectableLabels(content.VariantWord, []content.Variant{content.VariantWordEN, content.VariantImage})
		assert.Nil(t, conflict)
		assert.Equal(t, LabelSet{LabelTranslation, LabelAntonym}, got)
	})

	t.Run("narrowed by attribute", func(t *testing.T) {
		got, conflict := SelectableLabels(content.VariantContentList, []content.Variant{content.VariantAttribute, content.VariantWord})
		assert.Nil(t, conflict)
		assert.Equal(t, LabelSet{LabelListMember}, got)
	})

	t.Run("conflict names the pair", func(t *testing.T) {
		got, conflict := SelectableLabels(content.VariantWord, []content.Variant{content.VariantImage, content.VariantAttribute})
		assert.Empty(t, got)
		require.NotNil(t, conflict)
		assert.Equal(t, content.VariantWord, conflict.Source)
		assert.Equal(t, content.VariantAttribute, conflict.Target)
		assert.Contains(t, conflict.Error(), "Attribute")
	})

	t.Run("first pair already empty", func(t *testing.T) {
		_, conflict := SelectableLabels(content.VariantAttribute, []content.Variant{content.VariantAttribute})
		require.NotNil(t, conflict)
		assert.Equal(t, content.VariantAttribute, conflict.Target)
	})
}

func TestFoldSelectable_Intersection(t *testing.T) {
	a, b, c := Label("a"), Label("b"), Label("c")
	sets := map[content.Variant]LabelSet{
		"AB": {a, b},
		"BC": {b, c},
		"A":  {a},
		"B":  {b},
	}
	allowed := func(_, target content.Variant) LabelSet { return sets[target] }

	got, conflict := foldSelectable(content.VariantWord, []content.Variant{"AB", "BC"}, allowed)
	assert.Nil(t, conflict)
	assert.Equal(t, LabelSet{b}, got)

	got, conflict = foldSelectable(content.VariantWord, []content.Variant{"A", "B"}, allowed)
	assert.Empty(t, got)
	require.NotNil(t, conflict)
	assert.Equal(t, content.Variant("B"), conflict.Target)
	assert.Equal(t, LabelSet{a}, conflict.Accumulated)
}
