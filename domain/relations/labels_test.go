package relations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabels(t *testing.T) {
	got, err := ParseLabels([]string{"Translation", "antonym/inverse", "translation", "attribute-of"})
	require.NoError(t, err)
	assert.Equal(t, LabelSet{LabelTranslation, LabelAntonym, LabelAttributeOf}, got)

	_, err = ParseLabels([]string{"synonym"})
	assert.Error(t, err)
}

func TestLabelSet_SetOperations(t *testing.T) {
	ab := NewLabelSet(LabelTranslation, LabelAntonym)
	bc := NewLabelSet(LabelAntonym, LabelListMember)

	assert.Equal(t, LabelSet{LabelTranslation, LabelAntonym, LabelListMember}, ab.Union(bc))
	assert.Equal(t, LabelSet{LabelAntonym}, ab.Intersect(bc))
	assert.Equal(t, LabelSet{LabelTranslation}, ab.Difference(bc))
	assert.True(t, NewLabelSet(LabelAntonym).SubsetOf(ab))
	assert.False(t, bc.SubsetOf(ab))

	assert.True(t, ab.Equal(NewLabelSet(LabelAntonym, LabelTranslation)), "order is ignored")
	assert.False(t, ab.Equal(bc))
	assert.Empty(t, ab.Intersect(LabelSet{}))

	// Union never aliases the receiver.
	before := append(LabelSet(nil), ab...)
	_ = ab.Union(bc)
	assert.Equal(t, before, ab)
}

func TestLabelSet_ValueScan(t *testing.T) {
	v, err := NewLabelSet(LabelTranslation, LabelAntonym).Value()
	require.NoError(t, err)
	assert.Equal(t, `["translation","antonym"]`, v)

	v, err = LabelSet(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	var s LabelSet
	require.NoError(t, s.Scan([]byte(`["list_member","list_member"]`)))
	assert.Equal(t, LabelSet{LabelListMember}, s)

	require.NoError(t, s.Scan(`["attribute_of"]`))
	assert.Equal(t, LabelSet{LabelAttributeOf}, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, LabelSet{}, s)

	assert.Error(t, s.Scan(42))
	assert.Error(t, s.Scan("not json"))
}
