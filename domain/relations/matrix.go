package relations

import (
	"fmt"

	"github.com/ludora/content-service/domain/content"
)

// AllowedTypes returns the labels permitted on an edge between source and
// target. The result does not depend on argument order.
func AllowedTypes(source, target content.Variant) LabelSet {
	if !linkable(source) || !linkable(target) {
		return LabelSet{}
	}
	if source == content.VariantAttribute && target == content.VariantAttribute {
		return LabelSet{}
	}

	allowed := LabelSet{}
	if source.IsWordLike() && target.IsWordLike() {
		allowed = allowed.Add(LabelTranslation).Add(LabelAntonym)
	}
	if isAttributeLike(source) || isAttributeLike(target) {
		allowed = allowed.Add(LabelAttributeOf)
	}
	if source == content.VariantContentList || target == content.VariantContentList {
		allowed = allowed.Add(LabelListMember)
	}
	return allowed
}

func linkable(v content.Variant) bool {
	switch v {
	case content.VariantWord, content.VariantWordEN, content.VariantImage,
		content.VariantQA, content.VariantAttribute, content.VariantContentList:
		return true
	}
	return false
}

func isAttributeLike(v content.Variant) bool {
	return v == content.VariantAttribute || v == content.VariantQA
}

// Conflict names the pair at which a selection's allowed labels ran out.
type Conflict struct {
	Source content.Variant `json:"source"`
	Target content.Variant `json:"target"`
	// Accumulated holds the labels still selectable before Target was added.
	Accumulated LabelSet `json:"accumulated"`
	// Allowed holds the labels Target permits on its own.
	Allowed LabelSet `json:"allowed"`
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("no relationship type fits every selected item: %s ↔ %s allows %v, selection so far allows %v",
		c.Source, c.Target, c.Allowed.Strings(), c.Accumulated.Strings())
}

// SelectableLabels folds AllowedTypes over every target by intersection.
// When the intersection becomes empty the offending pair is returned and
// the result is empty. No targets yields an empty set and no conflict.
func SelectableLabels(source content.Variant, targets []content.Variant) (LabelSet, *Conflict) {
	return foldSelectable(source, targets, AllowedTypes)
}

func foldSelectable(source content.Variant, targets []content.Variant, allowedFn func(a, b content.Variant) LabelSet) (LabelSet, *Conflict) {
	if len(targets) == 0 {
		return LabelSet{}, nil
	}

	var acc LabelSet
	for i, t := range targets {
		allowed := allowedFn(source, t)
		next := allowed
		if i > 0 {
			next = acc.Intersect(allowed)
		}
		if len(next) == 0 {
			if acc == nil {
				acc = LabelSet{}
			}
			return LabelSet{}, &Conflict{Source: source, Target: t, Accumulated: acc, Allowed: allowed}
		}
		acc = next
	}
	return acc, nil
}
