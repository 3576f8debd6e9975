package matcher

import (
	"github.com/agentstation/pedigreecheck/pkg/normalize"
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

// AffixIndex maps normalized kennel affixes to the first spelling seen in
// the reference dataset. It is read-only once built.
type AffixIndex struct {
	canonical map[normalize.Key]string
}

// BuildAffixIndex indexes affixes, skipping blank values.
func BuildAffixIndex(affixes []string) *AffixIndex {
	ix := &AffixIndex{canonical: make(map[normalize.Key]string, len(affixes))}
	for _, affix := range affixes {
		original := registry.Clean(affix)
		key := normalize.Affix(original)
		if key.IsZero() {
			continue
		}
		if _, seen := ix.canonical[key]; !seen {
			ix.canonical[key] = original
		}
	}
	return ix
}

// NewAffixIndex indexes the affix column of the reference dataset.
func NewAffixIndex(refs []registry.ReferenceRecord) *AffixIndex {
	affixes := make([]string, len(refs))
	for i, ref := range refs {
		affixes[i] = ref.Affix
	}
	return BuildAffixIndex(affixes)
}

// Lookup returns the canonical spelling of key.
func (ix *AffixIndex) Lookup(key normalize.Key) (string, bool) {
	if key.IsZero() {
		return "", false
	}
	original, ok := ix.canonical[key]
	return original, ok
}

// Len returns the number of distinct normalized affixes.
func (ix *AffixIndex) Len() int { return len(ix.canonical) }

// Check looks up the affix of rec. Messages quote the affix as submitted.
func (ix *AffixIndex) Check(rec registry.SubmittedRecord) Outcome {
	key := rec.Affix
	if key.IsZero() {
		key = normalize.Affix(rec.OriginalAffix)
	}
	if key.IsZero() {
		return warning(CategoryAffix, KindNotFound, rec.Row, msgAffixAbsent, rec.Dog.UsualName, rec.Row).
			withReason(ReasonAffixAbsent)
	}
	if canonical, ok := ix.Lookup(key); ok {
		return info(CategoryAffix, KindExactMatch, rec.Row, msgAffixFound, rec.OriginalAffix, canonical)
	}
	return warning(CategoryAffix, KindNotFound, rec.Row, msgAffixNotFound, rec.OriginalAffix)
}
