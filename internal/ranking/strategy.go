package ranking

import (
	"sort"

	"github.com/promptdeck/promptsearch/internal/models"
)

// Strategy ranks a corpus against a raw query and returns an ordered view of
// the matching documents. Scores are internal to the strategy and never leave
// this package. Both strategies are pure functions over their inputs: no
// shared mutable state, safe for concurrent use.
type Strategy interface {
	Rank(corpus []models.PromptDocument, query string) []models.PromptDocument
	Name() string
}

// scoredCandidate pairs a document with its score during ranking. It never
// escapes the package.
type scoredCandidate struct {
	doc   models.PromptDocument
	score float64
}

// rankAndFilter drops non-positive scores, stable-sorts descending by score
// (equal scores keep their pre-sort order, which is the fetch's recency
// ordering), truncates to limit, and strips the internal score. A limit of
// zero or less means no truncation.
func rankAndFilter(candidates []scoredCandidate, limit int) []models.PromptDocument {
	kept := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.score > 0 {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}

	docs := make([]models.PromptDocument, len(kept))
	for i, c := range kept {
		docs[i] = c.doc
	}
	return docs
}
