package ranking

import (
	"sort"

	"github.com/promptdeck/promptsearch/internal/models"
)

// TrendingScore computes the popularity heuristic used as the default
// ordering when no query is active. Missing counters are zero-valued and
// contribute nothing.
func TrendingScore(config *RankingConfig, doc *models.PromptDocument) float64 {
	if config == nil {
		config = DefaultRankingConfig()
	}
	return float64(doc.SavesCount)*config.TrendingSavesWeight +
		float64(doc.Views)*config.TrendingViewsWeight +
		float64(doc.AudioPlayCount)*config.TrendingAudioWeight
}

// SortByTrending returns corpus ordered by trending score descending. The
// sort is stable, so documents with equal scores keep the corpus order;
// store-produced corpora are recency-ordered, which makes recency the
// effective tie-break. The input slice is not modified.
func SortByTrending(config *RankingConfig, corpus []models.PromptDocument) []models.PromptDocument {
	ordered := append([]models.PromptDocument(nil), corpus...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return TrendingScore(config, &ordered[i]) > TrendingScore(config, &ordered[j])
	})
	return ordered
}
