package ranking

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/promptdeck/promptsearch/internal/models"
)

// minFieldDistance floors a matched field's distance so a perfect match in a
// heavily weighted field can dominate the combined score without zeroing it.
const minFieldDistance = 0.001

// FuzzyOptions are per-call overrides for the fuzzy reranker. Zero values
// fall back to the strategy's configured defaults; TrendingBoost defaults to
// enabled when unset.
type FuzzyOptions struct {
	Limit         int
	Threshold     float64
	TrendingBoost *bool
}

// FuzzyStrategy is the client-path reranker: field-weighted approximate
// string matching with a small popularity boost, for search-as-you-type
// reranking of a client-held corpus.
type FuzzyStrategy struct {
	config *RankingConfig
}

// NewFuzzyStrategy creates a strategy with the given config, or defaults
// when nil.
func NewFuzzyStrategy(config *RankingConfig) *FuzzyStrategy {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()
	return &FuzzyStrategy{config: config}
}

// Name returns the strategy name.
func (s *FuzzyStrategy) Name() string {
	return "fuzzy"
}

// Rank reranks corpus with default options.
func (s *FuzzyStrategy) Rank(corpus []models.PromptDocument, query string) []models.PromptDocument {
	return s.RankWithOptions(corpus, query, FuzzyOptions{})
}

// RankWithOptions reranks corpus against query. Queries shorter than the
// configured minimum always yield an empty list. Documents are eligible only
// when their raw similarity reaches the threshold; the trending boost can
// reorder eligible matches but never rescue an ineligible one.
func (s *FuzzyStrategy) RankWithOptions(corpus []models.PromptDocument, query string, opts FuzzyOptions) []models.PromptDocument {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < s.config.MinQueryLength {
		return nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.config.FuzzyLimit
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = s.config.MinSimilarity
	}
	boost := true
	if opts.TrendingBoost != nil {
		boost = *opts.TrendingBoost
	}

	candidates := make([]scoredCandidate, 0, len(corpus))
	for _, doc := range corpus {
		raw := s.Similarity(q, &doc)
		if raw < threshold {
			continue
		}
		score := raw
		if boost {
			score += math.Log10(math.Max(1, float64(doc.FavoriteCount+1))) * s.config.TrendingBoostWeight
		}
		candidates = append(candidates, scoredCandidate{doc: doc, score: score})
	}
	return rankAndFilter(candidates, limit)
}

// Similarity computes the raw similarity of doc against the lowercased query
// as 1 minus a field-weighted combined distance. Per field, the distance is
// the best normalized edit distance of the query against the field text
// (0 for an exact substring hit), or 1 when no candidate falls within the
// match tolerance. Field distances combine as a weighted product, so a
// strong hit in a heavy field (title) lifts the similarity even when the
// other fields miss entirely.
func (s *FuzzyStrategy) Similarity(query string, doc *models.PromptDocument) float64 {
	fields := []struct {
		weight float64
		dist   float64
	}{
		{s.config.FuzzyTitleWeight, s.fieldDistance(query, doc.Title)},
		{s.config.FuzzyDescriptionWeight, s.fieldDistance(query, doc.Description)},
		{s.config.FuzzyTagsWeight, s.tagsDistance(query, doc.Tags)},
		{s.config.FuzzyCategoryWeight, s.fieldDistance(query, doc.Category)},
	}

	raw := 1.0
	for _, f := range fields {
		d := f.dist
		if d < minFieldDistance {
			d = minFieldDistance
		}
		raw *= math.Pow(d, f.weight)
	}
	return 1 - raw
}

// fieldDistance returns the normalized edit distance of the best match of
// query within text: 0 for an exact substring, otherwise the smallest
// distance among word windows of the query's width. Returns 1 when the field
// is empty or no candidate is within the match tolerance.
func (s *FuzzyStrategy) fieldDistance(query, text string) float64 {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 1
	}
	if strings.Contains(text, query) {
		return 0
	}

	words := strings.Fields(text)
	span := len(strings.Fields(query))
	if span < 1 {
		span = 1
	}

	best := 0.0
	if len(words) < span {
		best = similarityOf(query, text)
	} else {
		for i := 0; i+span <= len(words); i++ {
			window := strings.Join(words[i:i+span], " ")
			if sim := similarityOf(query, window); sim > best {
				best = sim
			}
		}
	}

	dist := 1 - best
	if dist > s.config.MatchTolerance {
		return 1
	}
	return dist
}

// tagsDistance returns the best field distance across individual tags.
func (s *FuzzyStrategy) tagsDistance(query string, tags []string) float64 {
	best := 1.0
	for _, tag := range tags {
		if d := s.fieldDistance(query, tag); d < best {
			best = d
		}
	}
	return best
}

// similarityOf wraps edlib's normalized Levenshtein similarity; comparison
// failures count as no match.
func similarityOf(a, b string) float64 {
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(sim)
}
