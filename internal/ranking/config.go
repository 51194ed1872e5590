// Package ranking provides query-relevance ranking for prompt documents:
// an exact weighted-substring strategy for the server path and a fuzzy
// edit-distance strategy for interactive reranking.
package ranking

// RankingConfig holds all tuning constants for both ranking strategies and
// the trending sort.
type RankingConfig struct {
	// Weighted substring scoring values
	TitleContainsScore  float64 `yaml:"title_contains_score"`  // default: 20
	TitleAnchoredScore  float64 `yaml:"title_anchored_score"`  // default: 30 (equals/prefix/suffix, supersedes contains)
	TagExactScore       float64 `yaml:"tag_exact_score"`       // default: 20
	TagContainsScore    float64 `yaml:"tag_contains_score"`    // default: 10 (per containing tag)
	CategoryScore       float64 `yaml:"category_score"`        // default: 15
	BodyOccurrenceScore float64 `yaml:"body_occurrence_score"` // default: 5 (per occurrence)
	PhraseBonus         float64 `yaml:"phrase_bonus"`          // default: 50 (applied once)

	// Fuzzy reranker field weights
	FuzzyTitleWeight       float64 `yaml:"fuzzy_title_weight"`       // default: 0.5
	FuzzyDescriptionWeight float64 `yaml:"fuzzy_description_weight"` // default: 0.3
	FuzzyTagsWeight        float64 `yaml:"fuzzy_tags_weight"`        // default: 0.15
	FuzzyCategoryWeight    float64 `yaml:"fuzzy_category_weight"`    // default: 0.05

	// Fuzzy reranker thresholds
	MatchTolerance      float64 `yaml:"match_tolerance"`       // default: 0.4 (max normalized edit distance per field)
	MinSimilarity       float64 `yaml:"min_similarity"`        // default: 0.55 (raw similarity eligibility floor)
	TrendingBoostWeight float64 `yaml:"trending_boost_weight"` // default: 0.08
	FuzzyLimit          int     `yaml:"fuzzy_limit"`           // default: 20

	// Trending sort weights
	TrendingSavesWeight float64 `yaml:"trending_saves_weight"` // default: 3
	TrendingViewsWeight float64 `yaml:"trending_views_weight"` // default: 0.5
	TrendingAudioWeight float64 `yaml:"trending_audio_weight"` // default: 2

	// MinQueryLength is the minimum trimmed query length; anything shorter
	// yields no results (server path) or the trending order (client path).
	MinQueryLength int `yaml:"min_query_length"` // default: 2
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		TitleContainsScore:  20,
		TitleAnchoredScore:  30,
		TagExactScore:       20,
		TagContainsScore:    10,
		CategoryScore:       15,
		BodyOccurrenceScore: 5,
		PhraseBonus:         50,

		FuzzyTitleWeight:       0.5,
		FuzzyDescriptionWeight: 0.3,
		FuzzyTagsWeight:        0.15,
		FuzzyCategoryWeight:    0.05,

		MatchTolerance:      0.4,
		MinSimilarity:       0.55,
		TrendingBoostWeight: 0.08,
		FuzzyLimit:          20,

		TrendingSavesWeight: 3,
		TrendingViewsWeight: 0.5,
		TrendingAudioWeight: 2,

		MinQueryLength: 2,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()

	if c.TitleContainsScore == 0 {
		c.TitleContainsScore = defaults.TitleContainsScore
	}
	if c.TitleAnchoredScore == 0 {
		c.TitleAnchoredScore = defaults.TitleAnchoredScore
	}
	if c.TagExactScore == 0 {
		c.TagExactScore = defaults.TagExactScore
	}
	if c.TagContainsScore == 0 {
		c.TagContainsScore = defaults.TagContainsScore
	}
	if c.CategoryScore == 0 {
		c.CategoryScore = defaults.CategoryScore
	}
	if c.BodyOccurrenceScore == 0 {
		c.BodyOccurrenceScore = defaults.BodyOccurrenceScore
	}
	if c.PhraseBonus == 0 {
		c.PhraseBonus = defaults.PhraseBonus
	}

	if c.FuzzyTitleWeight == 0 {
		c.FuzzyTitleWeight = defaults.FuzzyTitleWeight
	}
	if c.FuzzyDescriptionWeight == 0 {
		c.FuzzyDescriptionWeight = defaults.FuzzyDescriptionWeight
	}
	if c.FuzzyTagsWeight == 0 {
		c.FuzzyTagsWeight = defaults.FuzzyTagsWeight
	}
	if c.FuzzyCategoryWeight == 0 {
		c.FuzzyCategoryWeight = defaults.FuzzyCategoryWeight
	}

	if c.MatchTolerance == 0 {
		c.MatchTolerance = defaults.MatchTolerance
	}
	if c.MinSimilarity == 0 {
		c.MinSimilarity = defaults.MinSimilarity
	}
	if c.TrendingBoostWeight == 0 {
		c.TrendingBoostWeight = defaults.TrendingBoostWeight
	}
	if c.FuzzyLimit == 0 {
		c.FuzzyLimit = defaults.FuzzyLimit
	}

	if c.TrendingSavesWeight == 0 {
		c.TrendingSavesWeight = defaults.TrendingSavesWeight
	}
	if c.TrendingViewsWeight == 0 {
		c.TrendingViewsWeight = defaults.TrendingViewsWeight
	}
	if c.TrendingAudioWeight == 0 {
		c.TrendingAudioWeight = defaults.TrendingAudioWeight
	}

	if c.MinQueryLength == 0 {
		c.MinQueryLength = defaults.MinQueryLength
	}
}
