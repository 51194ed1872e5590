package ranking

import (
	"testing"

	"github.com/promptdeck/promptsearch/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestFuzzyRank_shortQuery(t *testing.T) {
	s := NewFuzzyStrategy(nil)
	corpus := []models.PromptDocument{{ID: "1", Title: "Horror Prompts"}}

	for _, q := range []string{"", " ", "h", " h "} {
		if got := s.Rank(corpus, q); len(got) != 0 {
			t.Errorf("query %q: expected empty result, got %v", q, got)
		}
	}
}

func TestFuzzyRank_titleSubstring(t *testing.T) {
	s := NewFuzzyStrategy(nil)
	corpus := []models.PromptDocument{
		{ID: "miss", Title: "Cooking Tips", Description: "weeknight recipes"},
		{ID: "hit", Title: "Horror Night", Description: "spooky ideas"},
	}

	got := s.Rank(corpus, "horror")
	if len(got) != 1 || got[0].ID != "hit" {
		t.Fatalf("expected only the title match, got %v", got)
	}
}

func TestFuzzyRank_typoTolerance(t *testing.T) {
	s := NewFuzzyStrategy(nil)
	corpus := []models.PromptDocument{
		{ID: "1", Title: "Horror Prompts"},
	}

	// One edit away from "horror"; within the 0.4 match tolerance and above
	// the 0.55 similarity floor.
	got := s.Rank(corpus, "horor")
	if len(got) != 1 {
		t.Fatalf("expected typo to match, got %v", got)
	}
}

func TestFuzzyRank_categoryAloneInsufficient(t *testing.T) {
	s := NewFuzzyStrategy(nil)

	// Category carries only 5% weight; a category-only hit cannot reach the
	// raw similarity floor.
	corpus := []models.PromptDocument{
		{ID: "1", Title: "Cooking Tips", Description: "weeknight recipes", Tags: []string{"food"}, Category: "horror"},
	}
	if got := s.Rank(corpus, "horror"); len(got) != 0 {
		t.Errorf("category-only match must be ineligible, got %v", got)
	}
}

func TestFuzzyRank_tagsAloneSufficient(t *testing.T) {
	s := NewFuzzyStrategy(nil)

	corpus := []models.PromptDocument{
		{ID: "1", Title: "Cooking Tips", Description: "weeknight recipes", Tags: []string{"horror"}},
	}
	if got := s.Rank(corpus, "horror"); len(got) != 1 {
		t.Errorf("exact tag match must be eligible, got %v", got)
	}
}

func TestFuzzyRank_trendingBoostReordersEligible(t *testing.T) {
	s := NewFuzzyStrategy(nil)

	// Identical text, so identical raw similarity; favorites decide.
	corpus := []models.PromptDocument{
		{ID: "plain", Title: "Horror Night", FavoriteCount: 0},
		{ID: "popular", Title: "Horror Night", FavoriteCount: 1000},
	}

	got := s.Rank(corpus, "horror")
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "popular" {
		t.Errorf("boosted document must rank first, got %s", got[0].ID)
	}
}

func TestFuzzyRank_boostDisabledKeepsCorpusOrder(t *testing.T) {
	s := NewFuzzyStrategy(nil)

	corpus := []models.PromptDocument{
		{ID: "plain", Title: "Horror Night", FavoriteCount: 0},
		{ID: "popular", Title: "Horror Night", FavoriteCount: 1000},
	}

	got := s.RankWithOptions(corpus, "horror", FuzzyOptions{TrendingBoost: boolPtr(false)})
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "plain" {
		t.Errorf("without boost, equal scores keep corpus order, got %s first", got[0].ID)
	}
}

func TestFuzzyRank_boostCannotRescueIneligible(t *testing.T) {
	s := NewFuzzyStrategy(nil)

	// No textual match at all; a million favorites must not rescue it.
	corpus := []models.PromptDocument{
		{ID: "1", Title: "Cooking Tips", Description: "weeknight recipes", FavoriteCount: 1000000},
	}
	if got := s.Rank(corpus, "horror"); len(got) != 0 {
		t.Errorf("boost must never rescue an ineligible document, got %v", got)
	}
}

func TestFuzzyRank_limit(t *testing.T) {
	s := NewFuzzyStrategy(nil)

	corpus := []models.PromptDocument{
		{ID: "1", Title: "Horror Night"},
		{ID: "2", Title: "Horror Morning"},
		{ID: "3", Title: "Horror Noon"},
	}
	got := s.RankWithOptions(corpus, "horror", FuzzyOptions{Limit: 2})
	if len(got) != 2 {
		t.Errorf("expected limit to truncate to 2, got %d", len(got))
	}
}

func TestFuzzyRank_thresholdOverride(t *testing.T) {
	s := NewFuzzyStrategy(nil)

	// With a near-1 threshold, even a clean tag-only match is excluded.
	corpus := []models.PromptDocument{
		{ID: "1", Title: "Cooking Tips", Tags: []string{"horror"}},
	}
	if got := s.RankWithOptions(corpus, "horror", FuzzyOptions{Threshold: 0.99}); len(got) != 0 {
		t.Errorf("expected raised threshold to exclude, got %v", got)
	}
}

func TestSimilarity_range(t *testing.T) {
	s := NewFuzzyStrategy(nil)

	docs := []models.PromptDocument{
		{Title: "Horror Night", Description: "spooky", Tags: []string{"horror"}, Category: "horror"},
		{Title: "Cooking"},
		{},
	}
	for _, doc := range docs {
		sim := s.Similarity("horror", &doc)
		if sim < 0 || sim > 1 {
			t.Errorf("similarity out of range for %+v: %v", doc, sim)
		}
	}
}

func TestSimilarity_allFieldsBeatSingleField(t *testing.T) {
	s := NewFuzzyStrategy(nil)

	full := models.PromptDocument{Title: "Horror Night", Description: "horror ideas", Tags: []string{"horror"}, Category: "horror"}
	titleOnly := models.PromptDocument{Title: "Horror Night"}

	if s.Similarity("horror", &full) <= s.Similarity("horror", &titleOnly) {
		t.Error("matching every field must not score lower than matching one")
	}
}
