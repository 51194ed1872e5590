package ranking

import (
	"regexp"
	"strings"

	"github.com/promptdeck/promptsearch/internal/models"
	"github.com/promptdeck/promptsearch/internal/synonym"
)

// SubstringStrategy is the server-path ranker: it expands the query through
// the synonym dictionary and scores candidates with hand-tuned field weights
// over exact substring matches.
type SubstringStrategy struct {
	config *RankingConfig
	dict   *synonym.Dictionary
}

// NewSubstringStrategy creates a strategy with the given config and synonym
// dictionary. Nil arguments fall back to defaults.
func NewSubstringStrategy(config *RankingConfig, dict *synonym.Dictionary) *SubstringStrategy {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()
	if dict == nil {
		dict = synonym.Default()
	}
	return &SubstringStrategy{config: config, dict: dict}
}

// Name returns the strategy name.
func (s *SubstringStrategy) Name() string {
	return "weighted_substring"
}

// Rank scores every document in corpus against the expanded query, drops
// zero scores, and orders the rest by score descending with ties keeping the
// corpus (recency) order.
func (s *SubstringStrategy) Rank(corpus []models.PromptDocument, query string) []models.PromptDocument {
	normalized := strings.ToLower(strings.TrimSpace(query))
	expanded := s.dict.ExpandQuery(normalized)
	if len(expanded) == 0 {
		return nil
	}

	patterns := compileTokenPatterns(expanded)
	candidates := make([]scoredCandidate, 0, len(corpus))
	for _, doc := range corpus {
		candidates = append(candidates, scoredCandidate{
			doc:   doc,
			score: s.score(&doc, expanded, normalized, patterns),
		})
	}
	return rankAndFilter(candidates, 0)
}

// Score computes the relevance score for one document against the expanded
// token set and the trimmed, lowercased raw query. It is deterministic,
// side-effect-free, and tolerates documents with every field absent.
func (s *SubstringStrategy) Score(doc *models.PromptDocument, expandedTokens []string, rawQueryLower string) float64 {
	return s.score(doc, expandedTokens, rawQueryLower, compileTokenPatterns(expandedTokens))
}

func (s *SubstringStrategy) score(doc *models.PromptDocument, tokens []string, rawQuery string, patterns map[string]*regexp.Regexp) float64 {
	title := strings.ToLower(doc.Title)
	category := strings.ToLower(doc.Category)
	body := strings.ToLower(doc.BodyText())

	score := 0.0
	for _, tok := range tokens {
		if tok == "" {
			continue
		}

		// Title: anchored matches (equal, prefix, suffix) take the stronger
		// bonus instead of the plain contains bonus, never both.
		if strings.Contains(title, tok) {
			if title == tok || strings.HasPrefix(title, tok) || strings.HasSuffix(title, tok) {
				score += s.config.TitleAnchoredScore
			} else {
				score += s.config.TitleContainsScore
			}
		}

		// Tags: one exact-equality bonus per token, plus a contains bonus for
		// every tag the token appears in. An exact tag also satisfies
		// contains, so a single exact hit compounds to 20+10. That quirk is
		// kept deliberately; see DESIGN.md.
		for _, tag := range doc.Tags {
			if strings.EqualFold(tag, tok) {
				score += s.config.TagExactScore
				break
			}
		}
		for _, tag := range doc.Tags {
			if strings.Contains(strings.ToLower(tag), tok) {
				score += s.config.TagContainsScore
			}
		}

		if strings.Contains(category, tok) {
			score += s.config.CategoryScore
		}

		// Body: every occurrence counts, not just the first.
		if re, ok := patterns[tok]; ok {
			score += s.config.BodyOccurrenceScore * float64(len(re.FindAllStringIndex(body, -1)))
		}
	}

	// Exact phrase bonus: the full query as a substring of title,
	// description, or prompt text. Applied once, not once per field.
	if rawQuery != "" {
		if strings.Contains(title, rawQuery) ||
			strings.Contains(strings.ToLower(doc.Description), rawQuery) ||
			strings.Contains(strings.ToLower(doc.PromptText), rawQuery) {
			score += s.config.PhraseBonus
		}
	}

	return score
}

// compileTokenPatterns builds a literal-match regexp per token for counting
// body occurrences. Tokens are already lowercased, as is the body haystack.
func compileTokenPatterns(tokens []string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, ok := patterns[tok]; ok {
			continue
		}
		patterns[tok] = regexp.MustCompile(regexp.QuoteMeta(tok))
	}
	return patterns
}
