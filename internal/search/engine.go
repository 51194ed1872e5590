// Package search orchestrates the two-stage ranking pipeline: synonym
// expansion and candidate fetching feeding the weighted substring scorer on
// the server path, and the fuzzy reranker plus trending sort on the
// interactive path.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/promptdeck/promptsearch/internal/config"
	"github.com/promptdeck/promptsearch/internal/models"
	"github.com/promptdeck/promptsearch/internal/ranking"
	"github.com/promptdeck/promptsearch/internal/store"
	"github.com/promptdeck/promptsearch/internal/synonym"
)

// Engine wires the synonym dictionary, the store collaborator, and both
// ranking strategies. Every ranking computation is a synchronous pass over
// its inputs; the only I/O is the single candidate fetch per search.
type Engine struct {
	store     store.Store
	dict      *synonym.Dictionary
	substring *ranking.SubstringStrategy
	fuzzy     *ranking.FuzzyStrategy
	rankCfg   *ranking.RankingConfig
	searchCfg *config.SearchConfig
	cache     *resultCache
	logger    *zap.Logger
}

// NewEngine creates an engine. Nil config arguments fall back to defaults;
// logger must not be nil.
func NewEngine(st store.Store, dict *synonym.Dictionary, rankCfg *ranking.RankingConfig, searchCfg *config.SearchConfig, logger *zap.Logger) *Engine {
	if dict == nil {
		dict = synonym.Default()
	}
	if rankCfg == nil {
		rankCfg = ranking.DefaultRankingConfig()
	}
	rankCfg.ApplyDefaults()
	if searchCfg == nil {
		searchCfg = &config.SearchConfig{}
	}
	if searchCfg.DefaultLimit == 0 {
		searchCfg.DefaultLimit = 50
	}
	if searchCfg.MaxLimit == 0 {
		searchCfg.MaxLimit = 100
	}
	if searchCfg.OverfetchFactor == 0 {
		searchCfg.OverfetchFactor = 2
	}
	if searchCfg.CandidateCap == 0 {
		searchCfg.CandidateCap = 200
	}
	if searchCfg.CacheSize == 0 {
		searchCfg.CacheSize = 512
	}
	if searchCfg.CacheTTLSeconds == 0 {
		searchCfg.CacheTTLSeconds = 60
	}

	return &Engine{
		store:     st,
		dict:      dict,
		substring: ranking.NewSubstringStrategy(rankCfg, dict),
		fuzzy:     ranking.NewFuzzyStrategy(rankCfg),
		rankCfg:   rankCfg,
		searchCfg: searchCfg,
		cache:     newResultCache(searchCfg.CacheSize, time.Duration(searchCfg.CacheTTLSeconds)*time.Second),
		logger:    logger,
	}
}

// Search runs the server-path pipeline: expand the query, over-fetch
// recency-ordered candidates, score, filter, and truncate. Queries shorter
// than the minimum length and queries that tokenize to nothing return an
// empty result without touching the store. Identical concurrent queries
// share one store fetch.
func (e *Engine) Search(ctx context.Context, rawQuery string, limit int) ([]models.PromptDocument, error) {
	q := strings.ToLower(strings.TrimSpace(rawQuery))
	if utf8.RuneCountInString(q) < e.rankCfg.MinQueryLength {
		return nil, nil
	}
	limit = e.clampLimit(limit)

	key := fmt.Sprintf("%s|%d", q, limit)
	return e.cache.Do(key, func() ([]models.PromptDocument, error) {
		tokens := e.dict.ExpandQuery(q)
		if len(tokens) == 0 {
			return nil, nil
		}

		fetchLimit := limit * e.searchCfg.OverfetchFactor
		if fetchLimit > e.searchCfg.CandidateCap {
			fetchLimit = e.searchCfg.CandidateCap
		}

		candidates, err := e.store.SearchCandidates(ctx, tokens, fetchLimit)
		if err != nil {
			return nil, fmt.Errorf("candidate fetch failed: %w", err)
		}

		ranked := e.substring.Rank(candidates, q)
		if len(ranked) > limit {
			ranked = ranked[:limit]
		}

		e.logger.Debug("search completed",
			zap.String("query", q),
			zap.Int("expanded_tokens", len(tokens)),
			zap.Int("candidates", len(candidates)),
			zap.Int("results", len(ranked)),
		)
		return ranked, nil
	})
}

// Refine runs the interactive-path ranking over a caller-held corpus: fuzzy
// reranking for a real query, trending order when the query is empty or
// below the minimum length.
func (e *Engine) Refine(corpus []models.PromptDocument, rawQuery string, opts ranking.FuzzyOptions) []models.PromptDocument {
	q := strings.TrimSpace(rawQuery)
	if utf8.RuneCountInString(q) < e.rankCfg.MinQueryLength {
		return ranking.SortByTrending(e.rankCfg, corpus)
	}
	return e.fuzzy.RankWithOptions(corpus, q, opts)
}

// Trending returns corpus in trending order.
func (e *Engine) Trending(corpus []models.PromptDocument) []models.PromptDocument {
	return ranking.SortByTrending(e.rankCfg, corpus)
}

// clampLimit normalizes a requested limit into [1, MaxLimit], defaulting
// non-positive values.
func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		limit = e.searchCfg.DefaultLimit
	}
	if limit > e.searchCfg.MaxLimit {
		limit = e.searchCfg.MaxLimit
	}
	return limit
}
