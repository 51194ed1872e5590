package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/promptdeck/promptsearch/internal/models"
	"github.com/promptdeck/promptsearch/internal/ranking"
)

// searchCacheControl marks search and trending responses as cacheable at the
// edge; the empty short-query response is a valid, cacheable "no query"
// response, not an error.
const searchCacheControl = "public, s-maxage=60, stale-while-revalidate=300"

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := s.parseLimit(r.URL.Query().Get("limit"))
	s.logger.Debug("search request", zap.String("query", q), zap.Int("limit", limit))

	prompts, err := s.engine.Search(r.Context(), q, limit)
	if err != nil {
		s.logger.Error("search failed", zap.String("query", q), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Cache-Control", searchCacheControl)
	s.respondJSON(w, http.StatusOK, models.NewSearchResponse(prompts))
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := s.parseLimit(r.URL.Query().Get("limit"))

	corpus, err := s.store.ListPublic(r.Context())
	if err != nil {
		s.logger.Error("refine corpus fetch failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	prompts := s.engine.Refine(corpus, q, ranking.FuzzyOptions{Limit: limit})
	s.respondJSON(w, http.StatusOK, models.NewSearchResponse(prompts))
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	corpus, err := s.store.ListPublic(r.Context())
	if err != nil {
		s.logger.Error("trending corpus fetch failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Cache-Control", searchCacheControl)
	s.respondJSON(w, http.StatusOK, models.NewSearchResponse(s.engine.Trending(corpus)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseLimit resolves the limit query parameter with a guarded parse:
// non-numeric or missing input falls back to the default, and the result is
// clamped to the configured maximum. Malformed input is never an error.
func (s *Server) parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return s.config.Search.DefaultLimit
	}
	if limit > s.config.Search.MaxLimit {
		return s.config.Search.MaxLimit
	}
	return limit
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
