package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/promptsearch/internal/models"
)

// MemoryStore is an in-memory Store used in tests and as an embedded corpus
// holder. It mirrors the SQLite contract: case-insensitive substring
// predicates OR-combined over four fields, public-only, newest first.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []models.PromptDocument
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SearchCandidates filters public prompts matching any token in any of the
// four searchable fields, newest first, up to limit.
func (m *MemoryStore) SearchCandidates(ctx context.Context, tokens []string, limit int) ([]models.PromptDocument, error) {
	if len(tokens) == 0 || limit <= 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []models.PromptDocument
	for _, doc := range m.docs {
		if !doc.Public {
			continue
		}
		if matchesAnyToken(&doc, tokens) {
			matched = append(matched, doc)
		}
	}

	sortNewestFirst(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// ListPublic returns all public prompts, newest first.
func (m *MemoryStore) ListPublic(ctx context.Context) ([]models.PromptDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var public []models.PromptDocument
	for _, doc := range m.docs {
		if doc.Public {
			public = append(public, doc)
		}
	}
	sortNewestFirst(public)
	return public, nil
}

// CreatePrompt inserts a prompt, assigning a UUID when the ID is empty and
// the current time when CreatedAt is zero.
func (m *MemoryStore) CreatePrompt(ctx context.Context, doc *models.PromptDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, *doc)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

func matchesAnyToken(doc *models.PromptDocument, tokens []string) bool {
	title := strings.ToLower(doc.Title)
	description := strings.ToLower(doc.Description)
	promptText := strings.ToLower(doc.PromptText)
	category := strings.ToLower(doc.Category)

	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if tok == "" {
			continue
		}
		if strings.Contains(title, tok) ||
			strings.Contains(description, tok) ||
			strings.Contains(promptText, tok) ||
			strings.Contains(category, tok) {
			return true
		}
	}
	return false
}

func sortNewestFirst(docs []models.PromptDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
}
