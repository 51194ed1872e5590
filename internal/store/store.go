// Package store defines the prompt store collaborator contract and its
// SQLite and in-memory implementations.
package store

import (
	"context"

	"github.com/promptdeck/promptsearch/internal/models"
)

// Store is the only capability the ranking core depends on: substring
// candidate fetches over public prompts, a full public listing for the
// client-side reranker, and inserts for seeding.
type Store interface {
	// SearchCandidates returns up to limit public prompts where any of the
	// tokens appears as a substring of title, description, prompt text, or
	// category (case-insensitive, OR-combined), ordered newest first.
	// An empty token set returns no candidates; it never triggers an
	// unconditional fetch.
	SearchCandidates(ctx context.Context, tokens []string, limit int) ([]models.PromptDocument, error)

	// ListPublic returns all public prompts ordered newest first.
	ListPublic(ctx context.Context) ([]models.PromptDocument, error)

	// CreatePrompt inserts a prompt, assigning an ID when absent.
	CreatePrompt(ctx context.Context, doc *models.PromptDocument) error

	// Close releases underlying resources.
	Close() error
}
