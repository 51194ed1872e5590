package store

import (
	"context"
	"testing"
	"time"

	"github.com/promptdeck/promptsearch/internal/models"
)

func seedMemory(t *testing.T) *MemoryStore {
	t.Helper()
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	docs := []models.PromptDocument{
		{ID: "old", Title: "Horror Prompts", Public: true, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "new", Title: "More Horror", Public: true, CreatedAt: now},
		{ID: "private", Title: "Horror Draft", Public: false, CreatedAt: now},
		{ID: "desc", Description: "a horror tale", Public: true, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: "cat", Category: "horror", Public: true, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "other", Title: "Cooking", Public: true, CreatedAt: now},
	}
	for i := range docs {
		if err := m.CreatePrompt(ctx, &docs[i]); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func TestMemorySearchCandidates(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()

	got, err := m.SearchCandidates(ctx, []string{"horror"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 public matches, got %d", len(got))
	}

	// Newest first.
	wantOrder := []string{"new", "desc", "old", "cat"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
	for _, doc := range got {
		if doc.ID == "private" {
			t.Error("private prompt leaked into candidates")
		}
	}
}

func TestMemorySearchCandidates_limit(t *testing.T) {
	m := seedMemory(t)
	got, err := m.SearchCandidates(context.Background(), []string{"horror"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected limit of 2, got %d", len(got))
	}
}

func TestMemorySearchCandidates_emptyTokens(t *testing.T) {
	m := seedMemory(t)
	got, err := m.SearchCandidates(context.Background(), nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("empty token set must fetch nothing, got %d", len(got))
	}
}

func TestMemorySearchCandidates_orCombined(t *testing.T) {
	m := seedMemory(t)
	got, err := m.SearchCandidates(context.Background(), []string{"cooking", "horror"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Errorf("tokens must OR-combine, got %d matches", len(got))
	}
}

func TestMemoryListPublic(t *testing.T) {
	m := seedMemory(t)
	got, err := m.ListPublic(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Errorf("expected 5 public prompts, got %d", len(got))
	}
}

func TestMemoryCreatePrompt_assignsID(t *testing.T) {
	m := NewMemoryStore()
	doc := &models.PromptDocument{Title: "No ID", Public: true}
	if err := m.CreatePrompt(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	if doc.ID == "" {
		t.Error("expected an assigned ID")
	}
	if doc.CreatedAt.IsZero() {
		t.Error("expected an assigned creation time")
	}
}
