package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/promptdeck/promptsearch/internal/models"
	"github.com/promptdeck/promptsearch/internal/ranking"
	"github.com/promptdeck/promptsearch/internal/store"
)

// countingStore wraps a MemoryStore and records candidate fetches.
type countingStore struct {
	*store.MemoryStore
	calls      int
	lastTokens []string
	lastLimit  int
}

func (c *countingStore) SearchCandidates(ctx context.Context, tokens []string, limit int) ([]models.PromptDocument, error) {
	c.calls++
	c.lastTokens = tokens
	c.lastLimit = limit
	return c.MemoryStore.SearchCandidates(ctx, tokens, limit)
}

type failingStore struct {
	*store.MemoryStore
}

func (f *failingStore) SearchCandidates(ctx context.Context, tokens []string, limit int) ([]models.PromptDocument, error) {
	return nil, errors.New("store unreachable")
}

func newTestEngine(t *testing.T, st store.Store) *Engine {
	t.Helper()
	return NewEngine(st, nil, nil, nil, zap.NewNop())
}

func seedDocs(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	docs := []models.PromptDocument{
		{ID: "strong", Title: "Horror Prompts", Public: true, CreatedAt: now},
		{ID: "weak", Category: "horror", Public: true, CreatedAt: now.Add(-time.Hour)},
		{ID: "off", Title: "Cooking", Public: true, CreatedAt: now},
	}
	for i := range docs {
		if err := st.CreatePrompt(ctx, &docs[i]); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSearch_shortQuery(t *testing.T) {
	cs := &countingStore{MemoryStore: store.NewMemoryStore()}
	seedDocs(t, cs)
	engine := newTestEngine(t, cs)

	for _, q := range []string{"", " ", "h", "  x  "} {
		got, err := engine.Search(context.Background(), q, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("query %q: expected no results, got %d", q, len(got))
		}
	}
	if cs.calls != 0 {
		t.Errorf("short queries must not hit the store, got %d calls", cs.calls)
	}
}

func TestSearch_punctuationOnlyQuery(t *testing.T) {
	cs := &countingStore{MemoryStore: store.NewMemoryStore()}
	seedDocs(t, cs)
	engine := newTestEngine(t, cs)

	// Long enough to pass the length gate, but tokenizes to nothing; the
	// fetch must short-circuit rather than run unconditionally.
	got, err := engine.Search(context.Background(), "?!...", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
	if cs.calls != 0 {
		t.Errorf("zero-token query must not hit the store, got %d calls", cs.calls)
	}
}

func TestSearch_ranksAndOrders(t *testing.T) {
	cs := &countingStore{MemoryStore: store.NewMemoryStore()}
	seedDocs(t, cs)
	engine := newTestEngine(t, cs)

	got, err := engine.Search(context.Background(), "horror", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "strong" || got[1].ID != "weak" {
		t.Errorf("unexpected order: [%s, %s]", got[0].ID, got[1].ID)
	}
}

func TestSearch_overfetchesDouble(t *testing.T) {
	cs := &countingStore{MemoryStore: store.NewMemoryStore()}
	seedDocs(t, cs)
	engine := newTestEngine(t, cs)

	if _, err := engine.Search(context.Background(), "horror", 5); err != nil {
		t.Fatal(err)
	}
	if cs.lastLimit != 10 {
		t.Errorf("expected overfetch of 2x5=10, got %d", cs.lastLimit)
	}
}

func TestSearch_candidateCap(t *testing.T) {
	cs := &countingStore{MemoryStore: store.NewMemoryStore()}
	seedDocs(t, cs)
	engine := newTestEngine(t, cs)

	if _, err := engine.Search(context.Background(), "horror", 100); err != nil {
		t.Fatal(err)
	}
	if cs.lastLimit != 200 {
		t.Errorf("expected fetch capped at 200, got %d", cs.lastLimit)
	}
}

func TestSearch_expandedTokensReachStore(t *testing.T) {
	cs := &countingStore{MemoryStore: store.NewMemoryStore()}
	seedDocs(t, cs)
	engine := newTestEngine(t, cs)

	if _, err := engine.Search(context.Background(), "horror", 10); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, tok := range cs.lastTokens {
		if tok == "ghost" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected synonym tokens in the fetch, got %v", cs.lastTokens)
	}
}

func TestSearch_cachesIdenticalQueries(t *testing.T) {
	cs := &countingStore{MemoryStore: store.NewMemoryStore()}
	seedDocs(t, cs)
	engine := newTestEngine(t, cs)

	ctx := context.Background()
	first, err := engine.Search(ctx, "horror", 10)
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.Search(ctx, "Horror  ", 10) // normalizes to the same key
	if err != nil {
		t.Fatal(err)
	}
	if cs.calls != 1 {
		t.Errorf("expected one store fetch for identical queries, got %d", cs.calls)
	}
	if len(first) != len(second) {
		t.Errorf("cached result differs: %d vs %d", len(first), len(second))
	}
}

func TestSearch_storeError(t *testing.T) {
	engine := newTestEngine(t, &failingStore{MemoryStore: store.NewMemoryStore()})

	if _, err := engine.Search(context.Background(), "horror", 10); err == nil {
		t.Fatal("expected error when the store is unreachable")
	}
}

func TestSearch_limitTruncates(t *testing.T) {
	ms := store.NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		doc := models.PromptDocument{Title: "Horror Prompts", Public: true, CreatedAt: time.Now()}
		if err := ms.CreatePrompt(ctx, &doc); err != nil {
			t.Fatal(err)
		}
	}
	engine := newTestEngine(t, ms)

	got, err := engine.Search(ctx, "horror", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 results, got %d", len(got))
	}
}

func TestRefine_shortQueryFallsBackToTrending(t *testing.T) {
	engine := newTestEngine(t, store.NewMemoryStore())

	corpus := []models.PromptDocument{
		{ID: "cold", SavesCount: 1},
		{ID: "hot", SavesCount: 100},
	}
	got := engine.Refine(corpus, "", ranking.FuzzyOptions{})
	if len(got) != 2 || got[0].ID != "hot" {
		t.Fatalf("expected trending order, got %v", got)
	}
}

func TestRefine_queryUsesFuzzy(t *testing.T) {
	engine := newTestEngine(t, store.NewMemoryStore())

	corpus := []models.PromptDocument{
		{ID: "miss", Title: "Cooking Tips"},
		{ID: "hit", Title: "Horror Night"},
	}
	got := engine.Refine(corpus, "horror", ranking.FuzzyOptions{})
	if len(got) != 1 || got[0].ID != "hit" {
		t.Fatalf("expected fuzzy match only, got %v", got)
	}
}
