package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/promptdeck/promptsearch/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS prompts (
		id TEXT PRIMARY KEY,
		slug TEXT,
		title TEXT,
		description TEXT,
		prompt_text TEXT,
		tags TEXT,
		category TEXT,
		favorite_count INTEGER DEFAULT 0,
		saves_count INTEGER DEFAULT 0,
		views INTEGER DEFAULT 0,
		audio_play_count INTEGER DEFAULT 0,
		public INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_prompts_created_at ON prompts(created_at);
	CREATE INDEX IF NOT EXISTS idx_prompts_public ON prompts(public);
	`
	_, err := db.Exec(schema)
	return err
}

const promptColumns = `id, slug, title, description, prompt_text, tags, category,
	favorite_count, saves_count, views, audio_play_count, public, created_at`

// SearchCandidates builds one OR-combined substring predicate per token over
// title, description, prompt text, and category, restricted to public rows,
// newest first. SQLite LIKE is case-insensitive for ASCII, which matches the
// case-insensitive contains semantics the scorer assumes.
func (s *SQLiteStore) SearchCandidates(ctx context.Context, tokens []string, limit int) ([]models.PromptDocument, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		return nil, nil
	}

	conds := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*4+1)
	for _, tok := range tokens {
		pattern := "%" + escapeLike(tok) + "%"
		conds = append(conds,
			`(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR prompt_text LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern, pattern)
	}
	args = append(args, limit)

	query := `SELECT ` + promptColumns + ` FROM prompts
		WHERE public = 1 AND (` + strings.Join(conds, " OR ") + `)
		ORDER BY created_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("candidate query failed: %w", err)
	}
	defer rows.Close()

	return scanPrompts(rows)
}

// ListPublic returns all public prompts, newest first.
func (s *SQLiteStore) ListPublic(ctx context.Context) ([]models.PromptDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+promptColumns+` FROM prompts WHERE public = 1 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	return scanPrompts(rows)
}

// CreatePrompt inserts a prompt, assigning a UUID when the ID is empty and
// the current time when CreatedAt is zero.
func (s *SQLiteStore) CreatePrompt(ctx context.Context, doc *models.PromptDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	tagsJSON, err := json.Marshal(doc.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO prompts (`+promptColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Slug, doc.Title, doc.Description, doc.PromptText, string(tagsJSON),
		doc.Category, doc.FavoriteCount, doc.SavesCount, doc.Views, doc.AudioPlayCount,
		boolToInt(doc.Public), doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prompt: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanPrompts(rows *sql.Rows) ([]models.PromptDocument, error) {
	var docs []models.PromptDocument
	for rows.Next() {
		var doc models.PromptDocument
		var tagsJSON sql.NullString
		var public int
		if err := rows.Scan(
			&doc.ID, &doc.Slug, &doc.Title, &doc.Description, &doc.PromptText,
			&tagsJSON, &doc.Category, &doc.FavoriteCount, &doc.SavesCount,
			&doc.Views, &doc.AudioPlayCount, &public, &doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		doc.Public = public != 0
		if tagsJSON.Valid && tagsJSON.String != "" {
			if err := json.Unmarshal([]byte(tagsJSON.String), &doc.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
			}
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// escapeLike escapes LIKE metacharacters so tokens are matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
