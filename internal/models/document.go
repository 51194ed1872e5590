// Package models defines core data structures for prompts and search results.
package models

import "time"

// PromptDocument is the unit being ranked: one prompt as read from the store.
// Every field except ID may be absent; textual fields default to the empty
// string and counters to zero, so ranking code can read them without nil
// checks. A document is an immutable snapshot for the duration of one
// ranking computation.
type PromptDocument struct {
	ID             string    `json:"id" yaml:"id"`
	Slug           string    `json:"slug,omitempty" yaml:"slug"`
	Title          string    `json:"title,omitempty" yaml:"title"`
	Description    string    `json:"description,omitempty" yaml:"description"`
	PromptText     string    `json:"promptText,omitempty" yaml:"prompt_text"`
	Tags           []string  `json:"tags,omitempty" yaml:"tags"`
	Category       string    `json:"category,omitempty" yaml:"category"`
	FavoriteCount  int       `json:"favoriteCount,omitempty" yaml:"favorite_count"`
	SavesCount     int       `json:"savesCount,omitempty" yaml:"saves_count"`
	Views          int       `json:"views,omitempty" yaml:"views"`
	AudioPlayCount int       `json:"audioPlayCount,omitempty" yaml:"audio_play_count"`
	Public         bool      `json:"public" yaml:"public"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// BodyText returns the description and prompt text joined with a space.
// This is the haystack for per-occurrence body scoring.
func (d *PromptDocument) BodyText() string {
	return d.Description + " " + d.PromptText
}
