// Package synonym provides one-hop query expansion over a static topic dictionary.
package synonym

import (
	"strings"
	"unicode"
)

// defaultEntries maps canonical topic words to related terms. Expansion is
// single-hop: synonyms of synonyms are never pursued.
var defaultEntries = map[string][]string{
	"horror":   {"scary", "fear", "ghost", "spooky", "terrifying", "frightening"},
	"writing":  {"story", "author", "fiction", "novel", "essay", "prose"},
	"art":      {"drawing", "painting", "illustration", "sketch", "artwork", "visual"},
	"music":    {"song", "melody", "lyrics", "audio", "sound", "tune"},
	"coding":   {"programming", "code", "developer", "software", "script"},
	"business": {"startup", "marketing", "entrepreneur", "sales", "finance"},
	"comedy":   {"funny", "humor", "joke", "satire", "parody"},
	"romance":  {"love", "romantic", "relationship", "dating"},
	"action":   {"adventure", "thriller", "fight", "chase"},
	"fantasy":  {"magic", "dragon", "wizard", "myth", "fairy"},
	"sci":      {"scifi", "science", "space", "futuristic", "alien", "robot"},
}

// Dictionary is an immutable token-to-synonyms mapping. Lookups are pure;
// the dictionary is loaded once at process start and never mutated.
type Dictionary struct {
	entries map[string][]string
}

// Default returns a dictionary built from the built-in topic entries.
func Default() *Dictionary {
	return New(defaultEntries)
}

// New builds a dictionary from entries. Keys are lowercased; the input map
// is copied so later mutation by the caller cannot leak in.
func New(entries map[string][]string) *Dictionary {
	copied := make(map[string][]string, len(entries))
	for key, syns := range entries {
		copied[strings.ToLower(key)] = append([]string(nil), syns...)
	}
	return &Dictionary{entries: copied}
}

// Expand returns the synonyms for token, or nil when the token is unknown.
// Unknown tokens are not an error; they simply contribute no extra terms.
func (d *Dictionary) Expand(token string) []string {
	syns, ok := d.entries[strings.ToLower(token)]
	if !ok {
		return nil
	}
	return append([]string(nil), syns...)
}

// ExpandQuery lowercases and tokenizes query, then unions each token with its
// one-hop synonyms. The result always contains every raw token, deduplicated
// in first-seen order.
func (d *Dictionary) ExpandQuery(query string) []string {
	tokens := Tokens(query)
	if len(tokens) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tokens)*4)
	expanded := make([]string, 0, len(tokens)*4)
	add := func(term string) {
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		expanded = append(expanded, term)
	}

	for _, tok := range tokens {
		add(tok)
		for _, syn := range d.Expand(tok) {
			add(strings.ToLower(syn))
		}
	}
	return expanded
}

// Tokens splits query on whitespace, lowercases each token, trims
// punctuation from the edges, and drops empties. A query of pure
// punctuation therefore yields no tokens.
func Tokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
