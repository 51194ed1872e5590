package models

// SearchResponse is the response body for search and trending endpoints.
// Prompts is always present, never null, and carries no internal scores.
type SearchResponse struct {
	Prompts []PromptDocument `json:"prompts"`
}

// NewSearchResponse wraps prompts in a response, coalescing nil to an empty
// slice so the JSON encoding is always an array.
func NewSearchResponse(prompts []PromptDocument) SearchResponse {
	if prompts == nil {
		prompts = []PromptDocument{}
	}
	return SearchResponse{Prompts: prompts}
}
