// Package editor implements the client-side reconciliation layer behind the
// spreadsheet-style entry table: baseline snapshots with discard/restore,
// debounced local draft persistence, AI suggestion coordination, the
// declarative column model and page-scoped selection.
//
// Everything here is driven by a single caller at a time (the UI event
// loop); the mutexes exist because asynchronous completions — debounce
// flushes and suggestion resolutions — re-enter from their own goroutines
// and must re-validate against current state by entry identity.
package editor

import (
	"context"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

// EntryService is the remote entry API consumed by a Session.
type EntryService interface {
	Fetch(ctx context.Context, filter entity.EntryFilter) (*entity.EntryPage, error)
	Create(ctx context.Context, entry *entity.Entry) (*entity.Entry, error)
	Update(ctx context.Context, id string, patch *entity.EntryPatch) (*entity.Entry, error)
	Delete(ctx context.Context, id string) error
	CheckDuplicate(ctx context.Context, headword, dialect string) ([]*entity.Entry, error)
}

// SuggestionRequest carries the expression to enrich plus optional context
// (typically the first sense's definition) and a region hint.
type SuggestionRequest struct {
	Expression string `json:"expression"`
	Context    string `json:"context,omitempty"`
	Region     string `json:"region,omitempty"`
}

// DefinitionSuggestion is an AI-proposed definition for an expression.
type DefinitionSuggestion struct {
	Definition     string `json:"definition"`
	UsageNotes     string `json:"usageNotes,omitempty"`
	FormalityLevel string `json:"formalityLevel,omitempty"`
}

// Categorization is an AI-proposed leaf theme id with its rationale. The id
// must be resolved through the taxonomy before display or application.
type Categorization struct {
	ThemeID     int     `json:"themeId"`
	Confidence  float64 `json:"confidence,omitempty"`
	Explanation string  `json:"explanation,omitempty"`
}

// ExampleSuggestion is one AI-proposed example sentence.
type ExampleSuggestion struct {
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
	Scenario    string `json:"scenario,omitempty"`
}

// SuggestionService is the AI enrichment API. All three calls honour
// context cancellation; a cancelled call returns an error satisfying
// errors.Is(err, context.Canceled).
type SuggestionService interface {
	SuggestDefinition(ctx context.Context, req SuggestionRequest) (*DefinitionSuggestion, error)
	Categorize(ctx context.Context, req SuggestionRequest) (*Categorization, error)
	SuggestExamples(ctx context.Context, req SuggestionRequest) ([]ExampleSuggestion, error)
}
