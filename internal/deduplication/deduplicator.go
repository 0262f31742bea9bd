package deduplication

import (
	"fmt"

	"github.com/steveyegge/taskcraft/internal/types"
)

// Deduplicator finds an existing entry similar enough to new input text.
// Both methods return nil when nothing qualifies, including for empty pools.
type Deduplicator interface {
	// FindSimilar scans tasks then deferred items using the task-scope rule
	// (similarity above TaskThreshold, or a shared synonym concept).
	FindSimilar(newText string, tasks []*types.Task, deferred []*types.DeferredItem) *Match

	// FindSimilarDeferred scans deferred items only, using DeferredThreshold
	// and no synonym check.
	FindSimilarDeferred(newText string, deferred []*types.DeferredItem) *Match
}

// Kind says which collection a match came from
type Kind string

const (
	KindTask     Kind = "task"
	KindDeferred Kind = "deferred"
)

// Match describes the existing entry that the new text duplicates
type Match struct {
	// Kind identifies which of Task or Deferred is set
	Kind     Kind                `json:"kind"`
	Task     *types.Task         `json:"task,omitempty"`
	Deferred *types.DeferredItem `json:"deferred,omitempty"`

	// Similarity is the normalized edit-distance score against the new text
	Similarity float64 `json:"similarity"`

	// Concept is the synonym-table keyword when the match came from the
	// synonym rule rather than from similarity
	Concept string `json:"concept,omitempty"`

	// Position is the index of the candidate in the scanned pool
	Position int `json:"position"`
}

// ID returns the id of the matched entry
func (m *Match) ID() string {
	if m.Kind == KindDeferred {
		return m.Deferred.ID
	}
	return m.Task.ID
}

// Text returns the description of the matched entry
func (m *Match) Text() string {
	if m.Kind == KindDeferred {
		return m.Deferred.Text
	}
	return m.Task.Text
}

// BySynonym reports whether the synonym rule, not similarity, produced the match
func (m *Match) BySynonym() bool {
	return m.Concept != ""
}

// Validate checks if the match has consistent values
func (m *Match) Validate() error {
	if m.Similarity < 0.0 || m.Similarity > 1.0 {
		return fmt.Errorf("similarity must be between 0.0 and 1.0 (got %.2f)", m.Similarity)
	}
	switch m.Kind {
	case KindTask:
		if m.Task == nil || m.Deferred != nil {
			return fmt.Errorf("task match must carry exactly the task")
		}
	case KindDeferred:
		if m.Deferred == nil || m.Task != nil {
			return fmt.Errorf("deferred match must carry exactly the deferred item")
		}
	default:
		return fmt.Errorf("invalid match kind: %q", m.Kind)
	}
	if m.Position < 0 {
		return fmt.Errorf("position cannot be negative (got %d)", m.Position)
	}
	return nil
}
