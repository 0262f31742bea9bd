package confirmation

import (
	"context"
	"fmt"

	"github.com/steveyegge/taskcraft/internal/deduplication"
	"github.com/steveyegge/taskcraft/internal/types"
)

// Decision is the user's answer to a duplicate prompt
type Decision int

const (
	DecisionCancel Decision = iota
	DecisionConfirm
)

func (d Decision) String() string {
	if d == DecisionConfirm {
		return "confirm"
	}
	return "cancel"
}

// Decider asks whether to add pending even though it resembles match.
// Implementations may show a dialog, read a terminal line, or answer
// programmatically.
type Decider interface {
	PromptDuplicate(ctx context.Context, match *deduplication.Match, pending types.PendingTask) (Decision, error)
}

// DeciderFunc adapts a function to the Decider interface
type DeciderFunc func(ctx context.Context, match *deduplication.Match, pending types.PendingTask) (Decision, error)

// PromptDuplicate calls f
func (f DeciderFunc) PromptDuplicate(ctx context.Context, match *deduplication.Match, pending types.PendingTask) (Decision, error) {
	return f(ctx, match, pending)
}

// Always returns a Decider that answers d without asking
func Always(d Decision) Decider {
	return DeciderFunc(func(context.Context, *deduplication.Match, types.PendingTask) (Decision, error) {
		return d, nil
	})
}

// Resolve asks decider about the held entry and immediately confirms or
// cancels. This is the synchronous form of the workflow used by blocking
// prompts. It returns (nil, nil) when Idle or when the answer is cancel.
// If the decider fails the entry is discarded.
func (w *Workflow) Resolve(ctx context.Context, decider Decider) (*Result, error) {
	pending, match, ok := w.Pending()
	if !ok {
		return nil, nil
	}

	decision, err := decider.PromptDuplicate(ctx, match, pending)
	if err != nil {
		w.Cancel()
		return nil, fmt.Errorf("duplicate prompt failed: %w", err)
	}

	if decision != DecisionConfirm {
		w.Cancel()
		return nil, nil
	}
	return w.Confirm(ctx)
}
