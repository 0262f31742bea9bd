// Package confirmation guards duplicate adds behind an explicit user decision.
//
// State flow:
//   - Idle → AwaitingConfirmation on Propose
//   - AwaitingConfirmation → AwaitingConfirmation on Propose (the held value is replaced)
//   - AwaitingConfirmation → Idle on Confirm (commits) or Cancel (discards)
//
// Confirm and Cancel are no-ops while Idle. Nothing here is persisted.
package confirmation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/steveyegge/taskcraft/internal/deduplication"
	"github.com/steveyegge/taskcraft/internal/types"
)

// State of the workflow
type State string

const (
	// StateIdle means no pending confirmation is held
	StateIdle State = "idle"
	// StateAwaiting means one pending entry waits for confirm or cancel
	StateAwaiting State = "awaiting_confirmation"
)

// Triggers recorded with each transition
const (
	TriggerPropose = "propose"
	TriggerConfirm = "confirm"
	TriggerCancel  = "cancel"
)

// Committer creates and persists entries. storage.Storage satisfies it.
type Committer interface {
	CreateTask(ctx context.Context, text string, category types.Category, priority types.Priority, scheduledDate string) (*types.Task, error)
	CreateDeferredItem(ctx context.Context, text string) (*types.DeferredItem, error)
}

// Result holds what a confirmation committed. Exactly one field is set.
type Result struct {
	Task     *types.Task
	Deferred *types.DeferredItem
}

// Workflow holds at most one pending entry awaiting a decision
type Workflow struct {
	committer Committer
	logger    *zap.Logger

	state   State
	pending *types.PendingTask
	match   *deduplication.Match
}

// New creates an idle workflow. A nil logger discards log output.
func New(committer Committer, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		committer: committer,
		logger:    logger,
		state:     StateIdle,
	}
}

// State returns the current state
func (w *Workflow) State() State {
	return w.state
}

// Pending returns the held entry and the match that triggered it.
// ok is false while Idle.
func (w *Workflow) Pending() (pending types.PendingTask, match *deduplication.Match, ok bool) {
	if w.state != StateAwaiting {
		return types.PendingTask{}, nil, false
	}
	return *w.pending, w.match, true
}

// Propose holds pending until the next Confirm or Cancel, replacing any
// entry already held. There is no queue: the last proposal wins.
func (w *Workflow) Propose(pending types.PendingTask, match *deduplication.Match) {
	if pending.Target == "" {
		pending.Target = types.TargetTask
	}
	if w.state == StateAwaiting {
		w.logger.Debug("replacing pending confirmation",
			zap.String("previous", w.pending.Text),
			zap.String("next", pending.Text))
	}
	w.pending = &pending
	w.match = match
	w.transition(StateAwaiting, TriggerPropose)
}

// Confirm commits the held entry and returns to Idle.
// While Idle it does nothing and returns (nil, nil).
// The workflow is Idle afterwards even when the commit fails.
func (w *Workflow) Confirm(ctx context.Context) (*Result, error) {
	if w.state != StateAwaiting {
		return nil, nil
	}

	pending := *w.pending
	w.clear()
	w.transition(StateIdle, TriggerConfirm)

	if w.committer == nil {
		return nil, fmt.Errorf("no committer configured")
	}

	switch pending.Target {
	case types.TargetDeferred:
		item, err := w.committer.CreateDeferredItem(ctx, pending.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to commit deferred item: %w", err)
		}
		return &Result{Deferred: item}, nil
	default:
		task, err := w.committer.CreateTask(ctx, pending.Text, pending.Category, pending.Priority, pending.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("failed to commit task: %w", err)
		}
		return &Result{Task: task}, nil
	}
}

// Cancel discards the held entry, if any, and returns to Idle
func (w *Workflow) Cancel() {
	wasAwaiting := w.state == StateAwaiting
	w.clear()
	if wasAwaiting {
		w.transition(StateIdle, TriggerCancel)
	}
}

func (w *Workflow) clear() {
	w.pending = nil
	w.match = nil
}

func (w *Workflow) transition(to State, trigger string) {
	from := w.state
	w.state = to
	w.logger.Debug("confirmation state transition",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("trigger", trigger))
}
