package confirmation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/taskcraft/internal/deduplication"
	"github.com/steveyegge/taskcraft/internal/types"
)

// recordingCommitter captures every create call
type recordingCommitter struct {
	tasks    []types.PendingTask
	deferred []string
	err      error
}

func (r *recordingCommitter) CreateTask(_ context.Context, text string, category types.Category, priority types.Priority, scheduledDate string) (*types.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, types.PendingTask{Text: text, Category: category, Priority: priority, ScheduledDate: scheduledDate})
	return &types.Task{ID: "t-1", Text: text, Category: category, Priority: priority, ScheduledDate: scheduledDate}, nil
}

func (r *recordingCommitter) CreateDeferredItem(_ context.Context, text string) (*types.DeferredItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.deferred = append(r.deferred, text)
	return &types.DeferredItem{ID: "d-1", Text: text}, nil
}

func pending(text string) types.PendingTask {
	return types.PendingTask{Text: text, Category: types.CategoryWork, Priority: types.PriorityHigh}
}

func TestNewWorkflowIsIdle(t *testing.T) {
	w := New(&recordingCommitter{}, nil)
	assert.Equal(t, StateIdle, w.State())

	_, match, ok := w.Pending()
	assert.False(t, ok)
	assert.Nil(t, match)
}

func TestProposeThenConfirmCommits(t *testing.T) {
	c := &recordingCommitter{}
	w := New(c, nil)

	match := &deduplication.Match{Kind: deduplication.KindTask, Task: &types.Task{ID: "old", Text: "go to the gym"}}
	w.Propose(pending("workout session"), match)

	assert.Equal(t, StateAwaiting, w.State())
	held, heldMatch, ok := w.Pending()
	require.True(t, ok)
	assert.Equal(t, "workout session", held.Text)
	assert.Equal(t, types.TargetTask, held.Target, "empty target defaults to task")
	assert.Same(t, match, heldMatch)
	assert.Empty(t, c.tasks, "nothing is committed before confirm")

	res, err := w.Confirm(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotNil(t, res.Task)
	assert.Nil(t, res.Deferred)
	assert.Equal(t, "workout session", res.Task.Text)
	assert.Equal(t, types.CategoryWork, res.Task.Category)
	assert.Equal(t, types.PriorityHigh, res.Task.Priority)

	assert.Len(t, c.tasks, 1)
	assert.Equal(t, StateIdle, w.State())
}

func TestProposeOverwritesHeldValue(t *testing.T) {
	c := &recordingCommitter{}
	w := New(c, nil)

	w.Propose(pending("X"), nil)
	w.Propose(pending("Y"), nil)

	res, err := w.Confirm(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Y", res.Task.Text)
	require.Len(t, c.tasks, 1, "only the last proposal is committed")
	assert.Equal(t, "Y", c.tasks[0].Text)
}

func TestCancelDiscards(t *testing.T) {
	c := &recordingCommitter{}
	w := New(c, nil)

	w.Propose(pending("X"), nil)
	w.Cancel()
	assert.Equal(t, StateIdle, w.State())

	res, err := w.Confirm(context.Background())
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, c.tasks)
}

func TestConfirmAndCancelWhileIdleAreNoOps(t *testing.T) {
	c := &recordingCommitter{}
	w := New(c, nil)

	w.Cancel()
	assert.Equal(t, StateIdle, w.State())

	res, err := w.Confirm(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, c.tasks)
	assert.Empty(t, c.deferred)
}

func TestConfirmDeferredTarget(t *testing.T) {
	c := &recordingCommitter{}
	w := New(c, nil)

	w.Propose(types.PendingTask{Target: types.TargetDeferred, Text: "read a book"}, nil)
	res, err := w.Confirm(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.Task)
	require.NotNil(t, res.Deferred)
	assert.Equal(t, "read a book", res.Deferred.Text)
	assert.Equal(t, []string{"read a book"}, c.deferred)
	assert.Empty(t, c.tasks)
}

func TestConfirmFailureReturnsToIdle(t *testing.T) {
	boom := errors.New("disk full")
	w := New(&recordingCommitter{err: boom}, nil)

	w.Propose(pending("X"), nil)
	res, err := w.Confirm(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, res)
	assert.Equal(t, StateIdle, w.State())

	// second confirm has nothing to commit
	res, err = w.Confirm(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestConfirmWithoutCommitter(t *testing.T) {
	w := New(nil, nil)
	w.Propose(pending("X"), nil)

	_, err := w.Confirm(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StateIdle, w.State())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		decider    Decider
		wantCommit bool
		wantErr    bool
	}{
		{name: "confirm", decider: Always(DecisionConfirm), wantCommit: true},
		{name: "cancel", decider: Always(DecisionCancel), wantCommit: false},
		{
			name: "prompt error",
			decider: DeciderFunc(func(context.Context, *deduplication.Match, types.PendingTask) (Decision, error) {
				return DecisionConfirm, errors.New("stdin closed")
			}),
			wantCommit: false,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &recordingCommitter{}
			w := New(c, nil)
			w.Propose(pending("walk the dog"), nil)

			res, err := w.Resolve(context.Background(), tt.decider)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantCommit {
				require.NotNil(t, res)
				assert.Len(t, c.tasks, 1)
			} else {
				assert.Nil(t, res)
				assert.Empty(t, c.tasks)
			}
			assert.Equal(t, StateIdle, w.State())
		})
	}
}

func TestResolveWhileIdleDoesNotPrompt(t *testing.T) {
	asked := false
	w := New(&recordingCommitter{}, nil)

	res, err := w.Resolve(context.Background(), DeciderFunc(func(context.Context, *deduplication.Match, types.PendingTask) (Decision, error) {
		asked = true
		return DecisionConfirm, nil
	}))
	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.False(t, asked)
}

func TestResolvePassesMatchToDecider(t *testing.T) {
	w := New(&recordingCommitter{}, nil)
	match := &deduplication.Match{Kind: deduplication.KindDeferred, Deferred: &types.DeferredItem{ID: "d", Text: "clean the house"}}
	w.Propose(pending("tidy up"), match)

	var got *deduplication.Match
	var gotPending types.PendingTask
	_, err := w.Resolve(context.Background(), DeciderFunc(func(_ context.Context, m *deduplication.Match, p types.PendingTask) (Decision, error) {
		got = m
		gotPending = p
		return DecisionCancel, nil
	}))
	require.NoError(t, err)
	assert.Same(t, match, got)
	assert.Equal(t, "tidy up", gotPending.Text)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "confirm", DecisionConfirm.String())
	assert.Equal(t, "cancel", DecisionCancel.String())
}

func TestMessage(t *testing.T) {
	task := &deduplication.Match{Kind: deduplication.KindTask, Task: &types.Task{Text: "go to the gym"}}
	item := &deduplication.Match{Kind: deduplication.KindDeferred, Deferred: &types.DeferredItem{Text: "read a book"}}

	assert.Equal(t,
		`You already have "go to the gym". Do you still want to add "workout"?`,
		Message(task, types.PendingTask{Text: "workout"}))
	assert.Equal(t,
		`You already have "read a book" in do later. Add anyway?`,
		Message(item, types.PendingTask{Target: types.TargetDeferred, Text: "read books"}))
	assert.Equal(t,
		`You already have "go to the gym". Schedule anyway?`,
		Message(task, types.PendingTask{Text: "gym", ScheduledDate: "2026-10-20"}))
}
