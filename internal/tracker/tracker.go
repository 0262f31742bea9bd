// Package tracker is the application context: it owns the store, the
// duplicate detector and the confirmation workflow, and exposes every
// user-level operation on the task lists.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/steveyegge/taskcraft/internal/confirmation"
	"github.com/steveyegge/taskcraft/internal/deduplication"
	"github.com/steveyegge/taskcraft/internal/priorities"
	"github.com/steveyegge/taskcraft/internal/storage"
	"github.com/steveyegge/taskcraft/internal/types"
)

// Tracker coordinates the task lists for one user
type Tracker struct {
	store    storage.Storage
	detector deduplication.Deduplicator
	workflow *confirmation.Workflow
	logger   *zap.Logger

	defaultTheme types.Theme
	now          func() time.Time
}

// Option configures a Tracker
type Option func(*Tracker)

// WithLogger sets the logger used by the tracker and its workflow
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithDefaultTheme sets the theme reported when none has been stored
func WithDefaultTheme(theme types.Theme) Option {
	return func(t *Tracker) {
		if theme.IsValid() {
			t.defaultTheme = theme
		}
	}
}

// WithClock replaces time.Now, which decides what "today" is
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates a tracker over store using detector for duplicate checks
func New(store storage.Storage, detector deduplication.Deduplicator, opts ...Option) *Tracker {
	t := &Tracker{
		store:        store,
		detector:     detector,
		logger:       zap.NewNop(),
		defaultTheme: types.ThemeLight,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.workflow = confirmation.New(store, t.logger.Named("confirmation"))
	return t
}

// Today returns the current local date in types.DateLayout
func (t *Tracker) Today() string {
	return t.now().Format(types.DateLayout)
}

// Workflow exposes the confirmation workflow holding any pending duplicate
func (t *Tracker) Workflow() *confirmation.Workflow {
	return t.workflow
}

// AddResult describes the outcome of an add operation. Exactly one of the
// following holds:
//   - Task or Deferred is set: the entry was created
//   - Pending is true: a duplicate was found and the entry awaits Confirm/Cancel
//   - Cancelled is true: a duplicate was found and the decider declined
//
// Replaced is set when holding this entry discarded an earlier held one.
type AddResult struct {
	Task      *types.Task
	Deferred  *types.DeferredItem
	Match     *deduplication.Match
	Pending   bool
	Cancelled bool
	Replaced  *types.PendingTask
}

// AddTask adds a task for today after checking today's tasks and the deferred
// list for a similar entry. When one is found the task is held in the
// workflow; if decider is non-nil it is asked immediately, otherwise the
// caller resolves later with ConfirmPending or CancelPending.
func (t *Tracker) AddTask(ctx context.Context, text string, category types.Category, priority types.Priority, decider confirmation.Decider) (*AddResult, error) {
	text, err := types.CleanText(text)
	if err != nil {
		return nil, err
	}
	if category == "" {
		category = types.CategoryPersonal
	}
	if priority == "" {
		priority = types.PriorityMedium
	}

	pending := types.PendingTask{
		Target:   types.TargetTask,
		Text:     text,
		Category: category,
		Priority: priority,
	}
	if err := t.validatePending(pending); err != nil {
		return nil, err
	}

	match, err := t.findSimilar(ctx, text, t.Today())
	if err != nil {
		return nil, err
	}
	return t.add(ctx, pending, match, decider)
}

// AddPrePlanned schedules a task for date (YYYY-MM-DD). The duplicate check
// runs against that date's tasks and the deferred list.
func (t *Tracker) AddPrePlanned(ctx context.Context, text, date string, category types.Category, decider confirmation.Decider) (*AddResult, error) {
	text, err := types.CleanText(text)
	if err != nil {
		return nil, err
	}
	if _, err := types.ParseDate(date); err != nil {
		return nil, err
	}
	if category == "" {
		category = types.CategoryPersonal
	}

	pending := types.PendingTask{
		Target:        types.TargetTask,
		Text:          text,
		Category:      category,
		Priority:      types.PriorityMedium,
		ScheduledDate: date,
	}
	if err := t.validatePending(pending); err != nil {
		return nil, err
	}

	match, err := t.findSimilar(ctx, text, date)
	if err != nil {
		return nil, err
	}
	return t.add(ctx, pending, match, decider)
}

// AddDeferred adds a "do later" item after the stricter deferred-only check
func (t *Tracker) AddDeferred(ctx context.Context, text string, decider confirmation.Decider) (*AddResult, error) {
	text, err := types.CleanText(text)
	if err != nil {
		return nil, err
	}

	items, err := t.store.GetDeferredItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deferred items: %w", err)
	}
	match := t.detector.FindSimilarDeferred(text, items)

	pending := types.PendingTask{Target: types.TargetDeferred, Text: text}
	return t.add(ctx, pending, match, decider)
}

func (t *Tracker) validatePending(p types.PendingTask) error {
	if !p.Category.IsValid() {
		return fmt.Errorf("invalid category: %s", p.Category)
	}
	if !p.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", p.Priority)
	}
	return nil
}

func (t *Tracker) findSimilar(ctx context.Context, text, date string) (*deduplication.Match, error) {
	tasks, err := t.store.GetTasksForScope(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	items, err := t.store.GetDeferredItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deferred items: %w", err)
	}
	return t.detector.FindSimilar(text, tasks, items), nil
}

// add creates the entry directly when there is no match, otherwise hands it
// to the workflow. A direct create leaves any held confirmation alone.
func (t *Tracker) add(ctx context.Context, pending types.PendingTask, match *deduplication.Match, decider confirmation.Decider) (*AddResult, error) {
	if match == nil {
		if pending.Target == types.TargetDeferred {
			item, err := t.store.CreateDeferredItem(ctx, pending.Text)
			if err != nil {
				return nil, err
			}
			return &AddResult{Deferred: item}, nil
		}
		task, err := t.store.CreateTask(ctx, pending.Text, pending.Category, pending.Priority, pending.ScheduledDate)
		if err != nil {
			return nil, err
		}
		return &AddResult{Task: task}, nil
	}

	t.logger.Info("possible duplicate",
		zap.String("text", pending.Text),
		zap.String("existing", match.Text()),
		zap.String("kind", string(match.Kind)),
		zap.Float64("similarity", match.Similarity),
		zap.String("concept", match.Concept))

	if decider == nil {
		var replaced *types.PendingTask
		if prev, _, ok := t.workflow.Pending(); ok {
			replaced = &prev
			t.logger.Info("held entry replaced", zap.String("text", prev.Text))
		}
		t.workflow.Propose(pending, match)
		return &AddResult{Match: match, Pending: true, Replaced: replaced}, nil
	}

	// An immediate decision runs on its own workflow so an entry held on the
	// shared one survives.
	wf := confirmation.New(t.store, t.logger.Named("confirmation"))
	wf.Propose(pending, match)
	res, err := wf.Resolve(ctx, decider)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &AddResult{Match: match, Cancelled: true}, nil
	}
	return &AddResult{Task: res.Task, Deferred: res.Deferred, Match: match}, nil
}

// ConfirmPending commits the held duplicate. It returns (nil, nil) when
// nothing is pending.
func (t *Tracker) ConfirmPending(ctx context.Context) (*confirmation.Result, error) {
	return t.workflow.Confirm(ctx)
}

// CancelPending discards the held duplicate, if any
func (t *Tracker) CancelPending() {
	t.workflow.Cancel()
}

// ToggleTask flips a task's completion state
func (t *Tracker) ToggleTask(ctx context.Context, id string) (*types.Task, error) {
	task, err := t.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.store.UpdateTask(ctx, id, !task.Completed)
}

// DeleteTask removes a task
func (t *Tracker) DeleteTask(ctx context.Context, id string) error {
	return t.store.DeleteTask(ctx, id)
}

// MoveToDeferred turns a task into a deferred item
func (t *Tracker) MoveToDeferred(ctx context.Context, id string) (*types.DeferredItem, error) {
	return t.store.MoveTaskToDeferred(ctx, id)
}

// MoveToToday turns a deferred item into a personal, medium task for today
func (t *Tracker) MoveToToday(ctx context.Context, id string) (*types.Task, error) {
	return t.store.MoveDeferredToToday(ctx, id)
}

// DeleteDeferred removes a deferred item
func (t *Tracker) DeleteDeferred(ctx context.Context, id string) error {
	return t.store.DeleteDeferredItem(ctx, id)
}

// TodayTasks returns today's tasks in display order
func (t *Tracker) TodayTasks(ctx context.Context) ([]*types.Task, error) {
	return t.TasksForDate(ctx, t.Today())
}

// TasksForDate returns the tasks belonging to date in display order
func (t *Tracker) TasksForDate(ctx context.Context, date string) ([]*types.Task, error) {
	if _, err := types.ParseDate(date); err != nil {
		return nil, err
	}
	tasks, err := t.store.GetTasksForScope(ctx, date)
	if err != nil {
		return nil, err
	}
	priorities.SortTasks(tasks)
	return tasks, nil
}

// DeferredItems returns the deferred list in insertion order
func (t *Tracker) DeferredItems(ctx context.Context) ([]*types.DeferredItem, error) {
	return t.store.GetDeferredItems(ctx)
}

// Stats summarizes today's list and the deferred list
func (t *Tracker) Stats(ctx context.Context) (types.Stats, error) {
	tasks, err := t.store.GetTasksForScope(ctx, t.Today())
	if err != nil {
		return types.Stats{}, err
	}
	items, err := t.store.GetDeferredItems(ctx)
	if err != nil {
		return types.Stats{}, err
	}
	return priorities.Summarize(tasks, len(items)), nil
}

// Search returns today's tasks whose text contains term, ignoring case.
// An empty term matches everything.
func (t *Tracker) Search(ctx context.Context, term string) ([]*types.Task, error) {
	tasks, err := t.TodayTasks(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	var found []*types.Task
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Text), term) {
			found = append(found, task)
		}
	}
	return found, nil
}

// Theme returns the stored theme, or the default when none is stored
func (t *Tracker) Theme(ctx context.Context) (types.Theme, error) {
	value, err := t.store.GetSetting(ctx, storage.SettingTheme)
	if err != nil {
		return "", err
	}
	theme := types.Theme(value)
	if !theme.IsValid() {
		return t.defaultTheme, nil
	}
	return theme, nil
}

// SetTheme stores the theme
func (t *Tracker) SetTheme(ctx context.Context, theme types.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("invalid theme %q (expected light or dark)", theme)
	}
	return t.store.SetSetting(ctx, storage.SettingTheme, string(theme))
}
