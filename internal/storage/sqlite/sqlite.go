package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/steveyegge/taskcraft/internal/storage/migrations"
	"github.com/steveyegge/taskcraft/internal/types"
)

// ErrNotFound is returned when a task or deferred item id does not exist
var ErrNotFound = errors.New("not found")

// MemoryPath opens a private in-memory database (useful for tests)
const MemoryPath = ":memory:"

// SQLiteStorage persists the task and deferred collections in a SQLite
// key-value table. Every mutation reads the affected collections, changes
// them and writes them back inside one transaction.
type SQLiteStorage struct {
	db    *sql.DB
	path  string
	now   func() time.Time
	newID func() string
}

// New opens (creating if needed) the database at path and applies pending migrations
func New(path string) (*SQLiteStorage, error) {
	ctx := context.Background()

	if path != MemoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single connection: the CLI is sequential and :memory: databases are per-connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if path != MemoryPath {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}

	if err := migrations.NewManager(schemaMigrations...).Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{
		db:    db,
		path:  path,
		now:   time.Now,
		newID: uuid.NewString,
	}, nil
}

// Path returns the database location this storage was opened with
func (s *SQLiteStorage) Path() string {
	return s.path
}

// SchemaVersion returns the applied migration version
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	return migrations.Version(ctx, s.db)
}

func (s *SQLiteStorage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTasksForScope returns the tasks belonging to date (YYYY-MM-DD): tasks
// scheduled for it, plus unscheduled tasks created on it in local time.
// An empty date returns every task.
func (s *SQLiteStorage) GetTasksForScope(ctx context.Context, date string) ([]*types.Task, error) {
	tasks, err := loadTasks(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if date == "" {
		return tasks, nil
	}

	var scoped []*types.Task
	for _, t := range tasks {
		if t.IsForDate(date) {
			scoped = append(scoped, t)
		}
	}
	return scoped, nil
}

// GetDeferredItems returns the whole deferred list in insertion order
func (s *SQLiteStorage) GetDeferredItems(ctx context.Context) ([]*types.DeferredItem, error) {
	return loadDeferred(ctx, s.db)
}

// GetTask returns the task with the given id
func (s *SQLiteStorage) GetTask(ctx context.Context, id string) (*types.Task, error) {
	tasks, err := loadTasks(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if i := indexTask(tasks, id); i >= 0 {
		return tasks[i], nil
	}
	return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

// GetDeferredItem returns the deferred item with the given id
func (s *SQLiteStorage) GetDeferredItem(ctx context.Context, id string) (*types.DeferredItem, error) {
	items, err := loadDeferred(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if i := indexDeferred(items, id); i >= 0 {
		return items[i], nil
	}
	return nil, fmt.Errorf("deferred item %s: %w", id, ErrNotFound)
}

// CreateTask appends a new incomplete task. Empty category and priority get
// their defaults; scheduledDate is empty for a today task.
func (s *SQLiteStorage) CreateTask(ctx context.Context, text string, category types.Category, priority types.Priority, scheduledDate string) (*types.Task, error) {
	task := &types.Task{
		ID:            s.newID(),
		Text:          text,
		Category:      category,
		Priority:      priority,
		CreatedAt:     s.now(),
		ScheduledDate: scheduledDate,
	}
	task.ApplyDefaults()
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		tasks, err := loadTasks(ctx, tx)
		if err != nil {
			return err
		}
		return saveTasks(ctx, tx, append(tasks, task))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// CreateDeferredItem appends a new item to the deferred list
func (s *SQLiteStorage) CreateDeferredItem(ctx context.Context, text string) (*types.DeferredItem, error) {
	item := &types.DeferredItem{
		ID:        s.newID(),
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deferred item: %w", err)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		items, err := loadDeferred(ctx, tx)
		if err != nil {
			return err
		}
		return saveDeferred(ctx, tx, append(items, item))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create deferred item: %w", err)
	}
	return item, nil
}

// UpdateTask sets the completion state of a task and returns the updated task
func (s *SQLiteStorage) UpdateTask(ctx context.Context, id string, completed bool) (*types.Task, error) {
	var updated *types.Task
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		tasks, err := loadTasks(ctx, tx)
		if err != nil {
			return err
		}
		i := indexTask(tasks, id)
		if i < 0 {
			return fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		tasks[i].Completed = completed
		updated = tasks[i]
		return saveTasks(ctx, tx, tasks)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask removes a task
func (s *SQLiteStorage) DeleteTask(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		tasks, err := loadTasks(ctx, tx)
		if err != nil {
			return err
		}
		i := indexTask(tasks, id)
		if i < 0 {
			return fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return saveTasks(ctx, tx, append(tasks[:i], tasks[i+1:]...))
	})
}

// DeleteDeferredItem removes a deferred item
func (s *SQLiteStorage) DeleteDeferredItem(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		items, err := loadDeferred(ctx, tx)
		if err != nil {
			return err
		}
		i := indexDeferred(items, id)
		if i < 0 {
			return fmt.Errorf("deferred item %s: %w", id, ErrNotFound)
		}
		return saveDeferred(ctx, tx, append(items[:i], items[i+1:]...))
	})
}

// MoveTaskToDeferred replaces a task with a new deferred item carrying its text.
// Category, priority and completion are dropped.
func (s *SQLiteStorage) MoveTaskToDeferred(ctx context.Context, id string) (*types.DeferredItem, error) {
	var moved *types.DeferredItem
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		tasks, err := loadTasks(ctx, tx)
		if err != nil {
			return err
		}
		i := indexTask(tasks, id)
		if i < 0 {
			return fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		items, err := loadDeferred(ctx, tx)
		if err != nil {
			return err
		}

		moved = &types.DeferredItem{
			ID:        s.newID(),
			Text:      tasks[i].Text,
			CreatedAt: s.now(),
		}
		if err := saveDeferred(ctx, tx, append(items, moved)); err != nil {
			return err
		}
		return saveTasks(ctx, tx, append(tasks[:i], tasks[i+1:]...))
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// MoveDeferredToToday replaces a deferred item with a new personal, medium
// priority task for today carrying its text
func (s *SQLiteStorage) MoveDeferredToToday(ctx context.Context, id string) (*types.Task, error) {
	var moved *types.Task
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		items, err := loadDeferred(ctx, tx)
		if err != nil {
			return err
		}
		i := indexDeferred(items, id)
		if i < 0 {
			return fmt.Errorf("deferred item %s: %w", id, ErrNotFound)
		}
		tasks, err := loadTasks(ctx, tx)
		if err != nil {
			return err
		}

		moved = &types.Task{
			ID:        s.newID(),
			Text:      items[i].Text,
			Category:  types.CategoryPersonal,
			Priority:  types.PriorityMedium,
			CreatedAt: s.now(),
		}
		if err := saveTasks(ctx, tx, append(tasks, moved)); err != nil {
			return err
		}
		return saveDeferred(ctx, tx, append(items[:i], items[i+1:]...))
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// ReplaceAll overwrites both collections, as an import does.
// Every entry must be valid and ids must be unique within each collection.
func (s *SQLiteStorage) ReplaceAll(ctx context.Context, tasks []*types.Task, items []*types.DeferredItem) error {
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t == nil {
			return fmt.Errorf("task %d is null", i)
		}
		t.ApplyDefaults()
		if t.ID == "" {
			return fmt.Errorf("task %q has no id", t.Text)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate task id %s", t.ID)
		}
		seen[t.ID] = true
		if err := t.Validate(); err != nil {
			return fmt.Errorf("invalid task %s: %w", t.ID, err)
		}
	}

	seen = make(map[string]bool, len(items))
	for i, d := range items {
		if d == nil {
			return fmt.Errorf("deferred item %d is null", i)
		}
		if d.ID == "" {
			return fmt.Errorf("deferred item %q has no id", d.Text)
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate deferred item id %s", d.ID)
		}
		seen[d.ID] = true
		if err := d.Validate(); err != nil {
			return fmt.Errorf("invalid deferred item %s: %w", d.ID, err)
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := saveTasks(ctx, tx, tasks); err != nil {
			return err
		}
		return saveDeferred(ctx, tx, items)
	})
}

// GetSetting gets a setting value. A missing key returns an empty string.
func (s *SQLiteStorage) GetSetting(ctx context.Context, key string) (string, error) {
	value, _, err := getValue(ctx, s.db, key)
	return value, err
}

// SetSetting sets a setting value
func (s *SQLiteStorage) SetSetting(ctx context.Context, key, value string) error {
	return putValue(ctx, s.db, key, value)
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func indexTask(tasks []*types.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func indexDeferred(items []*types.DeferredItem, id string) int {
	for i, d := range items {
		if d.ID == id {
			return i
		}
	}
	return -1
}
