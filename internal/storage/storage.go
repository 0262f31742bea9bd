package storage

import (
	"context"
	"os"

	"github.com/steveyegge/taskcraft/internal/storage/sqlite"
	"github.com/steveyegge/taskcraft/internal/types"
)

// ErrNotFound is returned when a task or deferred item id does not exist
var ErrNotFound = sqlite.ErrNotFound

// MemoryPath opens a private in-memory database
const MemoryPath = sqlite.MemoryPath

// Setting keys
const (
	SettingTheme = sqlite.KeyTheme
)

// Storage owns the task and deferred collections and their persistence
type Storage interface {
	// Reads used to build the duplicate-detection pool
	GetTasksForScope(ctx context.Context, date string) ([]*types.Task, error)
	GetDeferredItems(ctx context.Context) ([]*types.DeferredItem, error)

	// Tasks
	CreateTask(ctx context.Context, text string, category types.Category, priority types.Priority, scheduledDate string) (*types.Task, error)
	GetTask(ctx context.Context, id string) (*types.Task, error)
	UpdateTask(ctx context.Context, id string, completed bool) (*types.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Deferred items
	CreateDeferredItem(ctx context.Context, text string) (*types.DeferredItem, error)
	GetDeferredItem(ctx context.Context, id string) (*types.DeferredItem, error)
	DeleteDeferredItem(ctx context.Context, id string) error

	// Moving between lists
	MoveTaskToDeferred(ctx context.Context, id string) (*types.DeferredItem, error)
	MoveDeferredToToday(ctx context.Context, id string) (*types.Task, error)

	// Bulk replace (import)
	ReplaceAll(ctx context.Context, tasks []*types.Task, items []*types.DeferredItem) error

	// Settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Lifecycle
	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}

// Config holds database configuration
type Config struct {
	// Path is the SQLite database file path
	// Default: ".taskcraft/taskcraft.db"
	// Special value ":memory:" creates an in-memory database (useful for tests)
	Path string
}

// DefaultConfig returns a config with sensible defaults.
// TASKCRAFT_DB_PATH overrides the default path.
func DefaultConfig() *Config {
	path := DefaultPath
	if env := os.Getenv(EnvDBPath); env != "" {
		path = env
	}
	return &Config{Path: path}
}

// NewStorage creates a new SQLite storage backend
// The ctx parameter is currently unused but kept for API consistency
func NewStorage(ctx context.Context, cfg *Config) (Storage, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	store, err := sqlite.New(cfg.Path)
	if err != nil {
		return nil, err
	}
	return store, nil
}
