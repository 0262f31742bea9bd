package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/steveyegge/taskcraft/internal/types"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getValue reads a raw value. ok is false when the key has never been written.
func getValue(ctx context.Context, q querier, key string) (value string, ok bool, err error) {
	err = q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func putValue(ctx context.Context, q querier, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// loadJSON decodes the document stored under key into dst.
// A missing key leaves dst untouched.
func loadJSON(ctx context.Context, q querier, key string, dst any) error {
	raw, ok, err := getValue(ctx, q, key)
	if err != nil || !ok {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func saveJSON(ctx context.Context, q querier, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return putValue(ctx, q, key, string(data))
}

func loadTasks(ctx context.Context, q querier) ([]*types.Task, error) {
	tasks := []*types.Task{}
	if err := loadJSON(ctx, q, KeyTasks, &tasks); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		t.ApplyDefaults()
	}
	return tasks, nil
}

func saveTasks(ctx context.Context, q querier, tasks []*types.Task) error {
	if tasks == nil {
		tasks = []*types.Task{}
	}
	return saveJSON(ctx, q, KeyTasks, tasks)
}

func loadDeferred(ctx context.Context, q querier) ([]*types.DeferredItem, error) {
	items := []*types.DeferredItem{}
	if err := loadJSON(ctx, q, KeyDeferred, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func saveDeferred(ctx context.Context, q querier, items []*types.DeferredItem) error {
	if items == nil {
		items = []*types.DeferredItem{}
	}
	return saveJSON(ctx, q, KeyDeferred, items)
}
