package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/steveyegge/taskcraft/internal/storage"
)

// ShortIDLength is how many id characters are displayed
const ShortIDLength = 8

// ShortID abbreviates an id for display
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// ResolveTaskID expands a unique id prefix to a full task id
func (t *Tracker) ResolveTaskID(ctx context.Context, prefix string) (string, error) {
	tasks, err := t.store.GetTasksForScope(ctx, "")
	if err != nil {
		return "", err
	}
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return resolvePrefix("task", prefix, ids)
}

// ResolveDeferredID expands a unique id prefix to a full deferred item id
func (t *Tracker) ResolveDeferredID(ctx context.Context, prefix string) (string, error) {
	items, err := t.store.GetDeferredItems(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return resolvePrefix("deferred item", prefix, ids)
}

func resolvePrefix(kind, prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}

	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %s: %w", kind, prefix, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s id %q is ambiguous (%d matches)", kind, prefix, len(matches))
	}
}
