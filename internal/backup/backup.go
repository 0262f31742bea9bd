// Package backup exports and imports the task and deferred collections as a
// single JSON document.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/mod/semver"

	"github.com/steveyegge/taskcraft/internal/storage"
	"github.com/steveyegge/taskcraft/internal/types"
)

// FormatVersion is written into every export. Imports with a newer major
// version are refused; older and same-major versions are accepted.
const FormatVersion = "v1.0.0"

// Document is the on-disk backup format
type Document struct {
	FormatVersion string                `json:"format_version"`
	ExportedAt    time.Time             `json:"exported_at"`
	Theme         types.Theme           `json:"theme,omitempty"`
	Tasks         []*types.Task         `json:"tasks"`
	Deferred      []*types.DeferredItem `json:"deferred"`
}

// Source is what Export reads from. storage.Storage satisfies it.
type Source interface {
	GetTasksForScope(ctx context.Context, date string) ([]*types.Task, error)
	GetDeferredItems(ctx context.Context) ([]*types.DeferredItem, error)
	GetSetting(ctx context.Context, key string) (string, error)
}

// Sink is what Import writes to. storage.Storage satisfies it.
type Sink interface {
	ReplaceAll(ctx context.Context, tasks []*types.Task, items []*types.DeferredItem) error
	SetSetting(ctx context.Context, key, value string) error
}

// ThemeKey is the settings key the theme is read from and restored to
const ThemeKey = storage.SettingTheme

// Export writes every task, deferred item and the theme to w
func Export(ctx context.Context, src Source, w io.Writer) (*Document, error) {
	tasks, err := src.GetTasksForScope(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	items, err := src.GetDeferredItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read deferred items: %w", err)
	}
	theme, err := src.GetSetting(ctx, ThemeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}

	if tasks == nil {
		tasks = []*types.Task{}
	}
	if items == nil {
		items = []*types.DeferredItem{}
	}

	doc := &Document{
		FormatVersion: FormatVersion,
		ExportedAt:    time.Now().UTC(),
		Theme:         types.Theme(theme),
		Tasks:         tasks,
		Deferred:      items,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}
	return doc, nil
}

// Decode reads and checks a document without applying it
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}
	if err := CheckVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	for i, t := range doc.Tasks {
		if t == nil {
			return nil, fmt.Errorf("backup task %d is null", i)
		}
	}
	for i, d := range doc.Deferred {
		if d == nil {
			return nil, fmt.Errorf("backup deferred item %d is null", i)
		}
	}
	if doc.Theme != "" && !doc.Theme.IsValid() {
		return nil, fmt.Errorf("backup has invalid theme %q", doc.Theme)
	}
	return &doc, nil
}

// CheckVersion reports whether a document written with version can be read
func CheckVersion(version string) error {
	if !semver.IsValid(version) {
		return fmt.Errorf("backup has invalid format version %q", version)
	}
	if semver.Compare(semver.Major(version), semver.Major(FormatVersion)) > 0 {
		return fmt.Errorf("backup format %s is newer than supported %s", version, FormatVersion)
	}
	return nil
}

// Import replaces every collection with the contents of r.
// Nothing is changed if the document is unreadable or invalid.
func Import(ctx context.Context, dst Sink, r io.Reader) (*Document, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if err := dst.ReplaceAll(ctx, doc.Tasks, doc.Deferred); err != nil {
		return nil, fmt.Errorf("failed to restore collections: %w", err)
	}
	if doc.Theme != "" {
		if err := dst.SetSetting(ctx, ThemeKey, string(doc.Theme)); err != nil {
			return nil, fmt.Errorf("failed to restore theme: %w", err)
		}
	}
	return doc, nil
}

// ExportFile exports to path, replacing any existing file
func ExportFile(ctx context.Context, src Source, path string) (*Document, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	doc, err := Export(ctx, src, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return doc, err
}

// ImportFile imports from path
func ImportFile(ctx context.Context, dst Sink, path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Import(ctx, dst, f)
}
