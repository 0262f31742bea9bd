package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestDiscoverDatabaseInDir_CurrentDirOnly verifies that discovery does not
// walk up into a parent's task list
func TestDiscoverDatabaseInDir_CurrentDirOnly(t *testing.T) {
	tmpRoot := t.TempDir()
	parentDir := filepath.Join(tmpRoot, "parent")
	childDir := filepath.Join(parentDir, "child")

	dataDir := filepath.Join(parentDir, DirName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("failed to create data dir: %v", err)
	}
	parentDB := filepath.Join(dataDir, "taskcraft.db")
	if err := os.WriteFile(parentDB, []byte(""), 0644); err != nil {
		t.Fatalf("failed to create parent database: %v", err)
	}
	if err := os.MkdirAll(childDir, 0755); err != nil {
		t.Fatalf("failed to create child dir: %v", err)
	}

	if _, err := discoverDatabaseInDir(childDir); err == nil {
		t.Error("expected error when no database in current dir")
	}

	dbPath, err := discoverDatabaseInDir(parentDir)
	if err != nil {
		t.Fatalf("expected to find database in parent dir, got error: %v", err)
	}
	if dbPath != parentDB {
		t.Errorf("expected database path %s, got %s", parentDB, dbPath)
	}
}

func TestDiscoverDatabaseEnvOverride(t *testing.T) {
	t.Setenv(EnvDBPath, ":memory:")
	path, err := DiscoverDatabase()
	if err != nil {
		t.Fatalf("DiscoverDatabase failed: %v", err)
	}
	if path != ":memory:" {
		t.Errorf("expected :memory:, got %s", path)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	if got := DefaultConfig().Path; got != DefaultPath {
		t.Errorf("expected %s, got %s", DefaultPath, got)
	}

	t.Setenv(EnvDBPath, "/tmp/custom.db")
	if got := DefaultConfig().Path; got != "/tmp/custom.db" {
		t.Errorf("expected env override, got %s", got)
	}
}

func TestGetProjectRoot(t *testing.T) {
	tests := []struct {
		name    string
		dbPath  string
		want    string
		wantErr bool
	}{
		{name: "valid", dbPath: "/home/user/notes/.taskcraft/taskcraft.db", want: "/home/user/notes"},
		{name: "not in data dir", dbPath: "/home/user/notes/taskcraft.db", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetProjectRoot(tt.dbPath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetProjectRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("GetProjectRoot() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInitProject(t *testing.T) {
	dir := t.TempDir()

	dbPath, err := InitProject(dir)
	if err != nil {
		t.Fatalf("InitProject failed: %v", err)
	}
	if want := filepath.Join(dir, DirName, "taskcraft.db"); dbPath != want {
		t.Errorf("expected %s, got %s", want, dbPath)
	}

	store, err := NewStorage(context.Background(), &Config{Path: dbPath})
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	_ = store.Close()

	if _, err := InitProject(dir); err == nil {
		t.Error("expected error initializing twice")
	}

	if _, err := InitProject(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing project directory")
	}
}

func TestNewStorageMemory(t *testing.T) {
	ctx := context.Background()
	store, err := NewStorage(ctx, &Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := store.CreateTask(ctx, "hello", "", "", ""); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := store.GetTask(ctx, "nope"); err == nil {
		t.Error("expected ErrNotFound")
	}
}
