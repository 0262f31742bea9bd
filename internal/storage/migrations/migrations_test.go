package migrations

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

var notesMigration = Migration{
	Version:     1,
	Description: "Add notes table",
	Up: `
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY,
			body TEXT NOT NULL
		)
	`,
	Down: `DROP TABLE IF EXISTS notes`,
}

var tagsMigration = Migration{
	Version:     2,
	Description: "Add tags table",
	Up:          `CREATE TABLE IF NOT EXISTS tags (name TEXT PRIMARY KEY)`,
	Down:        `DROP TABLE IF EXISTS tags`,
}

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// every pooled connection would otherwise get its own empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyAndRollback(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	manager := NewManager(notesMigration)
	if err := manager.Apply(ctx, db); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	version, err := Version(ctx, db)
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1, got %d", version)
	}

	if _, err := db.Exec("INSERT INTO notes (id, body) VALUES (1, 'test')"); err != nil {
		t.Fatalf("notes table not created: %v", err)
	}

	if err := manager.Rollback(ctx, db); err != nil {
		t.Fatalf("failed to rollback migration: %v", err)
	}

	var v int
	err = db.QueryRow("SELECT version FROM schema_version WHERE version = 1").Scan(&v)
	if err != sql.ErrNoRows {
		t.Errorf("expected version record to be removed, got err=%v", err)
	}

	if _, err := db.Exec("INSERT INTO notes (id, body) VALUES (2, 'test')"); err == nil {
		t.Error("notes table should have been dropped")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	manager := NewManager(notesMigration, tagsMigration)
	for i := 0; i < 2; i++ {
		if err := manager.Apply(ctx, db); err != nil {
			t.Fatalf("apply #%d failed: %v", i+1, err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 version records, got %d", count)
	}
}

func TestApplyOnlyPending(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	if err := NewManager(notesMigration).Apply(ctx, db); err != nil {
		t.Fatalf("initial apply failed: %v", err)
	}
	if err := NewManager(notesMigration, tagsMigration).Apply(ctx, db); err != nil {
		t.Fatalf("upgrade apply failed: %v", err)
	}

	version, err := Version(ctx, db)
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
	if _, err := db.Exec("INSERT INTO tags (name) VALUES ('x')"); err != nil {
		t.Errorf("tags table not created: %v", err)
	}
}

func TestRollbackFreshDatabase(t *testing.T) {
	db := openMemory(t)
	if err := NewManager(notesMigration).Rollback(context.Background(), db); err == nil {
		t.Error("expected error rolling back a fresh database")
	}
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	broken := Migration{Version: 1, Description: "broken", Up: "CREATE TABLE ("}
	if err := NewManager(broken).Apply(ctx, db); err == nil {
		t.Fatal("expected error for invalid SQL")
	}

	version, err := Version(ctx, db)
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}
}

func TestMigrationOrdering(t *testing.T) {
	manager := NewManager()
	manager.Register(Migration{Version: 3, Description: "Third"})
	manager.Register(Migration{Version: 1, Description: "First"})
	manager.Register(Migration{Version: 2, Description: "Second"})

	sorted := manager.sorted()
	if len(sorted) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(sorted))
	}
	for i, want := range []int{1, 2, 3} {
		if sorted[i].Version != want {
			t.Errorf("position %d: expected version %d, got %d", i, want, sorted[i].Version)
		}
	}
	if manager.migrations[0].Version != 3 {
		t.Error("sorted() should not reorder the registered slice")
	}
	if manager.Latest() != 3 {
		t.Errorf("expected Latest 3, got %d", manager.Latest())
	}
}
