package sqlite

import "github.com/steveyegge/taskcraft/internal/storage/migrations"

// Keys under which the collections and settings are stored.
const (
	KeyTasks    = "taskcraft_tasks"
	KeyDeferred = "taskcraft_doLater"
	KeyTheme    = "taskcraft_theme"
)

// schemaMigrations is the full schema history, oldest first.
// Collections are stored as JSON documents under a single key each, so the
// schema itself stays a plain key-value table.
var schemaMigrations = []migrations.Migration{
	{
		Version:     1,
		Description: "Create key-value table",
		Up: `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
		Down: `DROP TABLE IF EXISTS kv;`,
	},
}
