package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DirName is the per-project directory holding the database and config
	DirName = ".taskcraft"
	// DefaultPath is the database location relative to the working directory
	DefaultPath = DirName + "/taskcraft.db"
	// EnvDBPath overrides discovery when set
	EnvDBPath = "TASKCRAFT_DB_PATH"
)

// DiscoverDatabase looks for .taskcraft/*.db in the current directory only.
// Returns the absolute path to the database file, or an error if not found.
//
// TASKCRAFT_DB_PATH is checked first and used as-is, so tests and scripts can
// point at ":memory:" or an explicit file.
func DiscoverDatabase() (string, error) {
	if dbPath := os.Getenv(EnvDBPath); dbPath != "" {
		return dbPath, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return discoverDatabaseInDir(dir)
}

// discoverDatabaseInDir checks for .taskcraft/*.db in dir without walking up the tree
func discoverDatabaseInDir(dir string) (string, error) {
	dataDir := filepath.Join(dir, DirName)

	if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
		entries, err := os.ReadDir(dataDir)
		if err == nil {
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".db") {
					absPath, err := filepath.Abs(filepath.Join(dataDir, entry.Name()))
					if err != nil {
						return "", fmt.Errorf("failed to get absolute path: %w", err)
					}
					return absPath, nil
				}
			}
		}
	}

	return "", fmt.Errorf(
		"no %s/*.db found in %s\n"+
			"  Run 'taskcraft init' to start a task list in this directory\n"+
			"  Or use --db flag to specify database path explicitly",
		DirName, dir)
}

// GetProjectRoot returns the directory containing the .taskcraft/ directory
// that holds dbPath.
//
// Example:
//
//	dbPath: /home/user/notes/.taskcraft/taskcraft.db
//	returns: /home/user/notes
func GetProjectRoot(dbPath string) (string, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	dbDir := filepath.Dir(absPath)
	if filepath.Base(dbDir) != DirName {
		return "", fmt.Errorf("database must be in a %s/ directory, got: %s", DirName, dbPath)
	}
	return filepath.Dir(dbDir), nil
}

// InitProject creates a .taskcraft directory in projectDir and returns the
// path the database should be opened at. The database itself is created on
// first connection.
func InitProject(projectDir string) (string, error) {
	if _, err := os.Stat(projectDir); os.IsNotExist(err) {
		return "", fmt.Errorf("project directory does not exist: %s", projectDir)
	}

	dataDir := filepath.Join(projectDir, DirName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", DirName, err)
	}

	dbPath := filepath.Join(dataDir, filepath.Base(DefaultPath))
	if _, err := os.Stat(dbPath); err == nil {
		return "", fmt.Errorf("database already exists: %s", dbPath)
	}
	return dbPath, nil
}
