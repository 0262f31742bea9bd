package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/taskcraft/internal/config"
	"github.com/steveyegge/taskcraft/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Start a task list in the current directory",
	Long: `Initialize TaskCraft by creating a .taskcraft/ directory.

This creates:
  - .taskcraft/taskcraft.db (SQLite database)
  - .taskcraft/config.yaml (default settings, kept if it already exists)

Example:
  cd ~/notes
  taskcraft init`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipSetup: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get current directory: %v\n", err)
			os.Exit(1)
		}

		dbFile, cfgPath, err := initProject(cmd.Context(), cwd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s Initialized TaskCraft\n\n", green("✓"))
		fmt.Printf("  Database: %s\n", cyan(dbFile))
		fmt.Printf("  Config:   %s\n", cyan(cfgPath))
		fmt.Println()
		fmt.Printf("%s\n", gray("Try: taskcraft add buy milk"))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// initProject creates the data directory, the schema and a default config
func initProject(ctx context.Context, dir string) (string, string, error) {
	dbFile, err := storage.InitProject(dir)
	if err != nil {
		return "", "", err
	}

	// Opening the database creates it and applies migrations
	db, err := storage.NewStorage(ctx, &storage.Config{Path: dbFile})
	if err != nil {
		return "", "", fmt.Errorf("failed to initialize database: %w", err)
	}
	_ = db.Close()

	cfgPath := filepath.Join(dir, storage.DirName, config.FileName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := config.WriteDefault(cfgPath); err != nil {
			return "", "", err
		}
	}
	return dbFile, cfgPath, nil
}
