package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/steveyegge/taskcraft/internal/config"
	"github.com/steveyegge/taskcraft/internal/deduplication"
	"github.com/steveyegge/taskcraft/internal/logging"
	"github.com/steveyegge/taskcraft/internal/storage"
	"github.com/steveyegge/taskcraft/internal/synonyms"
	"github.com/steveyegge/taskcraft/internal/tracker"
	"github.com/steveyegge/taskcraft/internal/types"
)

// Version is set at build time
var Version = "dev"

var (
	dbPath  string
	cfgFile string
	verbose bool

	openedPath string

	cfg    *config.Config
	logger *zap.Logger
	store  storage.Storage
	trk    *tracker.Tracker
)

// skipSetup marks commands that run without an open database
const skipSetup = "skip-setup"

var rootCmd = &cobra.Command{
	Use:     "taskcraft",
	Short:   "Plan today's tasks and park the rest for later",
	Version: Version,
	Long: `TaskCraft keeps a list of today's tasks, pre-planned tasks for later
dates, and a "do later" list. Adding something that looks like an entry you
already have asks before creating a duplicate.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !needsSetup(cmd) {
			return
		}
		if err := setup(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: discover .taskcraft/*.db)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .taskcraft/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func needsSetup(cmd *cobra.Command) bool {
	if cmd.Annotations[skipSetup] == "true" {
		return false
	}
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	return true
}

// setup loads config and opens the store and tracker shared by every command
func setup(ctx context.Context) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	logCfg := cfg.LoggingConfig()
	if verbose {
		logCfg.Level = "debug"
	}
	logCfg.ColorEnabled = logCfg.ColorEnabled && !color.NoColor
	l, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l

	path, err := resolveDBPath(dbPath, cfg)
	if err != nil {
		return err
	}

	s, t, err := openTracker(ctx, cfg, path, logger)
	if err != nil {
		return err
	}
	store, trk, openedPath = s, t, path
	logger.Debug("database opened", zap.String("path", path))
	return nil
}

func teardown() {
	if store != nil {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
		}
		store = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

// resolveDBPath picks the database: --db, then TASKCRAFT_DB_PATH, then
// database.path from config, then .taskcraft/*.db in the working directory.
func resolveDBPath(flagPath string, c *config.Config) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if p := os.Getenv(storage.EnvDBPath); p != "" {
		return p, nil
	}
	if c != nil && c.Database.Path != "" {
		return c.Database.Path, nil
	}
	return storage.DiscoverDatabase()
}

// openTracker opens storage at path and wires the detector and tracker
func openTracker(ctx context.Context, c *config.Config, path string, l *zap.Logger) (storage.Storage, *tracker.Tracker, error) {
	table := synonyms.Default()
	if c.Synonyms.File != "" {
		loaded, err := synonyms.LoadFile(c.Synonyms.File)
		if err != nil {
			return nil, nil, err
		}
		table = loaded
	}

	detector, err := deduplication.NewDetector(c.DedupConfig(), table, l.Named("dedup"))
	if err != nil {
		return nil, nil, err
	}

	s, err := storage.NewStorage(ctx, &storage.Config{Path: path})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	t := tracker.New(s, detector,
		tracker.WithLogger(l.Named("tracker")),
		tracker.WithDefaultTheme(types.Theme(c.Theme)),
	)
	return s, t, nil
}

// exitOnError reports err and exits. Empty text is a notice and exits 0.
func exitOnError(err error) {
	if err == nil {
		return
	}
	teardown()
	if errors.Is(err, types.ErrEmptyText) {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s nothing to add: text is empty\n", yellow("Note:"))
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
