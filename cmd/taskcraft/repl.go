package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/steveyegge/taskcraft/internal/repl"
	"github.com/steveyegge/taskcraft/internal/storage"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start interactive shell",
	Long: `Start an interactive shell for TaskCraft.

Inside the shell a possible duplicate is held until you type 'confirm' or
'cancel', so you can look at your lists before deciding.

Type 'help' in the shell for available commands.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		replCfg := &repl.Config{
			Tracker:     trk,
			Logger:      logger.Named("repl"),
			HistoryFile: historyFile(openedPath),
		}

		r, err := repl.New(replCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create REPL: %v\n", err)
			os.Exit(1)
		}

		exitOnError(r.Run(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// historyFile keeps shell history next to a project database. Other
// databases get no history file.
func historyFile(dbFile string) string {
	root, err := storage.GetProjectRoot(dbFile)
	if err != nil {
		return ""
	}
	return filepath.Join(root, storage.DirName, "history")
}
