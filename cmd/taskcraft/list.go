package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/taskcraft/internal/display"
	"github.com/steveyegge/taskcraft/internal/tracker"
)

var listDate string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show today's tasks, or the tasks planned for --date",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runList(cmd.Context(), trk, os.Stdout, listDate))
	},
}

var laterListCmd = &cobra.Command{
	Use:   "later-list",
	Short: "Show the do-later list",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		items, err := trk.DeferredItems(cmd.Context())
		exitOnError(err)
		display.PrintDeferred(os.Stdout, items)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find today's tasks containing a term (case-insensitive)",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runSearch(cmd.Context(), trk, os.Stdout, strings.Join(args, " ")))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's completion statistics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := trk.Stats(cmd.Context())
		exitOnError(err)
		display.PrintStats(os.Stdout, stats)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listDate, "date", "d", "", "show tasks for this date (YYYY-MM-DD)")
	rootCmd.AddCommand(listCmd, laterListCmd, searchCmd, statsCmd)
}

func runList(ctx context.Context, t *tracker.Tracker, w io.Writer, date string) error {
	if date == "" {
		tasks, err := t.TodayTasks(ctx)
		if err != nil {
			return err
		}
		display.PrintTasks(w, "Today", tasks)
		return nil
	}
	tasks, err := t.TasksForDate(ctx, date)
	if err != nil {
		return err
	}
	display.PrintTasks(w, date, tasks)
	return nil
}

func runSearch(ctx context.Context, t *tracker.Tracker, w io.Writer, term string) error {
	tasks, err := t.Search(ctx, term)
	if err != nil {
		return err
	}
	display.PrintTasks(w, fmt.Sprintf("Matching %q", term), tasks)
	return nil
}
