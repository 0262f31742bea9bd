package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/taskcraft/internal/display"
	"github.com/steveyegge/taskcraft/internal/tracker"
)

// Ids may be given as any unique prefix of the full id.

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task between done and not done",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runDone(cmd.Context(), trk, os.Stdout, args[0]))
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		id, err := trk.ResolveTaskID(ctx, args[0])
		exitOnError(err)
		exitOnError(trk.DeleteTask(ctx, id))
		fmt.Printf("Deleted task %s\n", tracker.ShortID(id))
	},
}

var rmLaterCmd = &cobra.Command{
	Use:   "rm-later <id>",
	Short: "Delete a do-later item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		id, err := trk.ResolveDeferredID(ctx, args[0])
		exitOnError(err)
		exitOnError(trk.DeleteDeferred(ctx, id))
		fmt.Printf("Deleted do-later item %s\n", tracker.ShortID(id))
	},
}

var deferCmd = &cobra.Command{
	Use:   "defer <id>",
	Short: "Move a task to the do-later list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runDefer(cmd.Context(), trk, os.Stdout, args[0]))
	},
}

var todayCmd = &cobra.Command{
	Use:   "today <id>",
	Short: "Move a do-later item onto today's list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runToday(cmd.Context(), trk, os.Stdout, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(doneCmd, rmCmd, rmLaterCmd, deferCmd, todayCmd)
}

func runDone(ctx context.Context, t *tracker.Tracker, w io.Writer, prefix string) error {
	id, err := t.ResolveTaskID(ctx, prefix)
	if err != nil {
		return err
	}
	task, err := t.ToggleTask(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, display.TaskLine(task))
	return nil
}

func runDefer(ctx context.Context, t *tracker.Tracker, w io.Writer, prefix string) error {
	id, err := t.ResolveTaskID(ctx, prefix)
	if err != nil {
		return err
	}
	item, err := t.MoveToDeferred(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Moved to do later: %s\n", display.DeferredLine(item))
	return nil
}

func runToday(ctx context.Context, t *tracker.Tracker, w io.Writer, prefix string) error {
	id, err := t.ResolveDeferredID(ctx, prefix)
	if err != nil {
		return err
	}
	task, err := t.MoveToToday(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Moved to today: %s\n", display.TaskLine(task))
	return nil
}
