package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/taskcraft/internal/confirmation"
	"github.com/steveyegge/taskcraft/internal/display"
	"github.com/steveyegge/taskcraft/internal/tracker"
	"github.com/steveyegge/taskcraft/internal/types"
)

var (
	addCategory string
	addPriority string
	addYes      bool
	planDate    string
	planCat     string
	planYes     bool
	laterYes    bool
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task for today",
	Long: `Add a task to today's list.

If today's list or the do-later list already has something similar, you are
asked before the duplicate is created. Use --yes to add it without asking.

Examples:
  taskcraft add buy milk
  taskcraft add --category work --priority urgent send the report`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		category, err := types.ParseCategory(addCategory)
		exitOnError(err)
		priority, err := types.ParsePriority(addPriority)
		exitOnError(err)

		res, err := trk.AddTask(cmd.Context(), strings.Join(args, " "), category, priority, stdinDecider(addYes))
		exitOnError(err)
		printAdd(os.Stdout, res)
	},
}

var laterCmd = &cobra.Command{
	Use:   "later <text>",
	Short: "Add an item to the do-later list",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := trk.AddDeferred(cmd.Context(), strings.Join(args, " "), stdinDecider(laterYes))
		exitOnError(err)
		printAdd(os.Stdout, res)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <text> --date YYYY-MM-DD",
	Short: "Schedule a task for a future date",
	Long: `Pre-plan a task for a specific date. The duplicate check compares against
that date's tasks and the do-later list.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		category, err := types.ParseCategory(planCat)
		exitOnError(err)

		res, err := trk.AddPrePlanned(cmd.Context(), strings.Join(args, " "), planDate, category, stdinDecider(planYes))
		exitOnError(err)
		printAdd(os.Stdout, res)
	},
}

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "personal, work, study or health (default personal)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "medium, high or urgent (default medium)")
	addCmd.Flags().BoolVarP(&addYes, "yes", "y", false, "add duplicates without asking")

	laterCmd.Flags().BoolVarP(&laterYes, "yes", "y", false, "add duplicates without asking")

	planCmd.Flags().StringVarP(&planDate, "date", "d", "", "date to schedule for (YYYY-MM-DD)")
	planCmd.Flags().StringVarP(&planCat, "category", "c", "", "personal, work, study or health (default personal)")
	planCmd.Flags().BoolVarP(&planYes, "yes", "y", false, "add duplicates without asking")
	_ = planCmd.MarkFlagRequired("date")

	rootCmd.AddCommand(addCmd, laterCmd, planCmd)
}

// stdinDecider asks on the terminal unless yes is set
func stdinDecider(yes bool) confirmation.Decider {
	if yes {
		return confirmation.Always(confirmation.DecisionConfirm)
	}
	return display.NewPromptDecider(os.Stdin, os.Stdout)
}

func printAdd(w io.Writer, res *tracker.AddResult) {
	if res.Match != nil && !res.Cancelled && !res.Pending {
		fmt.Fprintf(w, "Note: similar to %s\n", display.DescribeMatch(res.Match))
	}
	display.PrintAddResult(w, res)
}
