// Package display renders tasks, deferred items and statistics for the
// terminal and asks duplicate questions on a line-oriented input.
package display

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/steveyegge/taskcraft/internal/confirmation"
	"github.com/steveyegge/taskcraft/internal/deduplication"
	"github.com/steveyegge/taskcraft/internal/priorities"
	"github.com/steveyegge/taskcraft/internal/tracker"
	"github.com/steveyegge/taskcraft/internal/types"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

func priorityLabel(p types.Priority) string {
	switch p {
	case types.PriorityUrgent:
		return red(p.Label())
	case types.PriorityHigh:
		return yellow(p.Label())
	default:
		return gray(p.Label())
	}
}

// TaskLine renders one task
func TaskLine(t *types.Task) string {
	box := "[ ]"
	text := t.Text
	if t.Completed {
		box = green("[✓]")
		text = gray(text)
	}
	line := fmt.Sprintf("%s %s  %s  %s %s", box, gray(tracker.ShortID(t.ID)), text,
		gray("("+string(t.Category)+")"), priorityLabel(t.Priority))
	if t.IsScheduled() {
		line += " " + gray("@"+t.ScheduledDate)
	}
	return line
}

// DeferredLine renders one deferred item
func DeferredLine(d *types.DeferredItem) string {
	return fmt.Sprintf("•  %s  %s", gray(tracker.ShortID(d.ID)), d.Text)
}

// PrintTasks writes a titled task list with its progress counter
func PrintTasks(w io.Writer, title string, tasks []*types.Task) {
	stats := priorities.Summarize(tasks, 0)
	fmt.Fprintf(w, "\n%s  %s\n\n", cyan(title), gray(priorities.ProgressLabel(stats)))
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  Nothing here yet. Add a task with 'add <text>'.")
		fmt.Fprintln(w)
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "  %s\n", TaskLine(t))
	}
	fmt.Fprintln(w)
}

// PrintDeferred writes the deferred list
func PrintDeferred(w io.Writer, items []*types.DeferredItem) {
	fmt.Fprintf(w, "\n%s  %s\n\n", cyan("Do Later"), gray(fmt.Sprintf("%d items", len(items))))
	if len(items) == 0 {
		fmt.Fprintln(w, "  Nothing deferred.")
		fmt.Fprintln(w)
		return
	}
	for _, d := range items {
		fmt.Fprintf(w, "  %s\n", DeferredLine(d))
	}
	fmt.Fprintln(w)
}

// PrintStats writes the day statistics
func PrintStats(w io.Writer, s types.Stats) {
	fmt.Fprintf(w, "\n%s\n\n", cyan("Today"))
	fmt.Fprintf(w, "  %-16s %d\n", "Tasks:", s.TodayCount)
	fmt.Fprintf(w, "  %-16s %s\n", "Completed:", green(s.CompletedCount))
	fmt.Fprintf(w, "  %-16s %d\n", "Do later:", s.DeferredCount)
	fmt.Fprintf(w, "  %-16s %d%%\n", "Completion:", s.CompletionRate)
	fmt.Fprintln(w)
}

// PrintAddResult reports the outcome of an add
func PrintAddResult(w io.Writer, res *tracker.AddResult) {
	switch {
	case res.Task != nil:
		fmt.Fprintf(w, "%s Added task %s: %s\n", green("✓"), tracker.ShortID(res.Task.ID), res.Task.Text)
	case res.Deferred != nil:
		fmt.Fprintf(w, "%s Added to do later %s: %s\n", green("✓"), tracker.ShortID(res.Deferred.ID), res.Deferred.Text)
	case res.Cancelled:
		fmt.Fprintf(w, "%s Not added.\n", yellow("•"))
	case res.Pending:
		if res.Replaced != nil {
			fmt.Fprintf(w, "%s Replaced held entry %q\n", yellow("•"), res.Replaced.Text)
		}
		fmt.Fprintf(w, "%s %s\n", yellow("⚠ Similar entry:"), DescribeMatch(res.Match))
		fmt.Fprintf(w, "  Type 'confirm' to add it anyway or 'cancel' to discard.\n")
	}
}

// DescribeMatch explains why an entry was flagged
func DescribeMatch(m *deduplication.Match) string {
	if m == nil {
		return ""
	}
	where := "today"
	if m.Kind == deduplication.KindDeferred {
		where = "do later"
	}
	if m.BySynonym() {
		return fmt.Sprintf("%q in %s (same idea: %s)", m.Text(), where, m.Concept)
	}
	return fmt.Sprintf("%q in %s (%.0f%% similar)", m.Text(), where, m.Similarity*100)
}

// PromptDecider asks duplicate questions on a line-oriented input.
// End of input counts as "no".
type PromptDecider struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptDecider creates a decider reading answers from in and writing questions to out
func NewPromptDecider(in io.Reader, out io.Writer) *PromptDecider {
	return &PromptDecider{in: bufio.NewReader(in), out: out}
}

var _ confirmation.Decider = (*PromptDecider)(nil)

// PromptDuplicate prints the question and reads a y/N answer
func (p *PromptDecider) PromptDuplicate(ctx context.Context, match *deduplication.Match, pending types.PendingTask) (confirmation.Decision, error) {
	if err := ctx.Err(); err != nil {
		return confirmation.DecisionCancel, err
	}
	fmt.Fprintf(p.out, "%s %s [y/N] ", yellow("?"), confirmation.Message(match, pending))

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return confirmation.DecisionCancel, fmt.Errorf("failed to read answer: %w", err)
		}
		// unterminated last line still counts as an answer
		fmt.Fprintln(p.out)
	}
	return ParseAnswer(line), nil
}

// ParseAnswer maps y/yes (any case) to confirm and anything else to cancel
func ParseAnswer(s string) confirmation.Decision {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return confirmation.DecisionConfirm
	}
	return confirmation.DecisionCancel
}
