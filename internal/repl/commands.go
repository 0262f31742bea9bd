package repl

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/steveyegge/taskcraft/internal/confirmation"
	"github.com/steveyegge/taskcraft/internal/deduplication"
	"github.com/steveyegge/taskcraft/internal/display"
	"github.com/steveyegge/taskcraft/internal/tracker"
	"github.com/steveyegge/taskcraft/internal/types"
)

// addArgs holds the parsed form of "add [-c cat] [-p prio] text..."
type addArgs struct {
	text     string
	category types.Category
	priority types.Priority
}

// token is one whitespace-delimited word and its byte span in the input
type token struct {
	text       string
	start, end int
}

func tokenize(s string) []token {
	var toks []token
	start := -1
	for i, c := range s {
		if unicode.IsSpace(c) {
			if start >= 0 {
				toks = append(toks, token{s[start:i], start, i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, token{s[start:], start, len(s)})
	}
	return toks
}

// parseAddArgs accepts -c/--category and -p/--priority, as separate
// tokens or in --flag=value form. Everything else is task text; spacing
// between adjacent words is kept as typed.
func parseAddArgs(rest string) (*addArgs, error) {
	var text strings.Builder
	var category, priority string
	prevEnd := -1

	toks := tokenize(rest)
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		name, value, hasValue := strings.Cut(tok.text, "=")
		switch name {
		case "-c", "--category", "-p", "--priority":
			if !hasValue {
				if i+1 >= len(toks) {
					return nil, fmt.Errorf("%s needs a value", name)
				}
				i++
				value = toks[i].text
			}
			if name == "-c" || name == "--category" {
				category = value
			} else {
				priority = value
			}
			prevEnd = -1
		default:
			if text.Len() > 0 {
				if prevEnd >= 0 {
					text.WriteString(rest[prevEnd:tok.start])
				} else {
					text.WriteByte(' ')
				}
			}
			text.WriteString(tok.text)
			prevEnd = tok.end
		}
	}

	c, err := types.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	p, err := types.ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	return &addArgs{text: text.String(), category: c, priority: p}, nil
}

func (r *REPL) cmdAdd(rest string) error {
	parsed, err := parseAddArgs(rest)
	if err != nil {
		return err
	}
	res, err := r.tracker.AddTask(r.ctx, parsed.text, parsed.category, parsed.priority, nil)
	if err != nil {
		return err
	}
	display.PrintAddResult(r.out, res)
	return nil
}

// cmdLater adds to the do-later list. A duplicate is asked about right away
// when an answer reader is available, otherwise it is held like add.
func (r *REPL) cmdLater(rest string) error {
	var decider confirmation.Decider
	if r.readLine != nil {
		decider = confirmation.DeciderFunc(r.askDuplicate)
	}
	res, err := r.tracker.AddDeferred(r.ctx, rest, decider)
	if err != nil {
		return err
	}
	display.PrintAddResult(r.out, res)
	return nil
}

func (r *REPL) cmdPlan(rest string) error {
	date, text := splitCommand(rest)
	if date == "" || text == "" {
		return fmt.Errorf("usage: plan <YYYY-MM-DD> <text> [-c category]")
	}
	parsed, err := parseAddArgs(text)
	if err != nil {
		return err
	}
	res, err := r.tracker.AddPrePlanned(r.ctx, parsed.text, date, parsed.category, nil)
	if err != nil {
		return err
	}
	display.PrintAddResult(r.out, res)
	return nil
}

func (r *REPL) cmdConfirm(string) error {
	res, err := r.tracker.ConfirmPending(r.ctx)
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Fprintln(r.out, "Nothing to confirm.")
		return nil
	}
	display.PrintAddResult(r.out, &tracker.AddResult{Task: res.Task, Deferred: res.Deferred})
	return nil
}

func (r *REPL) cmdCancel(string) error {
	if _, _, ok := r.tracker.Workflow().Pending(); !ok {
		fmt.Fprintln(r.out, "Nothing to cancel.")
		return nil
	}
	r.tracker.CancelPending()
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(r.out, "%s Discarded.\n", yellow("•"))
	return nil
}

func (r *REPL) cmdPending(string) error {
	pending, match, ok := r.tracker.Workflow().Pending()
	if !ok {
		fmt.Fprintln(r.out, "Nothing pending.")
		return nil
	}
	fmt.Fprintln(r.out, confirmation.Message(match, pending))
	fmt.Fprintf(r.out, "  %s\n", display.DescribeMatch(match))
	return nil
}

// askDuplicate prompts on the readline instance
func (r *REPL) askDuplicate(_ context.Context, match *deduplication.Match, pending types.PendingTask) (confirmation.Decision, error) {
	line, err := r.readLine(confirmation.Message(match, pending) + " [y/N] ")
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return confirmation.DecisionCancel, nil
		}
		return confirmation.DecisionCancel, err
	}
	return display.ParseAnswer(line), nil
}

func (r *REPL) cmdList(rest string) error {
	if rest != "" {
		tasks, err := r.tracker.TasksForDate(r.ctx, rest)
		if err != nil {
			return err
		}
		display.PrintTasks(r.out, rest, tasks)
		return nil
	}
	tasks, err := r.tracker.TodayTasks(r.ctx)
	if err != nil {
		return err
	}
	display.PrintTasks(r.out, "Today", tasks)
	return nil
}

func (r *REPL) cmdLaterList(string) error {
	items, err := r.tracker.DeferredItems(r.ctx)
	if err != nil {
		return err
	}
	display.PrintDeferred(r.out, items)
	return nil
}

func (r *REPL) cmdSearch(term string) error {
	tasks, err := r.tracker.Search(r.ctx, term)
	if err != nil {
		return err
	}
	display.PrintTasks(r.out, fmt.Sprintf("Matching %q", term), tasks)
	return nil
}

func (r *REPL) cmdStats(string) error {
	stats, err := r.tracker.Stats(r.ctx)
	if err != nil {
		return err
	}
	display.PrintStats(r.out, stats)
	return nil
}

func (r *REPL) cmdDone(rest string) error {
	id, err := r.taskID(rest)
	if err != nil {
		return err
	}
	task, err := r.tracker.ToggleTask(r.ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, display.TaskLine(task))
	return nil
}

func (r *REPL) cmdRemove(rest string) error {
	id, err := r.taskID(rest)
	if err != nil {
		return err
	}
	if err := r.tracker.DeleteTask(r.ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Deleted task %s\n", tracker.ShortID(id))
	return nil
}

func (r *REPL) cmdRemoveLater(rest string) error {
	id, err := r.deferredID(rest)
	if err != nil {
		return err
	}
	if err := r.tracker.DeleteDeferred(r.ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Deleted do-later item %s\n", tracker.ShortID(id))
	return nil
}

func (r *REPL) cmdDefer(rest string) error {
	id, err := r.taskID(rest)
	if err != nil {
		return err
	}
	item, err := r.tracker.MoveToDeferred(r.ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Moved to do later: %s\n", display.DeferredLine(item))
	return nil
}

func (r *REPL) cmdToday(rest string) error {
	id, err := r.deferredID(rest)
	if err != nil {
		return err
	}
	task, err := r.tracker.MoveToToday(r.ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Moved to today: %s\n", display.TaskLine(task))
	return nil
}

func (r *REPL) cmdTheme(rest string) error {
	if rest == "" {
		theme, err := r.tracker.Theme(r.ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Theme: %s\n", theme)
		return nil
	}
	theme := types.Theme(strings.ToLower(rest))
	if err := r.tracker.SetTheme(r.ctx, theme); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Theme set to %s\n", theme)
	return nil
}

func (r *REPL) taskID(rest string) (string, error) {
	args := strings.Fields(rest)
	if len(args) != 1 {
		return "", fmt.Errorf("expected one task id")
	}
	return r.tracker.ResolveTaskID(r.ctx, args[0])
}

func (r *REPL) deferredID(rest string) (string, error) {
	args := strings.Fields(rest)
	if len(args) != 1 {
		return "", fmt.Errorf("expected one do-later id")
	}
	return r.tracker.ResolveDeferredID(r.ctx, args[0])
}
