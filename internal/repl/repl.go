package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/steveyegge/taskcraft/internal/tracker"
)

// REPL represents the interactive shell
type REPL struct {
	tracker  *tracker.Tracker
	logger   *zap.Logger
	out      io.Writer
	rl       *readline.Instance
	ctx      context.Context
	commands map[string]CommandHandler

	historyFile string
	// readLine reads one answer line for a duplicate question
	readLine func(prompt string) (string, error)
}

// CommandHandler handles a specific command. rest is the raw input after the
// command word with only the surrounding whitespace removed.
type CommandHandler func(rest string) error

// Config holds REPL configuration
type Config struct {
	Tracker     *tracker.Tracker
	Logger      *zap.Logger
	Out         io.Writer // defaults to stdout
	HistoryFile string    // empty keeps history in memory
}

// errExit signals the loop to stop
var errExit = errors.New("exit")

// New creates a new REPL instance
func New(cfg *Config) (*REPL, error) {
	if cfg.Tracker == nil {
		return nil, fmt.Errorf("tracker is required")
	}

	r := &REPL{
		tracker:     cfg.Tracker,
		logger:      cfg.Logger,
		out:         cfg.Out,
		historyFile: cfg.HistoryFile,
		commands:    make(map[string]CommandHandler),
		ctx:         context.Background(),
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.out == nil {
		r.out = os.Stdout
	}

	r.registerCommands()
	return r, nil
}

// Run starts the REPL loop
func (r *REPL) Run(ctx context.Context) error {
	r.ctx = ctx

	cyan := color.New(color.FgCyan).SprintFunc()
	prompt := cyan("taskcraft> ")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       r.historyFile,
		AutoComplete:      r.completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdout:            r.out,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	r.rl = rl
	r.readLine = func(p string) (string, error) {
		rl.SetPrompt(p)
		defer rl.SetPrompt(prompt)
		return rl.Readline()
	}

	r.printWelcome()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := r.processInput(line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Fprintf(r.out, "%s %v\n", red("Error:"), err)
		}
	}
}

// processInput processes a single line of input
func (r *REPL) processInput(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	word, rest := splitCommand(line)
	command := strings.ToLower(word)

	if handler, ok := r.commands[command]; ok {
		r.logger.Debug("repl command", zap.String("command", command), zap.Int("rest_len", len(rest)))
		return handler(rest)
	}

	// bare text is a quick add
	return r.cmdAdd(line)
}

// splitCommand returns the first word of line and the raw text after it
func splitCommand(line string) (string, string) {
	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		return line, ""
	}
	return line[:end], strings.TrimLeftFunc(line[end:], unicode.IsSpace)
}

// registerCommands registers all built-in commands
func (r *REPL) registerCommands() {
	r.commands["help"] = r.cmdHelp
	r.commands["?"] = r.cmdHelp
	r.commands["exit"] = r.cmdExit
	r.commands["quit"] = r.cmdExit

	r.commands["add"] = r.cmdAdd
	r.commands["confirm"] = r.cmdConfirm
	r.commands["cancel"] = r.cmdCancel
	r.commands["pending"] = r.cmdPending
	r.commands["later"] = r.cmdLater
	r.commands["plan"] = r.cmdPlan

	r.commands["list"] = r.cmdList
	r.commands["ls"] = r.cmdList
	r.commands["later-list"] = r.cmdLaterList
	r.commands["search"] = r.cmdSearch
	r.commands["stats"] = r.cmdStats

	r.commands["done"] = r.cmdDone
	r.commands["rm"] = r.cmdRemove
	r.commands["rm-later"] = r.cmdRemoveLater
	r.commands["defer"] = r.cmdDefer
	r.commands["today"] = r.cmdToday
	r.commands["theme"] = r.cmdTheme
}

// printWelcome prints the welcome message
func (r *REPL) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(r.out, "\n%s\n", cyan("TaskCraft"))
	fmt.Fprintln(r.out, "Plan today, park the rest for later")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Type 'help' for available commands, 'exit' to quit")
	fmt.Fprintln(r.out)
}

// cmdHelp shows help information
func (r *REPL) cmdHelp(string) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(r.out, "\n%s\n\n", cyan("Available Commands:"))

	commands := []struct {
		name string
		desc string
	}{
		{"add <text> [-c cat] [-p prio]", "Add a task for today (bare text works too)"},
		{"confirm / cancel", "Resolve a held duplicate"},
		{"pending", "Show the held duplicate, if any"},
		{"later <text>", "Add to the do-later list"},
		{"plan <date> <text>", "Schedule a task for YYYY-MM-DD"},
		{"list [date]", "Show today's (or a date's) tasks"},
		{"later-list", "Show the do-later list"},
		{"search <term>", "Filter today's tasks"},
		{"stats", "Show today's statistics"},
		{"done <id>", "Toggle a task complete"},
		{"rm <id>", "Delete a task"},
		{"rm-later <id>", "Delete a do-later item"},
		{"defer <id>", "Move a task to do later"},
		{"today <id>", "Move a do-later item to today"},
		{"theme [light|dark]", "Show or set the theme"},
		{"help, ?", "Show this help message"},
		{"exit, quit", "Exit the REPL"},
	}
	for _, cmd := range commands {
		fmt.Fprintf(r.out, "  %-32s %s\n", green(cmd.name), cmd.desc)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Ids can be shortened to any unique prefix.")
	fmt.Fprintln(r.out)
	return nil
}

// cmdExit exits the REPL
func (r *REPL) cmdExit(string) error {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(r.out, "\n%s Goodbye!\n", green("✓"))
	return errExit
}
