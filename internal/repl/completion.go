package repl

import (
	"github.com/chzyer/readline"

	"github.com/steveyegge/taskcraft/internal/tracker"
	"github.com/steveyegge/taskcraft/internal/types"
)

// completer builds tab completion for command names, enum flags and ids
func (r *REPL) completer() *readline.PrefixCompleter {
	taskIDs := readline.PcItemDynamic(func(string) []string { return r.taskIDs() })
	deferredIDs := readline.PcItemDynamic(func(string) []string { return r.deferredIDs() })

	categories := []readline.PrefixCompleterInterface{}
	for _, c := range []types.Category{types.CategoryPersonal, types.CategoryWork, types.CategoryStudy, types.CategoryHealth} {
		categories = append(categories, readline.PcItem(string(c)))
	}
	priorities := []readline.PrefixCompleterInterface{}
	for _, p := range []types.Priority{types.PriorityMedium, types.PriorityHigh, types.PriorityUrgent} {
		priorities = append(priorities, readline.PcItem(string(p)))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("add",
			readline.PcItem("--category", categories...),
			readline.PcItem("--priority", priorities...),
		),
		readline.PcItem("later"),
		readline.PcItem("plan"),
		readline.PcItem("confirm"),
		readline.PcItem("cancel"),
		readline.PcItem("pending"),
		readline.PcItem("list"),
		readline.PcItem("later-list"),
		readline.PcItem("search"),
		readline.PcItem("stats"),
		readline.PcItem("done", taskIDs),
		readline.PcItem("rm", taskIDs),
		readline.PcItem("defer", taskIDs),
		readline.PcItem("rm-later", deferredIDs),
		readline.PcItem("today", deferredIDs),
		readline.PcItem("theme",
			readline.PcItem(string(types.ThemeLight)),
			readline.PcItem(string(types.ThemeDark)),
		),
		readline.PcItem("help"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}

func (r *REPL) taskIDs() []string {
	tasks, err := r.tracker.TodayTasks(r.ctx)
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, tracker.ShortID(t.ID))
	}
	return ids
}

func (r *REPL) deferredIDs() []string {
	items, err := r.tracker.DeferredItems(r.ctx)
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(items))
	for _, d := range items {
		ids = append(ids, tracker.ShortID(d.ID))
	}
	return ids
}
