// Package priorities orders and summarizes a day's task list.
package priorities

import (
	"fmt"
	"math"
	"sort"

	"github.com/steveyegge/taskcraft/internal/types"
)

// SortTasks orders tasks in place for display:
//   - incomplete tasks before completed ones
//   - within each group, urgent > high > medium (missing priority ranks as medium)
//
// The sort is stable, so equal tasks keep their stored (creation) order.
func SortTasks(tasks []*types.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		return a.Priority.Rank() > b.Priority.Rank()
	})
}

// CompletionRate returns the completed share of total as a whole percent,
// rounded half away from zero. Zero tasks yields 0.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Summarize computes the day statistics for the given day's tasks and the
// size of the deferred list
func Summarize(dayTasks []*types.Task, deferredCount int) types.Stats {
	completed := 0
	for _, t := range dayTasks {
		if t.Completed {
			completed++
		}
	}
	return types.Stats{
		TodayCount:     len(dayTasks),
		CompletedCount: completed,
		DeferredCount:  deferredCount,
		CompletionRate: CompletionRate(completed, len(dayTasks)),
	}
}

// ProgressLabel is the short counter shown above a day's list
func ProgressLabel(s types.Stats) string {
	switch {
	case s.TodayCount == 0:
		return "No tasks"
	case s.CompletedCount == s.TodayCount:
		return "All done! 🎉"
	default:
		return fmt.Sprintf("%d/%d done", s.CompletedCount, s.TodayCount)
	}
}
