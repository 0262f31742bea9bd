package priorities

import (
	"testing"

	"github.com/steveyegge/taskcraft/internal/types"
)

func task(id string, p types.Priority, completed bool) *types.Task {
	return &types.Task{ID: id, Text: id, Priority: p, Completed: completed}
}

func ids(tasks []*types.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestSortTasks(t *testing.T) {
	tests := []struct {
		name  string
		tasks []*types.Task
		want  []string
	}{
		{
			name: "priority order",
			tasks: []*types.Task{
				task("m", types.PriorityMedium, false),
				task("u", types.PriorityUrgent, false),
				task("h", types.PriorityHigh, false),
			},
			want: []string{"u", "h", "m"},
		},
		{
			name: "completed sink below incomplete",
			tasks: []*types.Task{
				task("done-urgent", types.PriorityUrgent, true),
				task("open-medium", types.PriorityMedium, false),
			},
			want: []string{"open-medium", "done-urgent"},
		},
		{
			name: "stable for equal keys",
			tasks: []*types.Task{
				task("a", types.PriorityHigh, false),
				task("b", types.PriorityHigh, false),
				task("c", types.PriorityHigh, false),
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "missing priority ranks as medium",
			tasks: []*types.Task{
				task("none", "", false),
				task("medium", types.PriorityMedium, false),
				task("high", types.PriorityHigh, false),
			},
			want: []string{"high", "none", "medium"},
		},
		{
			name: "mixed",
			tasks: []*types.Task{
				task("d-m", types.PriorityMedium, true),
				task("o-m", types.PriorityMedium, false),
				task("d-u", types.PriorityUrgent, true),
				task("o-u", types.PriorityUrgent, false),
			},
			want: []string{"o-u", "o-m", "d-u", "d-m"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortTasks(tt.tasks)
			got := ids(tt.tasks)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("SortTasks() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds up
		{3, 3, 100},
	}

	for _, tt := range tests {
		if got := CompletionRate(tt.completed, tt.total); got != tt.want {
			t.Errorf("CompletionRate(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	day := []*types.Task{
		task("a", types.PriorityMedium, true),
		task("b", types.PriorityMedium, false),
		task("c", types.PriorityMedium, false),
	}
	got := Summarize(day, 4)
	want := types.Stats{TodayCount: 3, CompletedCount: 1, DeferredCount: 4, CompletionRate: 33}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}

	if empty := Summarize(nil, 0); empty != (types.Stats{}) {
		t.Errorf("Summarize(nil) = %+v, want zero stats", empty)
	}
}

func TestProgressLabel(t *testing.T) {
	tests := []struct {
		stats types.Stats
		want  string
	}{
		{types.Stats{}, "No tasks"},
		{types.Stats{TodayCount: 2, CompletedCount: 2}, "All done! 🎉"},
		{types.Stats{TodayCount: 3, CompletedCount: 1}, "1/3 done"},
	}
	for _, tt := range tests {
		if got := ProgressLabel(tt.stats); got != tt.want {
			t.Errorf("ProgressLabel(%+v) = %q, want %q", tt.stats, got, tt.want)
		}
	}
}
