package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for scheduled dates and scopes
const DateLayout = "2006-01-02"

// ErrEmptyText is returned when task or deferred item text is blank after trimming
var ErrEmptyText = errors.New("text is required")

// Task represents one actionable item, either for today or pre-planned for a date
type Task struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Category      Category  `json:"category"`
	Priority      Priority  `json:"priority"`
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"created_at"`
	ScheduledDate string    `json:"scheduled_date,omitempty"` // YYYY-MM-DD, empty for today's tasks
}

// Validate checks if the task has valid field values
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("invalid category: %s", t.Category)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", t.Priority)
	}
	if t.ScheduledDate != "" {
		if _, err := ParseDate(t.ScheduledDate); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDefaults fills in category and priority for records written without them.
// Pre-planned tasks historically carried no priority.
func (t *Task) ApplyDefaults() {
	if t.Category == "" {
		t.Category = CategoryPersonal
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

// IsScheduled reports whether the task was pre-planned for a specific date
func (t *Task) IsScheduled() bool {
	return t.ScheduledDate != ""
}

// IsForDate reports whether the task belongs to the given day's list.
// Scheduled tasks belong to their scheduled date, others to their creation date.
func (t *Task) IsForDate(date string) bool {
	if t.IsScheduled() {
		return t.ScheduledDate == date
	}
	return t.CreatedAt.In(time.Local).Format(DateLayout) == date
}

// DeferredItem is a "do later" entry. It carries no category, priority or completion state.
type DeferredItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the deferred item has valid field values
func (d *DeferredItem) Validate() error {
	if strings.TrimSpace(d.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// PendingTask is the candidate data captured while a duplicate add awaits confirmation
type PendingTask struct {
	Target        Target   `json:"target"`
	Text          string   `json:"text"`
	Category      Category `json:"category,omitempty"`
	Priority      Priority `json:"priority,omitempty"`
	ScheduledDate string   `json:"scheduled_date,omitempty"`
}

// Target says which list a pending entry is added to once confirmed
type Target string

const (
	TargetTask     Target = "task"
	TargetDeferred Target = "deferred"
)

// Category groups tasks by area of life
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryStudy    Category = "study"
	CategoryHealth   Category = "health"
)

// IsValid checks if the category value is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryStudy, CategoryHealth:
		return true
	}
	return false
}

// ParseCategory converts user input to a Category, defaulting to personal when empty
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryPersonal, nil
	}
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category %q (expected personal, work, study or health)", s)
	}
	return c, nil
}

// Priority represents how pressing a task is
type Priority string

const (
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority value is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities: urgent > high > medium. Unknown values rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	default:
		return 1
	}
}

// Label is the display name of the priority
func (p Priority) Label() string {
	switch p {
	case PriorityUrgent:
		return "Urgent"
	case PriorityHigh:
		return "High"
	default:
		return "Normal"
	}
}

// ParsePriority converts user input to a Priority, defaulting to medium when empty
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority %q (expected medium, high or urgent)", s)
	}
	return p, nil
}

// Theme is the persisted display theme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid checks if the theme value is valid
func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark:
		return true
	}
	return false
}

// Stats summarizes the today list and the deferred list
type Stats struct {
	TodayCount     int `json:"today_count"`
	CompletedCount int `json:"completed_count"`
	DeferredCount  int `json:"deferred_count"`
	CompletionRate int `json:"completion_rate"` // percent, rounded
}

// CleanText trims surrounding whitespace and rejects blank input
func CleanText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyText
	}
	return s, nil
}

// ParseDate validates a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

// Today returns the current local date in DateLayout
func Today() string {
	return time.Now().Format(DateLayout)
}
