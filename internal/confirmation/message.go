package confirmation

import (
	"fmt"

	"github.com/steveyegge/taskcraft/internal/deduplication"
	"github.com/steveyegge/taskcraft/internal/types"
)

// Message is the question shown to the user for a held duplicate
func Message(match *deduplication.Match, pending types.PendingTask) string {
	existing := ""
	if match != nil {
		existing = match.Text()
	}
	switch {
	case pending.Target == types.TargetDeferred:
		return fmt.Sprintf("You already have %q in do later. Add anyway?", existing)
	case pending.ScheduledDate != "":
		return fmt.Sprintf("You already have %q. Schedule anyway?", existing)
	default:
		return fmt.Sprintf("You already have %q. Do you still want to add %q?", existing, pending.Text)
	}
}
