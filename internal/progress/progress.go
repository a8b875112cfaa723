// Package progress renders plan and task progress for CLI output.
package progress

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/plancraft/internal/domain"
)

// DefaultBarWidth is the bar width used by the CLI commands.
const DefaultBarWidth = 30

// Bar renders percent as a fixed-width text bar.
// Percent is clamped to [0, 100].
func Bar(percent, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := width * percent / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// StatusSymbol maps a task status to a one-rune marker for list output.
func StatusSymbol(status domain.TaskStatus) string {
	switch status {
	case domain.TaskCompleted:
		return "✓"
	case domain.TaskExecuting:
		return "▶"
	case domain.TaskFailed:
		return "✗"
	case domain.TaskBlocked:
		return "⊘"
	case domain.TaskReady:
		return "○"
	default:
		return "·"
	}
}

// SummaryLine formats a one-line task count summary for a plan.
func SummaryLine(total, completed, inProgress, blocked int) string {
	line := fmt.Sprintf("%d/%d tasks completed", completed, total)
	if inProgress > 0 {
		line += fmt.Sprintf(" | %d in progress", inProgress)
	}
	if blocked > 0 {
		line += fmt.Sprintf(" | %d blocked", blocked)
	}
	return line
}
