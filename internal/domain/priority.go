package domain

import "fmt"

// Priority represents a task priority level.
// This is a value object that enforces valid priority values.
type Priority string

// Valid priority levels
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// NewPriority creates a new Priority value object with validation
func NewPriority(value string) (Priority, error) {
	p := Priority(value)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate checks if the priority is valid
func (p Priority) Validate() error {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return nil
	default:
		return fmt.Errorf("invalid priority %q: must be critical, high, medium, or low", string(p))
	}
}

// String returns the string representation
func (p Priority) String() string {
	return string(p)
}

// Rank returns the scheduling rank of a priority. Lower ranks sort first.
// Unknown values rank as medium so malformed records still get scheduled.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// IsHigherThan checks if this priority outranks another
func (p Priority) IsHigherThan(other Priority) bool {
	return p.Rank() < other.Rank()
}
