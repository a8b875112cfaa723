package domain

import "fmt"

// TaskStatus represents the lifecycle state of a task.
//
// The entity enforces no transition table: any status may be set from any
// other. Transition validity is advisory and checked by the plan validator,
// because some callers intentionally rely on loose transitions (e.g. marking
// a failed task completed after a manual fix).
type TaskStatus string

// Valid task statuses
const (
	TaskPending   TaskStatus = "pending"
	TaskReady     TaskStatus = "ready"
	TaskExecuting TaskStatus = "executing"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
	TaskBlocked   TaskStatus = "blocked"
)

// NewTaskStatus creates a new TaskStatus value object with validation
func NewTaskStatus(value string) (TaskStatus, error) {
	s := TaskStatus(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks if the task status is valid
func (s TaskStatus) Validate() error {
	switch s {
	case TaskPending, TaskReady, TaskExecuting, TaskCompleted, TaskFailed, TaskBlocked:
		return nil
	default:
		return fmt.Errorf("invalid task status %q: must be pending, ready, executing, completed, failed, or blocked", string(s))
	}
}

// String returns the string representation
func (s TaskStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status marks finished work
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// PlanStatus represents the lifecycle state of a plan.
// Like TaskStatus, transitions are not enforced by the entity itself.
type PlanStatus string

// Valid plan statuses
const (
	PlanDraft     PlanStatus = "draft"
	PlanPending   PlanStatus = "pending"
	PlanApproved  PlanStatus = "approved"
	PlanExecuting PlanStatus = "executing"
	PlanCompleted PlanStatus = "completed"
	PlanFailed    PlanStatus = "failed"
	PlanCancelled PlanStatus = "cancelled"
)

// NewPlanStatus creates a new PlanStatus value object with validation
func NewPlanStatus(value string) (PlanStatus, error) {
	s := PlanStatus(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks if the plan status is valid
func (s PlanStatus) Validate() error {
	switch s {
	case PlanDraft, PlanPending, PlanApproved, PlanExecuting, PlanCompleted, PlanFailed, PlanCancelled:
		return nil
	default:
		return fmt.Errorf("invalid plan status %q: must be draft, pending, approved, executing, completed, failed, or cancelled", string(s))
	}
}

// String returns the string representation
func (s PlanStatus) String() string {
	return string(s)
}

// IsClosed reports whether the plan can no longer change
func (s PlanStatus) IsClosed() bool {
	return s == PlanCompleted || s == PlanFailed || s == PlanCancelled
}
