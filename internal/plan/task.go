package plan

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/plancraft/internal/domain"
)

// Task represents a single unit of work within a plan.
//
// A task carries its own dependency edges: Requires lists the IDs of tasks
// that must complete before this one, Blocks lists tasks that depend on this
// one. The two sets form a non-enforced inverse relationship — the model
// never synchronizes them, matching how records accumulate in practice.
type Task struct {
	// Metadata
	ID        string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time

	// Summary
	Title          string
	Description    string
	Priority       domain.Priority
	EstimatedHours float64

	// Status
	Status      domain.TaskStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Progress    int

	// Dependencies
	Requires []string
	Blocks   []string

	// Execution
	AssignedTo string
	Notes      string
	Artifacts  []string
}

// NewTask creates a pending task with stamped timestamps.
// An empty id gets a generated short uuid.
func NewTask(id, title string) *Task {
	if id == "" {
		id = uuid.New().String()[:8]
	}
	now := time.Now().UTC()
	return &Task{
		ID:        id,
		Title:     title,
		Priority:  domain.PriorityMedium,
		Status:    domain.TaskPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateStatus sets the task status and maintains the lifecycle timestamps:
// first entry into executing stamps StartedAt (never overwritten), completed
// stamps CompletedAt and forces progress to 100, failed stamps CompletedAt
// only. No transition table is enforced here; validity is advisory and
// checked by the validator.
func (t *Task) UpdateStatus(status domain.TaskStatus) {
	t.Status = status
	t.UpdatedAt = time.Now().UTC()

	if status == domain.TaskExecuting && t.StartedAt.IsZero() {
		t.StartedAt = time.Now().UTC()
	}

	if status == domain.TaskCompleted || status == domain.TaskFailed {
		t.CompletedAt = time.Now().UTC()
		if status == domain.TaskCompleted {
			t.Progress = 100
		}
	}
}

// UpdateProgress sets the task progress, clamped to [0,100]. Reaching 100
// cascades into UpdateStatus(completed) unless the task already is — the
// only automatic status transition in the model.
func (t *Task) UpdateProgress(progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	t.Progress = progress
	t.UpdatedAt = time.Now().UTC()

	if t.Progress == 100 && t.Status != domain.TaskCompleted {
		t.UpdateStatus(domain.TaskCompleted)
	}
}

// AddDependency records that this task requires another. Idempotent.
func (t *Task) AddDependency(taskID string) {
	for _, id := range t.Requires {
		if id == taskID {
			return
		}
	}
	t.Requires = append(t.Requires, taskID)
	t.UpdatedAt = time.Now().UTC()
}

// RemoveDependency removes a required task ID if present
func (t *Task) RemoveDependency(taskID string) {
	for i, id := range t.Requires {
		if id == taskID {
			t.Requires = append(t.Requires[:i], t.Requires[i+1:]...)
			t.UpdatedAt = time.Now().UTC()
			return
		}
	}
}

// AddBlocker records that this task blocks another. Idempotent.
// The inverse Requires edge on the other task is NOT created here.
func (t *Task) AddBlocker(taskID string) {
	for _, id := range t.Blocks {
		if id == taskID {
			return
		}
	}
	t.Blocks = append(t.Blocks, taskID)
	t.UpdatedAt = time.Now().UTC()
}

// IsReady reports whether every required task ID appears in completedIDs.
// A task with no requirements is always ready.
func (t *Task) IsReady(completedIDs []string) bool {
	for _, req := range t.Requires {
		found := false
		for _, id := range completedIDs {
			if id == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Assign assigns the task to someone
func (t *Task) Assign(assignee string) {
	t.AssignedTo = assignee
	t.UpdatedAt = time.Now().UTC()
}

// AddArtifact records a produced file path on the task. Idempotent.
func (t *Task) AddArtifact(path string) {
	for _, a := range t.Artifacts {
		if a == path {
			return
		}
	}
	t.Artifacts = append(t.Artifacts, path)
	t.UpdatedAt = time.Now().UTC()
}

// AddNotes appends free-form notes, separated by a blank line
func (t *Task) AddNotes(note string) {
	if t.Notes != "" {
		t.Notes += "\n\n" + note
	} else {
		t.Notes = note
	}
	t.UpdatedAt = time.Now().UTC()
}

// String returns a short human-readable description
func (t *Task) String() string {
	return fmt.Sprintf("Task(%s: %s [%s])", t.ID, t.Title, t.Status)
}
