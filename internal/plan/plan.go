package plan

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/plancraft/internal/domain"
	"github.com/felixgeelhaar/plancraft/internal/errors"
)

// Plan represents a named initiative that owns an ordered set of tasks.
//
// Tasks live in their own records and are loaded through the attached Store;
// a task belongs to exactly one plan. Plan progress is derived from task
// statuses, but only when UpdateProgress is called — task mutation never
// recomputes it implicitly.
type Plan struct {
	// Metadata
	ID        string
	Name      string
	Version   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    string
	Tags      []string

	// Summary
	Brief        string
	Objectives   []string
	Deliverables []string

	// Status
	Status     domain.PlanStatus
	IsApproved bool
	ApprovedBy string
	ApprovedAt time.Time

	// Execution
	StartedAt   time.Time
	CompletedAt time.Time
	Progress    int

	tasks []*Task
	store Store
}

// TasksSummary holds the derived task counters persisted alongside a plan.
// It is recomputed on every save and never treated as authoritative input.
type TasksSummary struct {
	Total      int
	Completed  int
	InProgress int
	Blocked    int
}

// NewPlan creates a draft plan with a fresh UUID and stamped timestamps
func NewPlan(name string) *Plan {
	now := time.Now().UTC()
	return &Plan{
		ID:        uuid.New().String(),
		Name:      name,
		Version:   "1.0.0",
		Status:    domain.PlanDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStore attaches the persistence adapter used for task mutations
func (p *Plan) SetStore(store Store) {
	p.store = store
}

// UpdateStatus sets the plan status and maintains lifecycle timestamps:
// first entry into executing stamps StartedAt, completed stamps CompletedAt
// and forces progress to 100, failed and cancelled stamp CompletedAt only.
func (p *Plan) UpdateStatus(status domain.PlanStatus) {
	p.Status = status
	p.UpdatedAt = time.Now().UTC()

	if status == domain.PlanExecuting && p.StartedAt.IsZero() {
		p.StartedAt = time.Now().UTC()
	}

	if status.IsClosed() {
		p.CompletedAt = time.Now().UTC()
		if status == domain.PlanCompleted {
			p.Progress = 100
		}
	}
}

// Approve marks the plan approved for execution. Unconditional: any prior
// status is overwritten, no precondition applies.
func (p *Plan) Approve(approvedBy string) {
	p.IsApproved = true
	p.ApprovedBy = approvedBy
	p.ApprovedAt = time.Now().UTC()
	p.Status = domain.PlanApproved
	p.UpdatedAt = time.Now().UTC()
}

// UpdateProgress recomputes plan progress from the completed-task ratio.
// A plan with no tasks has progress 0. Reaching 100 cascades into
// UpdateStatus(completed) unless the plan already is.
func (p *Plan) UpdateProgress() {
	if len(p.tasks) == 0 {
		p.Progress = 0
		return
	}

	completed := 0
	for _, t := range p.tasks {
		if t.Status == domain.TaskCompleted {
			completed++
		}
	}
	p.Progress = int(math.Round(float64(completed) / float64(len(p.tasks)) * 100))
	p.UpdatedAt = time.Now().UTC()

	if p.Progress == 100 && p.Status != domain.PlanCompleted {
		p.UpdateStatus(domain.PlanCompleted)
	}
}

// Tasks returns a copy of the plan's task list in storage order
func (p *Plan) Tasks() []*Task {
	tasks := make([]*Task, len(p.tasks))
	copy(tasks, p.tasks)
	return tasks
}

// Task returns the task with the given ID, or nil if absent
func (p *Plan) Task(taskID string) *Task {
	for _, t := range p.tasks {
		if t.ID == taskID {
			return t
		}
	}
	return nil
}

// AddTask appends a task to the plan and persists its record.
// Calling this without an attached store is a programmer error and is
// rejected immediately rather than deferred to save time.
func (p *Plan) AddTask(task *Task) error {
	if p.store == nil {
		return errors.NewStoreNotSetError(p.Name)
	}

	p.tasks = append(p.tasks, task)
	p.UpdatedAt = time.Now().UTC()

	if err := p.store.SaveTask(p.Name, task); err != nil {
		return err
	}
	return nil
}

// RemoveTask removes a task from the plan, cascading to deletion of its
// persisted record. Returns false if the task is not part of the plan.
func (p *Plan) RemoveTask(taskID string) (bool, error) {
	if p.store == nil {
		return false, errors.NewStoreNotSetError(p.Name)
	}

	for i, t := range p.tasks {
		if t.ID == taskID {
			p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			if err := p.store.DeleteTask(p.Name, taskID); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// ReadyTasks returns pending tasks whose requirements are all completed
func (p *Plan) ReadyTasks() []*Task {
	var completedIDs []string
	for _, t := range p.tasks {
		if t.Status == domain.TaskCompleted {
			completedIDs = append(completedIDs, t.ID)
		}
	}

	var ready []*Task
	for _, t := range p.tasks {
		if t.Status == domain.TaskPending && t.IsReady(completedIDs) {
			ready = append(ready, t)
		}
	}
	return ready
}

// Summary recomputes the task counters for persistence
func (p *Plan) Summary() TasksSummary {
	s := TasksSummary{Total: len(p.tasks)}
	for _, t := range p.tasks {
		switch t.Status {
		case domain.TaskCompleted:
			s.Completed++
		case domain.TaskExecuting:
			s.InProgress++
		case domain.TaskBlocked:
			s.Blocked++
		}
	}
	return s
}

// setTasks replaces the owned task list; used by the store on load
func (p *Plan) setTasks(tasks []*Task) {
	p.tasks = tasks
}

// String returns a short human-readable description
func (p *Plan) String() string {
	return fmt.Sprintf("Plan(%s: %s [%s])", p.Name, p.Brief, p.Status)
}
