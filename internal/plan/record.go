package plan

import (
	"time"

	"github.com/felixgeelhaar/plancraft/internal/domain"
)

// On-disk record schema. Plan and task records group their fields into
// metadata/summary/status/dependencies/execution sections; enum-like fields
// serialize as lowercase strings and timestamps as RFC3339. The round trip
// is lossless except tasks_summary, which is recomputed on every save.

type planRecord struct {
	Metadata     planMetadata     `yaml:"metadata"`
	Summary      planSummary      `yaml:"summary"`
	Status       planStatusGroup  `yaml:"status"`
	Execution    executionGroup   `yaml:"execution"`
	TasksSummary taskSummaryGroup `yaml:"tasks_summary"`
}

type planMetadata struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Version   string   `yaml:"version"`
	CreatedAt string   `yaml:"created_at,omitempty"`
	UpdatedAt string   `yaml:"updated_at,omitempty"`
	Author    string   `yaml:"author,omitempty"`
	Tags      []string `yaml:"tags"`
}

type planSummary struct {
	Brief        string   `yaml:"brief"`
	Objectives   []string `yaml:"objectives"`
	Deliverables []string `yaml:"deliverables"`
}

type planStatusGroup struct {
	Current    string `yaml:"current"`
	IsApproved bool   `yaml:"is_approved"`
	ApprovedBy string `yaml:"approved_by,omitempty"`
	ApprovedAt string `yaml:"approved_at,omitempty"`
}

type executionGroup struct {
	StartedAt   string `yaml:"started_at,omitempty"`
	CompletedAt string `yaml:"completed_at,omitempty"`
	Progress    int    `yaml:"progress"`
}

type taskSummaryGroup struct {
	Total      int `yaml:"total"`
	Completed  int `yaml:"completed"`
	InProgress int `yaml:"in_progress"`
	Blocked    int `yaml:"blocked"`
}

type taskRecord struct {
	Metadata     taskMetadata    `yaml:"metadata"`
	Summary      taskSummary     `yaml:"summary"`
	Status       taskStatusGroup `yaml:"status"`
	Dependencies dependencyGroup `yaml:"dependencies"`
	Execution    taskExecution   `yaml:"execution"`
}

type taskMetadata struct {
	ID        string `yaml:"id"`
	Order     int    `yaml:"order"`
	CreatedAt string `yaml:"created_at,omitempty"`
	UpdatedAt string `yaml:"updated_at,omitempty"`
}

type taskSummary struct {
	Title          string  `yaml:"title"`
	Description    string  `yaml:"description"`
	Priority       string  `yaml:"priority"`
	EstimatedHours float64 `yaml:"estimated_hours"`
}

type taskStatusGroup struct {
	Current     string `yaml:"current"`
	StartedAt   string `yaml:"started_at,omitempty"`
	CompletedAt string `yaml:"completed_at,omitempty"`
	Progress    int    `yaml:"progress"`
}

type dependencyGroup struct {
	Requires []string `yaml:"requires"`
	Blocks   []string `yaml:"blocks"`
}

type taskExecution struct {
	AssignedTo string   `yaml:"assigned_to,omitempty"`
	Notes      string   `yaml:"notes"`
	Artifacts  []string `yaml:"artifacts"`
}

// formatTime renders a timestamp as RFC3339, empty for the zero value
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses an RFC3339 timestamp, zero value for empty or malformed input
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func (p *Plan) toRecord() planRecord {
	summary := p.Summary()
	return planRecord{
		Metadata: planMetadata{
			ID:        p.ID,
			Name:      p.Name,
			Version:   p.Version,
			CreatedAt: formatTime(p.CreatedAt),
			UpdatedAt: formatTime(p.UpdatedAt),
			Author:    p.Author,
			Tags:      p.Tags,
		},
		Summary: planSummary{
			Brief:        p.Brief,
			Objectives:   p.Objectives,
			Deliverables: p.Deliverables,
		},
		Status: planStatusGroup{
			Current:    p.Status.String(),
			IsApproved: p.IsApproved,
			ApprovedBy: p.ApprovedBy,
			ApprovedAt: formatTime(p.ApprovedAt),
		},
		Execution: executionGroup{
			StartedAt:   formatTime(p.StartedAt),
			CompletedAt: formatTime(p.CompletedAt),
			Progress:    p.Progress,
		},
		TasksSummary: taskSummaryGroup{
			Total:      summary.Total,
			Completed:  summary.Completed,
			InProgress: summary.InProgress,
			Blocked:    summary.Blocked,
		},
	}
}

func planFromRecord(r planRecord) *Plan {
	status := domain.PlanStatus(r.Status.Current)
	if status == "" {
		status = domain.PlanDraft
	}
	return &Plan{
		ID:           r.Metadata.ID,
		Name:         r.Metadata.Name,
		Version:      r.Metadata.Version,
		CreatedAt:    parseTime(r.Metadata.CreatedAt),
		UpdatedAt:    parseTime(r.Metadata.UpdatedAt),
		Author:       r.Metadata.Author,
		Tags:         r.Metadata.Tags,
		Brief:        r.Summary.Brief,
		Objectives:   r.Summary.Objectives,
		Deliverables: r.Summary.Deliverables,
		Status:       status,
		IsApproved:   r.Status.IsApproved,
		ApprovedBy:   r.Status.ApprovedBy,
		ApprovedAt:   parseTime(r.Status.ApprovedAt),
		StartedAt:    parseTime(r.Execution.StartedAt),
		CompletedAt:  parseTime(r.Execution.CompletedAt),
		Progress:     r.Execution.Progress,
	}
}

func (t *Task) toRecord() taskRecord {
	return taskRecord{
		Metadata: taskMetadata{
			ID:        t.ID,
			Order:     t.Order,
			CreatedAt: formatTime(t.CreatedAt),
			UpdatedAt: formatTime(t.UpdatedAt),
		},
		Summary: taskSummary{
			Title:          t.Title,
			Description:    t.Description,
			Priority:       t.Priority.String(),
			EstimatedHours: t.EstimatedHours,
		},
		Status: taskStatusGroup{
			Current:     t.Status.String(),
			StartedAt:   formatTime(t.StartedAt),
			CompletedAt: formatTime(t.CompletedAt),
			Progress:    t.Progress,
		},
		Dependencies: dependencyGroup{
			Requires: t.Requires,
			Blocks:   t.Blocks,
		},
		Execution: taskExecution{
			AssignedTo: t.AssignedTo,
			Notes:      t.Notes,
			Artifacts:  t.Artifacts,
		},
	}
}

func taskFromRecord(r taskRecord) *Task {
	status := domain.TaskStatus(r.Status.Current)
	if status == "" {
		status = domain.TaskPending
	}
	priority := domain.Priority(r.Summary.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	return &Task{
		ID:             r.Metadata.ID,
		Order:          r.Metadata.Order,
		CreatedAt:      parseTime(r.Metadata.CreatedAt),
		UpdatedAt:      parseTime(r.Metadata.UpdatedAt),
		Title:          r.Summary.Title,
		Description:    r.Summary.Description,
		Priority:       priority,
		EstimatedHours: r.Summary.EstimatedHours,
		Status:         status,
		StartedAt:      parseTime(r.Status.StartedAt),
		CompletedAt:    parseTime(r.Status.CompletedAt),
		Progress:       r.Status.Progress,
		Requires:       r.Dependencies.Requires,
		Blocks:         r.Dependencies.Blocks,
		AssignedTo:     r.Execution.AssignedTo,
		Notes:          r.Execution.Notes,
		Artifacts:      r.Execution.Artifacts,
	}
}
