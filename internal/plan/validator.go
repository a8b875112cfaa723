package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/plancraft/internal/domain"
)

// Severity classifies a validation issue
type Severity string

// Issue severities
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue describes a single data-quality finding
type Issue struct {
	Severity Severity
	Message  string
	Context  map[string]any
}

// ValidationResult aggregates the findings of a consistency check.
// Data-quality problems are never returned as Go errors — callers inspect
// the result and decide whether to abort.
type ValidationResult struct {
	Errors   []Issue
	Warnings []Issue
}

// IsValid reports whether the check found no errors. Warnings do not
// affect validity.
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// HasWarnings reports whether the check found any warnings
func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Issues returns all findings, errors first
func (r ValidationResult) Issues() []Issue {
	issues := make([]Issue, 0, len(r.Errors)+len(r.Warnings))
	issues = append(issues, r.Errors...)
	issues = append(issues, r.Warnings...)
	return issues
}

func (r *ValidationResult) addError(message string, context map[string]any) {
	r.Errors = append(r.Errors, Issue{Severity: SeverityError, Message: message, Context: context})
}

func (r *ValidationResult) addWarning(message string, context map[string]any) {
	r.Warnings = append(r.Warnings, Issue{Severity: SeverityWarning, Message: message, Context: context})
}

func (r *ValidationResult) merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// maxDependencies is the soft limit above which a task is flagged as a
// candidate for decomposition.
const maxDependencies = 10

// DetectCircularDependencies finds requires-cycles among the given tasks.
//
// Traversal is depth-first over the tasks in input order, following each
// task's Requires edges in their stored order, so detection is deterministic
// for a fixed input but not canonicalized across reorderings. Each unvisited
// DFS root reports at most one cycle: the path slice from the revisited
// node's first occurrence through the revisit, inclusive. O(V+E).
func DetectCircularDependencies(tasks []*Task) [][]string {
	graph := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		graph[t.ID] = t.Requires
	}

	var cycles [][]string
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	var path []string

	var dfs func(node string) bool
	dfs = func(node string) bool {
		visited[node] = true
		recStack[node] = true
		path = append(path, node)

		for _, neighbor := range graph[node] {
			if !visited[neighbor] {
				if dfs(neighbor) {
					return true
				}
			} else if recStack[neighbor] {
				start := 0
				for i, id := range path {
					if id == neighbor {
						start = i
						break
					}
				}
				cycle := make([]string, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, neighbor)
				cycles = append(cycles, cycle)
				return true
			}
		}

		path = path[:len(path)-1]
		recStack[node] = false
		return false
	}

	for _, t := range tasks {
		if !visited[t.ID] {
			dfs(t.ID)
		}
	}

	return cycles
}

// ValidateTaskDependencies checks a single task's dependency edges against
// the full task set: dangling requires/blocks references and membership in a
// cycle are errors, an oversized requires set is a warning.
func ValidateTaskDependencies(task *Task, allTasks []*Task) ValidationResult {
	var result ValidationResult

	taskIDs := make(map[string]bool, len(allTasks))
	for _, t := range allTasks {
		taskIDs[t.ID] = true
	}

	for _, reqID := range task.Requires {
		if !taskIDs[reqID] {
			result.addError(
				fmt.Sprintf("task %s requires non-existent task %s", task.ID, reqID),
				map[string]any{"task_id": task.ID, "missing_dependency": reqID},
			)
		}
	}

	for _, blockedID := range task.Blocks {
		if !taskIDs[blockedID] {
			result.addError(
				fmt.Sprintf("task %s blocks non-existent task %s", task.ID, blockedID),
				map[string]any{"task_id": task.ID, "missing_blocked": blockedID},
			)
		}
	}

	for _, cycle := range DetectCircularDependencies(allTasks) {
		for _, id := range cycle {
			if id == task.ID {
				result.addError(
					fmt.Sprintf("circular dependency detected: %s", strings.Join(cycle, " -> ")),
					map[string]any{"task_id": task.ID, "cycle": cycle},
				)
				break
			}
		}
	}

	if len(task.Requires) > maxDependencies {
		result.addWarning(
			fmt.Sprintf("task %s has %d dependencies (consider breaking it down)", task.ID, len(task.Requires)),
			map[string]any{"task_id": task.ID, "dependency_count": len(task.Requires)},
		)
	}

	return result
}

// ValidatePlan checks an entire plan: required fields, every task's
// dependency consistency, and plan/task status coherence.
func ValidatePlan(p *Plan) ValidationResult {
	var result ValidationResult

	if strings.TrimSpace(p.Name) == "" {
		result.addError("plan must have a name", map[string]any{"plan_id": p.ID})
	}

	tasks := p.Tasks()
	if len(tasks) == 0 {
		result.addWarning(
			fmt.Sprintf("plan %s has no tasks", p.Name),
			map[string]any{"plan_name": p.Name},
		)
	} else {
		for _, task := range tasks {
			result.merge(ValidateTaskDependencies(task, tasks))
		}

		allCompleted := true
		anyFailed := false
		for _, t := range tasks {
			if t.Status != domain.TaskCompleted {
				allCompleted = false
			}
			if t.Status == domain.TaskFailed {
				anyFailed = true
			}
		}

		if allCompleted && p.Status != domain.PlanCompleted && p.Status != domain.PlanCancelled {
			result.addWarning(
				fmt.Sprintf("plan %s: all tasks completed but plan status is %s", p.Name, p.Status),
				map[string]any{"plan_name": p.Name, "plan_status": p.Status.String()},
			)
		}

		if anyFailed && p.Status != domain.PlanFailed && p.Status != domain.PlanCancelled {
			result.addWarning(
				fmt.Sprintf("plan %s: some tasks failed but plan status is %s", p.Name, p.Status),
				map[string]any{"plan_name": p.Name, "plan_status": p.Status.String()},
			)
		}
	}

	if len(p.Objectives) == 0 {
		result.addWarning(
			fmt.Sprintf("plan %s has no objectives defined", p.Name),
			map[string]any{"plan_name": p.Name},
		)
	}

	if len(p.Deliverables) == 0 {
		result.addWarning(
			fmt.Sprintf("plan %s has no deliverables defined", p.Name),
			map[string]any{"plan_name": p.Name},
		)
	}

	return result
}

// CheckTaskReady reports whether a task is ready to execute. When it is not,
// the returned reason explains why: a terminal or blocked status, or the
// first unmet dependency in stored order — named by title when the
// dependency task exists, by bare ID when it dangles.
func CheckTaskReady(task *Task, allTasks []*Task) (bool, string) {
	switch task.Status {
	case domain.TaskCompleted:
		return false, "task already completed"
	case domain.TaskFailed:
		return false, "task has failed"
	case domain.TaskBlocked:
		return false, "task is blocked"
	}

	completed := make(map[string]bool, len(allTasks))
	for _, t := range allTasks {
		if t.Status == domain.TaskCompleted {
			completed[t.ID] = true
		}
	}

	for _, reqID := range task.Requires {
		if completed[reqID] {
			continue
		}
		for _, t := range allTasks {
			if t.ID == reqID {
				return false, fmt.Sprintf("waiting for task %s (%s)", reqID, t.Title)
			}
		}
		return false, fmt.Sprintf("dependency %s not found", reqID)
	}

	return true, ""
}

// BlockedTask pairs a task with the reason it cannot proceed
type BlockedTask struct {
	Task   *Task
	Reason string
}

// FindBlockedTasks returns tasks that cannot proceed, in input order: tasks
// manually marked blocked plus tasks whose readiness check fails on an
// unmet dependency.
func FindBlockedTasks(tasks []*Task) []BlockedTask {
	var blocked []BlockedTask

	for _, task := range tasks {
		if task.Status == domain.TaskBlocked {
			blocked = append(blocked, BlockedTask{Task: task, Reason: "manually marked as blocked"})
			continue
		}

		ready, reason := CheckTaskReady(task, tasks)
		if !ready && strings.Contains(reason, "waiting for") {
			blocked = append(blocked, BlockedTask{Task: task, Reason: reason})
		}
	}

	return blocked
}

// SuggestNextTasks returns the plan's ready tasks ranked for execution:
// priority first (critical before low), then task order. The sort is stable,
// so tasks with equal priority and order keep their stored relative order.
// Pure query — no state is mutated.
func SuggestNextTasks(p *Plan) []*Task {
	tasks := p.Tasks()

	var ready []*Task
	for _, task := range tasks {
		if ok, _ := CheckTaskReady(task, tasks); ok {
			ready = append(ready, task)
		}
	}

	sort.SliceStable(ready, func(i, j int) bool {
		ri, rj := ready[i].Priority.Rank(), ready[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return ready[i].Order < ready[j].Order
	})

	return ready
}
