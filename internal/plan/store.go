package plan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/plancraft/internal/config"
	"github.com/felixgeelhaar/plancraft/internal/errors"
	"github.com/felixgeelhaar/plancraft/internal/log"
)

// Store defines the persistence contract for plan and task records.
// The interface enables dependency injection and makes testing easier.
type Store interface {
	// LoadPlan reads a plan and all its task records by plan name
	LoadPlan(name string) (*Plan, error)

	// SavePlan writes a plan record, recomputing its tasks summary
	SavePlan(p *Plan) error

	// DeletePlan removes a plan and all its task records
	DeletePlan(name string) error

	// LoadTasks reads all task records for a plan in file-name order
	LoadTasks(planName string) ([]*Task, error)

	// SaveTask writes a single task record under a plan
	SaveTask(planName string, t *Task) error

	// DeleteTask removes a single task record under a plan
	DeleteTask(planName, taskID string) error

	// ListPlans returns the sorted names of all stored plans
	ListPlans() ([]string, error)

	// PlanExists reports whether a plan record exists
	PlanExists(name string) bool
}

// FileStore implements Store over the workspace directory tree:
// plans/<name>/plan.yaml plus plans/<name>/tasks/task-<id>.yaml.
type FileStore struct {
	cfg    *config.Config
	logger *log.Logger
}

// NewFileStore creates a file-based store rooted at the given workspace config
func NewFileStore(cfg *config.Config, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &FileStore{cfg: cfg, logger: logger}
}

// LoadPlan reads a plan record and its task records from the workspace.
// A missing plan surfaces as a distinct not-found error; a corrupt or
// unreadable task file is logged and skipped without aborting the load.
func (s *FileStore) LoadPlan(name string) (*Plan, error) {
	path := s.cfg.PlanFile(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewPlanNotFoundError(name)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read plan file", err)
	}

	var record planRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, errors.NewFileUnmarshalError(path, "yaml", err)
	}

	p := planFromRecord(record)
	p.SetStore(s)

	tasks, err := s.LoadTasks(name)
	if err != nil {
		return nil, err
	}
	p.setTasks(tasks)

	s.logger.Debug("plan loaded", "plan", name, "tasks", len(tasks))
	return p, nil
}

// LoadTasks enumerates and deserializes all task records for a plan in
// file-name order. Per-file failures are isolated.
func (s *FileStore) LoadTasks(planName string) ([]*Task, error) {
	dir := s.cfg.TasksDir(planName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("tasks directory not found", "plan", planName, "dir", dir)
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read tasks directory", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "task-") || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var tasks []*Task
	for _, name := range names {
		path := filepath.Join(dir, name)
		task, err := s.loadTask(path)
		if err != nil {
			s.logger.WithError(err).Warn("skipping unreadable task record", "plan", planName, "file", name)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *FileStore) loadTask(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read task file", err)
	}

	var record taskRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, errors.NewFileUnmarshalError(path, "yaml", err)
	}
	return taskFromRecord(record), nil
}

// SavePlan writes the plan record, creating the plan and tasks directories
// as needed. The tasks summary is recomputed from the in-memory task list.
func (s *FileStore) SavePlan(p *Plan) error {
	for _, dir := range []string{s.cfg.PlanDir(p.Name), s.cfg.TasksDir(p.Name)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeDirectoryFailed, "create plan directory", err)
		}
	}

	data, err := yaml.Marshal(p.toRecord())
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal plan", err)
	}

	if err := os.WriteFile(s.cfg.PlanFile(p.Name), data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write plan file", err)
	}

	s.logger.Debug("plan saved", "plan", p.Name)
	return nil
}

// DeletePlan removes the plan directory including all task records
func (s *FileStore) DeletePlan(name string) error {
	if !s.PlanExists(name) {
		return errors.NewPlanNotFoundError(name)
	}
	if err := os.RemoveAll(s.cfg.PlanDir(name)); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "delete plan directory", err)
	}
	s.logger.Info("plan deleted", "plan", name)
	return nil
}

// SaveTask writes a single task record under the plan's tasks directory
func (s *FileStore) SaveTask(planName string, t *Task) error {
	if err := os.MkdirAll(s.cfg.TasksDir(planName), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, "create tasks directory", err)
	}

	data, err := yaml.Marshal(t.toRecord())
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal task", err)
	}

	if err := os.WriteFile(s.cfg.TaskFile(planName, t.ID), data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write task file", err)
	}

	s.logger.Debug("task saved", "plan", planName, "task", t.ID)
	return nil
}

// DeleteTask removes a single task record. Deleting an absent record is not
// an error; the cascade from Plan.RemoveTask must stay idempotent.
func (s *FileStore) DeleteTask(planName, taskID string) error {
	path := s.cfg.TaskFile(planName, taskID)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "delete task file", err)
	}
	return nil
}

// ListPlans returns the sorted names of all plans in the workspace
func (s *FileStore) ListPlans() ([]string, error) {
	return s.cfg.ListPlans()
}

// PlanExists reports whether a plan record exists
func (s *FileStore) PlanExists(name string) bool {
	return s.cfg.PlanExists(name)
}

// Compile-time verification that FileStore implements Store
var _ Store = (*FileStore)(nil)
