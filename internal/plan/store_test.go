package plan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/plancraft/internal/config"
	"github.com/felixgeelhaar/plancraft/internal/domain"
	"github.com/felixgeelhaar/plancraft/internal/errors"
)

func newTestStore(t *testing.T) (*FileStore, *config.Config) {
	t.Helper()
	cfg := config.New(filepath.Join(t.TempDir(), ".plancraft"))
	require.NoError(t, cfg.InitWorkspace())
	return NewFileStore(cfg, nil), cfg
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	ts := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	p := NewPlan("billing-rework")
	p.CreatedAt = ts
	p.UpdatedAt = ts
	p.Author = "alice"
	p.Tags = []string{"billing", "q3"}
	p.Brief = "Rework the billing pipeline"
	p.Objectives = []string{"cut invoice latency"}
	p.Deliverables = []string{"new billing service"}
	p.SetStore(store)

	task := NewTask("schema", "Design schema")
	task.CreatedAt = ts
	task.UpdatedAt = ts
	task.Priority = domain.PriorityHigh
	task.EstimatedHours = 6.5
	task.Description = "Tables and indexes"
	task.Blocks = []string{"api"}
	require.NoError(t, p.AddTask(task))

	api := NewTask("api", "Build API")
	api.CreatedAt = ts
	api.UpdatedAt = ts
	api.AddDependency("schema")
	api.Assign("bob")
	api.AddNotes("start with the read path")
	api.AddArtifact("docs/api.md")
	require.NoError(t, p.AddTask(api))

	require.NoError(t, store.SavePlan(p))

	loaded, err := store.LoadPlan("billing-rework")
	require.NoError(t, err)

	assert.Equal(t, p.ID, loaded.ID)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.Version, loaded.Version)
	assert.Equal(t, p.Author, loaded.Author)
	assert.Equal(t, p.Tags, loaded.Tags)
	assert.Equal(t, p.Brief, loaded.Brief)
	assert.Equal(t, p.Objectives, loaded.Objectives)
	assert.Equal(t, p.Deliverables, loaded.Deliverables)
	assert.Equal(t, domain.PlanDraft, loaded.Status)
	assert.True(t, loaded.CreatedAt.Equal(ts))

	tasks := loaded.Tasks()
	require.Len(t, tasks, 2)
	// records load in file-name order
	assert.Equal(t, "api", tasks[0].ID)
	assert.Equal(t, "schema", tasks[1].ID)

	schema := loaded.Task("schema")
	require.NotNil(t, schema)
	assert.Equal(t, "Design schema", schema.Title)
	assert.Equal(t, "Tables and indexes", schema.Description)
	assert.Equal(t, domain.PriorityHigh, schema.Priority)
	assert.Equal(t, 6.5, schema.EstimatedHours)
	assert.Equal(t, []string{"api"}, schema.Blocks)

	loadedAPI := loaded.Task("api")
	require.NotNil(t, loadedAPI)
	assert.Equal(t, []string{"schema"}, loadedAPI.Requires)
	assert.Equal(t, "bob", loadedAPI.AssignedTo)
	assert.Equal(t, "start with the read path", loadedAPI.Notes)
	assert.Equal(t, []string{"docs/api.md"}, loadedAPI.Artifacts)
}

func TestFileStoreTaskStatusRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	p := NewPlan("demo")
	p.SetStore(store)
	require.NoError(t, store.SavePlan(p))

	task := NewTask("work", "Work")
	task.UpdateStatus(domain.TaskExecuting)
	task.UpdateProgress(60)
	require.NoError(t, p.AddTask(task))

	loaded, err := store.LoadPlan("demo")
	require.NoError(t, err)
	got := loaded.Task("work")
	require.NotNil(t, got)

	assert.Equal(t, domain.TaskExecuting, got.Status)
	assert.Equal(t, 60, got.Progress)
	assert.False(t, got.StartedAt.IsZero())
	assert.True(t, got.CompletedAt.IsZero())
}

func TestFileStoreLoadPlanNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.LoadPlan("missing")

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFileStoreSkipsCorruptTaskRecords(t *testing.T) {
	store, cfg := newTestStore(t)
	p := NewPlan("demo")
	p.SetStore(store)
	require.NoError(t, store.SavePlan(p))
	require.NoError(t, p.AddTask(NewTask("good", "Good")))

	// drop a malformed record next to the good one
	bad := cfg.TaskFile("demo", "bad")
	require.NoError(t, os.WriteFile(bad, []byte("{not yaml: ["), 0644))

	loaded, err := store.LoadPlan("demo")
	require.NoError(t, err, "one corrupt task must not abort the load")
	require.Len(t, loaded.Tasks(), 1)
	assert.Equal(t, "good", loaded.Tasks()[0].ID)
}

func TestFileStoreRemoveTaskCascades(t *testing.T) {
	store, cfg := newTestStore(t)
	p := NewPlan("demo")
	p.SetStore(store)
	require.NoError(t, store.SavePlan(p))
	require.NoError(t, p.AddTask(NewTask("gone", "Gone")))

	path := cfg.TaskFile("demo", "gone")
	_, err := os.Stat(path)
	require.NoError(t, err)

	removed, err := p.RemoveTask("gone")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "task record must be deleted with the task")

	removed, err = p.RemoveTask("gone")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFileStoreDeletePlan(t *testing.T) {
	store, cfg := newTestStore(t)
	p := NewPlan("demo")
	p.SetStore(store)
	require.NoError(t, store.SavePlan(p))
	require.NoError(t, p.AddTask(NewTask("a", "A")))

	require.NoError(t, store.DeletePlan("demo"))

	_, err := os.Stat(cfg.PlanDir("demo"))
	assert.True(t, os.IsNotExist(err))

	err = store.DeletePlan("demo")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFileStoreListPlans(t *testing.T) {
	store, _ := newTestStore(t)

	names, err := store.ListPlans()
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"zeta", "alpha"} {
		p := NewPlan(name)
		p.SetStore(store)
		require.NoError(t, store.SavePlan(p))
	}

	names, err = store.ListPlans()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
	assert.True(t, store.PlanExists("alpha"))
	assert.False(t, store.PlanExists("missing"))
}

func TestFileStoreTasksSummaryRecomputedOnSave(t *testing.T) {
	store, _ := newTestStore(t)
	p := NewPlan("demo")
	p.SetStore(store)
	require.NoError(t, store.SavePlan(p))

	a := NewTask("a", "A")
	require.NoError(t, p.AddTask(a))
	b := NewTask("b", "B")
	require.NoError(t, p.AddTask(b))

	a.UpdateStatus(domain.TaskCompleted)
	require.NoError(t, store.SaveTask("demo", a))
	require.NoError(t, store.SavePlan(p))

	loaded, err := store.LoadPlan("demo")
	require.NoError(t, err)
	summary := loaded.Summary()
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Completed)
}
