package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg := New("")

	assert.Equal(t, DefaultWorkspaceDir, cfg.WorkspaceDir)
	assert.Equal(t, "medium", cfg.Settings.DefaultPriority)
	assert.False(t, cfg.Settings.AutoApprove)
	assert.True(t, cfg.Settings.RequirePRD)
}

func TestPathHelpers(t *testing.T) {
	cfg := New(".plancraft")

	assert.Equal(t, filepath.Join(".plancraft", "plans"), cfg.PlansDir())
	assert.Equal(t, filepath.Join(".plancraft", "logs"), cfg.LogsDir())
	assert.Equal(t, filepath.Join(".plancraft", "config.yaml"), cfg.ConfigFile())
	assert.Equal(t, filepath.Join(".plancraft", "plans", "demo"), cfg.PlanDir("demo"))
	assert.Equal(t, filepath.Join(".plancraft", "plans", "demo", "plan.yaml"), cfg.PlanFile("demo"))
	assert.Equal(t, filepath.Join(".plancraft", "plans", "demo", "prd.md"), cfg.PRDFile("demo"))
	assert.Equal(t, filepath.Join(".plancraft", "plans", "demo", "tasks"), cfg.TasksDir("demo"))
	assert.Equal(t, filepath.Join(".plancraft", "plans", "demo", "tasks", "task-t1.yaml"), cfg.TaskFile("demo", "t1"))
	assert.Equal(t, filepath.Join(".plancraft", "logs", "demo", "execution.log"), cfg.ExecutionLog("demo"))
}

func TestInitWorkspace(t *testing.T) {
	cfg := New(filepath.Join(t.TempDir(), ".plancraft"))
	require.False(t, cfg.WorkspaceExists())

	require.NoError(t, cfg.InitWorkspace())

	assert.True(t, cfg.WorkspaceExists())
	assert.DirExists(t, cfg.PlansDir())
	assert.DirExists(t, cfg.LogsDir())
	assert.FileExists(t, cfg.ConfigFile())
	assert.FileExists(t, filepath.Join(cfg.WorkspaceDir, ".gitignore"))

	// re-running init leaves existing files untouched
	before, err := os.ReadFile(cfg.ConfigFile())
	require.NoError(t, err)
	require.NoError(t, cfg.InitWorkspace())
	after, err := os.ReadFile(cfg.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoadMissingConfigUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".plancraft"))

	require.NoError(t, err)
	assert.Equal(t, "medium", cfg.Settings.DefaultPriority)
}

func TestLoadReadsSettings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".plancraft")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "version: 1.0.0\nsettings:\n  default_priority: high\n  auto_approve: true\n  require_prd: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "high", cfg.Settings.DefaultPriority)
	assert.True(t, cfg.Settings.AutoApprove)
	assert.False(t, cfg.Settings.RequirePRD)
}

func TestListPlans(t *testing.T) {
	cfg := New(filepath.Join(t.TempDir(), ".plancraft"))
	require.NoError(t, cfg.InitWorkspace())

	plans, err := cfg.ListPlans()
	require.NoError(t, err)
	assert.Empty(t, plans)

	// only directories holding a plan.yaml count
	require.NoError(t, os.MkdirAll(cfg.PlanDir("real"), 0755))
	require.NoError(t, os.WriteFile(cfg.PlanFile("real"), []byte("metadata:\n  name: real\n"), 0644))
	require.NoError(t, os.MkdirAll(cfg.PlanDir("empty"), 0755))

	plans, err = cfg.ListPlans()
	require.NoError(t, err)
	assert.Equal(t, []string{"real"}, plans)
	assert.True(t, cfg.PlanExists("real"))
	assert.False(t, cfg.PlanExists("empty"))
}
