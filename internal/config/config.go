// Package config manages the plancraft workspace: the directory tree that
// holds plan and task records, execution logs, and the workspace settings
// file. All path resolution for the file store goes through here.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/felixgeelhaar/plancraft/internal/errors"
)

const (
	// DefaultWorkspaceDir is the workspace directory created by `plancraft init`
	DefaultWorkspaceDir = ".plancraft"

	plansDirName   = "plans"
	logsDirName    = "logs"
	configFileName = "config.yaml"
)

// Settings holds the user-tunable options stored in config.yaml
type Settings struct {
	DefaultPriority string `mapstructure:"default_priority"`
	AutoApprove     bool   `mapstructure:"auto_approve"`
	RequirePRD      bool   `mapstructure:"require_prd"`
}

// DefaultSettings returns the settings written on workspace init
func DefaultSettings() Settings {
	return Settings{
		DefaultPriority: "medium",
		AutoApprove:     false,
		RequirePRD:      true,
	}
}

// Config describes a plancraft workspace on disk
type Config struct {
	WorkspaceDir string
	Settings     Settings
}

// New creates a Config rooted at the given workspace directory.
// An empty dir falls back to DefaultWorkspaceDir.
func New(workspaceDir string) *Config {
	if workspaceDir == "" {
		workspaceDir = DefaultWorkspaceDir
	}
	return &Config{
		WorkspaceDir: workspaceDir,
		Settings:     DefaultSettings(),
	}
}

// Load creates a Config and reads settings from the workspace config.yaml.
// A missing config file is not an error; defaults apply.
func Load(workspaceDir string) (*Config, error) {
	c := New(workspaceDir)

	v := viper.New()
	v.SetConfigFile(c.ConfigFile())
	v.SetConfigType("yaml")
	v.SetDefault("settings.default_priority", c.Settings.DefaultPriority)
	v.SetDefault("settings.auto_approve", c.Settings.AutoApprove)
	v.SetDefault("settings.require_prd", c.Settings.RequirePRD)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !os.IsNotExist(err) && !stderrors.As(err, &notFound) {
			return nil, errors.NewFileUnmarshalError(c.ConfigFile(), "yaml", err)
		}
	}

	var settings Settings
	if err := v.UnmarshalKey("settings", &settings); err != nil {
		return nil, errors.NewFileUnmarshalError(c.ConfigFile(), "yaml", err)
	}
	c.Settings = settings

	return c, nil
}

// PlansDir returns the directory holding all plan directories
func (c *Config) PlansDir() string {
	return filepath.Join(c.WorkspaceDir, plansDirName)
}

// LogsDir returns the directory holding execution logs
func (c *Config) LogsDir() string {
	return filepath.Join(c.WorkspaceDir, logsDirName)
}

// ConfigFile returns the path of the workspace settings file
func (c *Config) ConfigFile() string {
	return filepath.Join(c.WorkspaceDir, configFileName)
}

// PlanDir returns the directory for a specific plan
func (c *Config) PlanDir(planName string) string {
	return filepath.Join(c.PlansDir(), planName)
}

// PlanFile returns the plan.yaml path for a plan
func (c *Config) PlanFile(planName string) string {
	return filepath.Join(c.PlanDir(planName), "plan.yaml")
}

// PRDFile returns the product requirements document path for a plan
func (c *Config) PRDFile(planName string) string {
	return filepath.Join(c.PlanDir(planName), "prd.md")
}

// TasksDir returns the tasks directory for a plan
func (c *Config) TasksDir(planName string) string {
	return filepath.Join(c.PlanDir(planName), "tasks")
}

// TaskFile returns the task record path for a task within a plan
func (c *Config) TaskFile(planName, taskID string) string {
	return filepath.Join(c.TasksDir(planName), fmt.Sprintf("task-%s.yaml", taskID))
}

// PlanLogDir returns the log directory for a plan
func (c *Config) PlanLogDir(planName string) string {
	return filepath.Join(c.LogsDir(), planName)
}

// ExecutionLog returns the execution log path for a plan
func (c *Config) ExecutionLog(planName string) string {
	return filepath.Join(c.PlanLogDir(planName), "execution.log")
}

// InitWorkspace creates the workspace directory tree, a default config.yaml,
// and a .gitignore that keeps logs out of version control. Existing files
// are left untouched.
func (c *Config) InitWorkspace() error {
	for _, dir := range []string{c.WorkspaceDir, c.PlansDir(), c.LogsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeWorkspaceInit, "create workspace directory", err)
		}
	}

	if _, err := os.Stat(c.ConfigFile()); os.IsNotExist(err) {
		v := viper.New()
		v.SetConfigFile(c.ConfigFile())
		v.SetConfigType("yaml")
		v.Set("version", "1.0.0")
		v.Set("settings.default_priority", c.Settings.DefaultPriority)
		v.Set("settings.auto_approve", c.Settings.AutoApprove)
		v.Set("settings.require_prd", c.Settings.RequirePRD)
		if err := v.WriteConfigAs(c.ConfigFile()); err != nil {
			return errors.Wrap(errors.ErrCodeWorkspaceInit, "write default config", err)
		}
	}

	gitignorePath := filepath.Join(c.WorkspaceDir, ".gitignore")
	if _, err := os.Stat(gitignorePath); os.IsNotExist(err) {
		content := "# plancraft - ignore logs\nlogs/\n*.log\n"
		if err := os.WriteFile(gitignorePath, []byte(content), 0644); err != nil {
			return errors.Wrap(errors.ErrCodeWorkspaceInit, "write .gitignore", err)
		}
	}

	return nil
}

// WorkspaceExists reports whether the workspace has been initialized
func (c *Config) WorkspaceExists() bool {
	if _, err := os.Stat(c.WorkspaceDir); err != nil {
		return false
	}
	_, err := os.Stat(c.ConfigFile())
	return err == nil
}

// PlanExists reports whether a plan record exists in the workspace
func (c *Config) PlanExists(planName string) bool {
	_, err := os.Stat(c.PlanFile(planName))
	return err == nil
}

// ListPlans returns the sorted names of all plans in the workspace
func (c *Config) ListPlans() ([]string, error) {
	entries, err := os.ReadDir(c.PlansDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read plans directory", err)
	}

	var plans []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if c.PlanExists(entry.Name()) {
			plans = append(plans, entry.Name())
		}
	}
	sort.Strings(plans)
	return plans, nil
}
