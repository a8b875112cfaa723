package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/plancraft/internal/config"
	"github.com/felixgeelhaar/plancraft/internal/errors"
	"github.com/felixgeelhaar/plancraft/internal/log"
	"github.com/felixgeelhaar/plancraft/internal/plan"
)

var (
	workspaceDir string
	verbose      bool
	logLevel     string
	logFormat    string
)

var rootCmd = &cobra.Command{
	Use:   "plancraft",
	Short: "Plan and task tracking with dependency validation",
	Long: `plancraft tracks delivery work as plans decomposed into tasks.

Tasks carry priority, status, progress, and dependency edges to other tasks
in the same plan. plancraft validates the dependency graph (cycles, dangling
references), evaluates which tasks are ready to execute, and suggests what
to work on next.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := log.DefaultConfig()

		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		cfg.Level = level

		format, err := log.ParseFormat(logFormat)
		if err != nil {
			return err
		}
		cfg.Format = format

		// -v overrides --log-level and adds source locations
		if verbose {
			cfg.Level = log.LevelDebug
			cfg.AddSource = true
		}

		log.SetDefaultLogger(log.New(cfg))
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workspaceDir, "workspace", config.DefaultWorkspaceDir, "workspace directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging with source locations")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", string(log.LevelInfo), "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(log.FormatText), "log format: text or json")
}

// loadConfig loads the workspace configuration, requiring an initialized workspace
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(workspaceDir)
	if err != nil {
		return nil, err
	}
	if !cfg.WorkspaceExists() {
		return nil, errors.NewWorkspaceMissingError(cfg.WorkspaceDir)
	}
	return cfg, nil
}

// openStore loads the workspace configuration and returns a file store over
// it, along with the configuration for commands that consult settings
func openStore() (*plan.FileStore, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return plan.NewFileStore(cfg, log.DefaultLogger()), cfg, nil
}
