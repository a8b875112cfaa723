package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/plancraft/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a plancraft workspace",
	Long: `Create the workspace directory tree, a default config.yaml, and a
.gitignore that keeps execution logs out of version control.

Running init in an already initialized workspace is harmless; existing
files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New(workspaceDir)
		if err := cfg.InitWorkspace(); err != nil {
			return err
		}
		fmt.Printf("Initialized workspace in %s\n", cfg.WorkspaceDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
