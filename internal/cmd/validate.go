package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/plancraft/internal/errors"
	"github.com/felixgeelhaar/plancraft/internal/plan"
)

var validateCmd = &cobra.Command{
	Use:   "validate [plan]",
	Short: "Validate a plan's consistency",
	Long: `Check a plan for data-quality issues: dependency cycles, dangling
task references, and plan/task status inconsistencies.

Findings are reported as errors and warnings; only errors make the plan
invalid. The command exits non-zero when the plan is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		p, err := store.LoadPlan(args[0])
		if err != nil {
			return err
		}

		result := plan.ValidatePlan(p)
		for _, issue := range result.Issues() {
			fmt.Printf("%s: %s\n", strings.ToUpper(string(issue.Severity)), issue.Message)
		}

		if !result.IsValid() {
			return errors.New(errors.ErrCodeValidationFailed,
				fmt.Sprintf("plan %s failed validation with %d error(s)", p.Name, len(result.Errors)))
		}

		fmt.Printf("Plan %s is valid (%d warning(s))\n", p.Name, len(result.Warnings))
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:   "next [plan]",
	Short: "Suggest the next tasks to execute",
	Long: `List the plan's ready tasks ranked by priority and order. A task is
ready when it is not completed, failed, or blocked and every task it
requires has completed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		p, err := store.LoadPlan(args[0])
		if err != nil {
			return err
		}

		suggested := plan.SuggestNextTasks(p)
		if len(suggested) == 0 {
			fmt.Println("No tasks ready to execute")
			return nil
		}
		for i, t := range suggested {
			fmt.Printf("%d. %-12s [%s] %s\n", i+1, t.ID, t.Priority, t.Title)
		}
		return nil
	},
}

var blockedCmd = &cobra.Command{
	Use:   "blocked [plan]",
	Short: "List blocked tasks and why",
	Long: `List tasks that cannot proceed: tasks manually marked blocked and
tasks waiting on incomplete dependencies.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		p, err := store.LoadPlan(args[0])
		if err != nil {
			return err
		}

		blocked := plan.FindBlockedTasks(p.Tasks())
		if len(blocked) == 0 {
			fmt.Println("No blocked tasks")
			return nil
		}
		for _, b := range blocked {
			fmt.Printf("%-12s %s: %s\n", b.Task.ID, b.Task.Title, b.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(blockedCmd)
}
