package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/plancraft/internal/domain"
	"github.com/felixgeelhaar/plancraft/internal/plan"
	"github.com/felixgeelhaar/plancraft/internal/progress"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage plans",
	Long: `Create, inspect, and manage plans.

Use 'plancraft plan create' to create a new plan.
Use 'plancraft plan list' to list all plans in the workspace.
Use 'plancraft plan show' to show a plan and its tasks.
Use 'plancraft plan approve' to approve a plan for execution.
Use 'plancraft plan status' to change a plan's status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var planCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new plan",
	Long: `Create a new draft plan with the given name.

Plan names double as storage keys and must be lowercase-hyphenated,
e.g. 'billing-rework' or 'q3-migration'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := domain.NewPlanName(args[0])
		if err != nil {
			return err
		}

		store, cfg, err := openStore()
		if err != nil {
			return err
		}

		p := plan.NewPlan(name.String())
		p.Brief, _ = cmd.Flags().GetString("brief")
		p.Author, _ = cmd.Flags().GetString("author")
		p.SetStore(store)

		if cfg.Settings.AutoApprove {
			p.Approve(p.Author)
		}

		if err := store.SavePlan(p); err != nil {
			return err
		}
		fmt.Printf("Created plan %s (%s)\n", p.Name, p.ID)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all plans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		names, err := store.ListPlans()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No plans in workspace")
			return nil
		}
		for _, name := range names {
			p, err := store.LoadPlan(name)
			if err != nil {
				return err
			}
			summary := p.Summary()
			fmt.Printf("%-30s %-10s %3d%%  %s\n",
				p.Name, p.Status, p.Progress,
				progress.SummaryLine(summary.Total, summary.Completed, summary.InProgress, summary.Blocked))
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a plan and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		p, err := store.LoadPlan(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Plan:     %s (%s)\n", p.Name, p.ID)
		fmt.Printf("Status:   %s (approved: %v)\n", p.Status, p.IsApproved)
		fmt.Printf("Progress: [%s] %d%%\n", progress.Bar(p.Progress, progress.DefaultBarWidth), p.Progress)
		if p.Brief != "" {
			fmt.Printf("Brief:    %s\n", p.Brief)
		}
		for _, objective := range p.Objectives {
			fmt.Printf("Objective: %s\n", objective)
		}
		for _, deliverable := range p.Deliverables {
			fmt.Printf("Deliverable: %s\n", deliverable)
		}

		tasks := p.Tasks()
		if len(tasks) == 0 {
			fmt.Println("No tasks")
			return nil
		}
		fmt.Printf("\nTasks (%d):\n", len(tasks))
		for _, t := range tasks {
			deps := ""
			if len(t.Requires) > 0 {
				deps = fmt.Sprintf("  requires: %v", t.Requires)
			}
			fmt.Printf("  %s %-12s %-10s %-8s %3d%%  %s%s\n",
				progress.StatusSymbol(t.Status), t.ID, t.Status, t.Priority, t.Progress, t.Title, deps)
		}
		return nil
	},
}

var planApproveCmd = &cobra.Command{
	Use:   "approve [name]",
	Short: "Approve a plan for execution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		p, err := store.LoadPlan(args[0])
		if err != nil {
			return err
		}

		approver, _ := cmd.Flags().GetString("by")
		p.Approve(approver)
		if err := store.SavePlan(p); err != nil {
			return err
		}
		fmt.Printf("Plan %s approved by %s\n", p.Name, approver)
		return nil
	},
}

var planStatusCmd = &cobra.Command{
	Use:   "status [name] [status]",
	Short: "Change a plan's status",
	Long: `Set a plan's status to one of draft, pending, approved, executing,
completed, failed, or cancelled. Transitions are not restricted; run
'plancraft validate' to surface inconsistencies.

Open statuses recompute plan progress from task completion. Closed statuses
(completed, failed, cancelled) are recorded as given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := domain.NewPlanStatus(args[1])
		if err != nil {
			return err
		}

		store, _, err := openStore()
		if err != nil {
			return err
		}

		p, err := store.LoadPlan(args[0])
		if err != nil {
			return err
		}

		p.UpdateStatus(status)
		// A closed status is an explicit override; recomputing progress
		// here could cascade the plan straight back to completed.
		if !status.IsClosed() {
			p.UpdateProgress()
		}
		if err := store.SavePlan(p); err != nil {
			return err
		}
		fmt.Printf("Plan %s is now %s (%d%%)\n", p.Name, p.Status, p.Progress)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planCreateCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planApproveCmd)
	planCmd.AddCommand(planStatusCmd)

	planCreateCmd.Flags().String("brief", "", "One-line plan summary")
	planCreateCmd.Flags().String("author", "", "Plan author")
	planApproveCmd.Flags().String("by", "", "Approver name")
}
