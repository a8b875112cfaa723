package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/plancraft/internal/domain"
	"github.com/felixgeelhaar/plancraft/internal/errors"
	"github.com/felixgeelhaar/plancraft/internal/plan"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks within a plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task to a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := openStore()
		if err != nil {
			return err
		}

		planName, _ := cmd.Flags().GetString("plan")
		p, err := store.LoadPlan(planName)
		if err != nil {
			return err
		}

		id, _ := cmd.Flags().GetString("id")
		t := plan.NewTask(id, args[0])
		t.Order = len(p.Tasks())

		priority, _ := cmd.Flags().GetString("priority")
		if priority == "" {
			priority = cfg.Settings.DefaultPriority
		}
		if priority != "" {
			prio, err := domain.NewPriority(priority)
			if err != nil {
				return err
			}
			t.Priority = prio
		}
		if requires, _ := cmd.Flags().GetStringSlice("requires"); len(requires) > 0 {
			for _, req := range requires {
				t.AddDependency(req)
			}
		}

		if err := p.AddTask(t); err != nil {
			return err
		}
		if err := store.SavePlan(p); err != nil {
			return err
		}
		fmt.Printf("Added task %s to plan %s\n", t.ID, p.Name)
		return nil
	},
}

var taskRemoveCmd = &cobra.Command{
	Use:   "remove [task-id]",
	Short: "Remove a task from a plan",
	Long: `Remove a task from its plan. The task's persisted record is deleted
as well. Dependency edges on other tasks that point at the removed task are
left in place; 'plancraft validate' will flag them as dangling.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		planName, _ := cmd.Flags().GetString("plan")
		p, err := store.LoadPlan(planName)
		if err != nil {
			return err
		}

		removed, err := p.RemoveTask(args[0])
		if err != nil {
			return err
		}
		if !removed {
			return errors.NewTaskNotFoundError(planName, args[0])
		}
		if err := store.SavePlan(p); err != nil {
			return err
		}
		fmt.Printf("Removed task %s from plan %s\n", args[0], p.Name)
		return nil
	},
}

var taskStatusCmd = &cobra.Command{
	Use:   "status [task-id] [status]",
	Short: "Change a task's status",
	Long: `Set a task's status to one of pending, ready, executing, completed,
failed, or blocked. Transitions are not restricted; validity is advisory
and surfaced by 'plancraft validate'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := domain.NewTaskStatus(args[1])
		if err != nil {
			return err
		}

		store, _, err := openStore()
		if err != nil {
			return err
		}

		planName, _ := cmd.Flags().GetString("plan")
		p, err := store.LoadPlan(planName)
		if err != nil {
			return err
		}

		t := p.Task(args[0])
		if t == nil {
			return errors.NewTaskNotFoundError(planName, args[0])
		}

		t.UpdateStatus(status)
		if err := store.SaveTask(planName, t); err != nil {
			return err
		}
		fmt.Printf("Task %s is now %s\n", t.ID, t.Status)
		return nil
	},
}

var taskProgressCmd = &cobra.Command{
	Use:   "progress [task-id] [percent]",
	Short: "Update a task's progress",
	Long: `Set a task's progress percentage. Values are clamped to 0-100.
Reaching 100 marks the task completed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		progress, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("progress must be an integer: %w", err)
		}

		store, _, err := openStore()
		if err != nil {
			return err
		}

		planName, _ := cmd.Flags().GetString("plan")
		p, err := store.LoadPlan(planName)
		if err != nil {
			return err
		}

		t := p.Task(args[0])
		if t == nil {
			return errors.NewTaskNotFoundError(planName, args[0])
		}

		t.UpdateProgress(progress)
		if err := store.SaveTask(planName, t); err != nil {
			return err
		}
		fmt.Printf("Task %s at %d%% (%s)\n", t.ID, t.Progress, t.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskRemoveCmd)
	taskCmd.AddCommand(taskStatusCmd)
	taskCmd.AddCommand(taskProgressCmd)

	taskCmd.PersistentFlags().StringP("plan", "p", "", "Plan name (required)")
	_ = taskCmd.MarkPersistentFlagRequired("plan")

	taskAddCmd.Flags().String("id", "", "Task ID (generated when omitted)")
	taskAddCmd.Flags().String("priority", "", "Task priority: critical, high, medium, or low")
	taskAddCmd.Flags().StringSlice("requires", nil, "Task IDs this task depends on")
}
