package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/engine"
	"github.com/myaiRhys/Lifer/internal/ui"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskListCmd(),
		newTaskDoCmd(),
	)
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var leverage int
	var description string
	var outcomeID string
	var morning bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			task, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				Title:         args[0],
				Description:   description,
				LeverageScore: leverage,
				OutcomeID:     outcomeID,
				IsMorningTask: morning,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (leverage %d, id %s)\n", ui.IconTask, task.Title, task.LeverageScore, ui.Muted.Render(task.ID))
			return nil
		},
	}

	cmd.Flags().IntVarP(&leverage, "leverage", "l", 5, "Leverage score (1-10)")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&outcomeID, "outcome", "o", "", "Linked outcome ID")
	cmd.Flags().BoolVarP(&morning, "morning", "m", false, "Mark as a morning task (2x XP before the morning window ends)")

	return cmd
}

func newTaskListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.Tasks(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			shown := 0
			for _, t := range tasks {
				if t.Completed && !all {
					continue
				}
				shown++
				mark := " "
				if t.Completed {
					mark = "x"
				}
				morning := ""
				if t.IsMorningTask {
					morning = ui.IconMorning + " "
				}
				fmt.Fprintf(out, "[%s] %s%s %s L%d %s\n", mark, morning, t.Title, ui.Muted.Render("—"), t.LeverageScore, ui.Muted.Render(t.ID))
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no tasks)"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")
	return cmd
}

func newTaskDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteTask(ctx, args[0])
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Task not found or already completed."))
				return nil
			}

			out := cmd.OutOrStdout()
			msg := fmt.Sprintf("%s %s: +%d XP", ui.IconDone, res.Task.Title, res.XPAwarded)
			if res.InMorningWindow && res.Task.IsMorningTask {
				msg += " " + ui.IconMorning + " (morning 2x)"
			}
			fmt.Fprintln(out, msg)
			if res.LevelUp {
				fmt.Fprintf(out, "%s %s Level %d → %d\n", ui.IconXP, ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			}
			for _, a := range res.NewAchievements {
				fmt.Fprintf(out, "%s Unlocked: %s %s (%s)\n", ui.IconTrophy, a.Icon, a.Name, ui.RarityText(a.Rarity))
			}
			for _, ch := range res.CompletedChallenges {
				fmt.Fprintf(out, "%s Challenge complete: %s %s (+%d XP)\n", ui.IconChallenge, ch.Icon, ch.Name, ch.XPReward)
			}
			return nil
		},
	}

	return cmd
}
