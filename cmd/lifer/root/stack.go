package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/storage"
	"github.com/myaiRhys/Lifer/internal/ui"
)

func newStackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Manage habit stacks",
	}

	cmd.AddCommand(
		newStackListCmd(),
		newStackAddCmd(),
		newStackLogCmd(),
		newStackStatsCmd(),
		newStackSuggestCmd(),
		newStackInitCmd(),
	)
	return cmd
}

func newStackListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habit stacks with today's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stacks, err := svc.HabitStacks(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(stacks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no stacks)"))
				return nil
			}
			for _, st := range stacks {
				progress, err := svc.TodayStackProgress(ctx, st.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s %s %d links, today %d/%d, rate %d%% %s\n",
					ui.IconStack, st.Name, ui.Muted.Render("—"), len(st.Chain),
					len(progress.CompletedLinks), progress.TotalLinks, st.CompletionRate,
					ui.Muted.Render(st.ID))
			}
			return nil
		},
	}

	return cmd
}

func newStackAddCmd() *cobra.Command {
	var description string
	var practiceIDs []string
	var transition int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a habit stack from practice IDs",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			chain := make([]storage.HabitStackLink, 0, len(practiceIDs))
			for i, id := range practiceIDs {
				chain = append(chain, storage.HabitStackLink{
					PracticeID:     strings.TrimSpace(id),
					Order:          i + 1,
					TransitionTime: transition,
				})
			}

			st, err := svc.CreateHabitStack(ctx, args[0], description, chain)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d links, id %s)\n", ui.IconStack, st.Name, len(st.Chain), ui.Muted.Render(st.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringSliceVarP(&practiceIDs, "practice", "p", nil, "Practice ID, in chain order (repeatable)")
	cmd.Flags().IntVarP(&transition, "transition", "t", 60, "Transition time between links (seconds)")

	return cmd
}

func newStackLogCmd() *cobra.Command {
	var links []string
	var full bool

	cmd := &cobra.Command{
		Use:   "log <id>",
		Short: "Log a stack attempt for today",
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

			completion, err := svc.LogStackCompletion(ctx, args[0], links, full)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if completion.FullChainCompleted {
				fmt.Fprintf(out, "%s %s: full chain complete\n", ui.IconDone, completion.StackName)
			} else {
				fmt.Fprintf(out, "%s %s: %d links logged\n", ui.IconStack, completion.StackName, len(completion.CompletedLinks))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&links, "link", "l", nil, "Completed practice ID (repeatable)")
	cmd.Flags().BoolVarP(&full, "full", "f", false, "Mark the whole chain as completed")

	return cmd
}

func newStackStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <id>",
		Short: "Show analytics for a stack",
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

			a, err := svc.StackAnalytics(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconStack, "Stack Analytics"))
			fmt.Fprintln(out, ui.LabelValue("Attempts", a.TotalAttempts))
			fmt.Fprintln(out, ui.LabelValue("Full completions", a.SuccessfulCompletions))
			fmt.Fprintln(out, ui.LabelValue("Completion rate", fmt.Sprintf("%d%%", a.CompletionRate)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d days (longest %d)", a.CurrentStreak, a.LongestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Average progress", fmt.Sprintf("%d%%", a.AverageProgress)))
			if a.LastCompleted != "" {
				fmt.Fprintln(out, ui.LabelValue("Last completed", a.LastCompleted))
			}
			return nil
		},
	}

	return cmd
}

func newStackInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter morning stack from your existing practices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.CreateDefaultMorningStack(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if st == nil {
				fmt.Fprintln(out, ui.Muted.Render("Not enough morning practices to build a stack yet."))
				return nil
			}
			fmt.Fprintf(out, "%s %s (%d links, id %s)\n", ui.IconStack, st.Name, len(st.Chain), ui.Muted.Render(st.ID))
			return nil
		},
	}

	return cmd
}

func newStackSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest stacks from your existing practices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			suggestions, err := svc.SuggestedStacks(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(suggestions) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Not enough matching practices to suggest a stack yet."))
				return nil
			}
			for _, s := range suggestions {
				fmt.Fprintf(out, "%s %s %s %d links\n", ui.IconStack, s.Name, ui.Muted.Render("—"), len(s.Chain))
				fmt.Fprintln(out, "   "+ui.Muted.Render(s.Description))
			}
			return nil
		},
	}

	return cmd
}
