package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/engine"
	"github.com/myaiRhys/Lifer/internal/ui"
)

func newMakerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maker",
		Short: "Maker/manager work-mode sessions",
	}

	cmd.AddCommand(
		newMakerStartCmd(),
		newMakerEndCmd(),
		newMakerStatusCmd(),
		newMakerInterruptCmd(),
		newMakerStatsCmd(),
		newMakerMeetingCmd(),
	)
	return cmd
}

func newMakerStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "start <mode>",
		Aliases: []string{"switch"},
		Short:   "Start a maker or manager session, closing any active one",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mode is required (maker|manager)")
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

			mode, err := engine.ParseWorkMode(args[0])
			if err != nil {
				return err
			}

			session, err := svc.StartSession(ctx, mode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s session started at %s\n", ui.ModeIcon(session.Mode), session.Mode, session.StartTime.Format("15:04"))
			return nil
		},
	}

	return cmd
}

func newMakerEndCmd() *cobra.Command {
	var rating int
	var notes string

	cmd := &cobra.Command{
		Use:   "end",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			session, err := svc.EndCurrentSession(ctx, rating, notes)
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No active session."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s session ended: %d min, %d tasks, %d interruptions\n",
				ui.ModeIcon(session.Mode), session.Mode, session.DurationMinutes, session.TasksCompleted, session.Interruptions)
			return nil
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "Productivity rating (1-10)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Session notes")

	return cmd
}

func newMakerStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current mode and session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			mode, err := svc.CurrentMode(ctx)
			if err != nil {
				return err
			}
			session, err := svc.CurrentSession(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.LabelValue("Mode", ui.ModeIcon(string(mode))+" "+string(mode)))
			if session == nil {
				fmt.Fprintln(out, ui.Muted.Render("No active session."))
				return nil
			}
			elapsed := int(svc.Now().Sub(session.StartTime).Minutes())
			fmt.Fprintf(out, "Active for %d min, %d tasks, %d interruptions\n", elapsed, session.TasksCompleted, session.Interruptions)

			protected, err := svc.InProtectedMakerTime(ctx)
			if err != nil {
				return err
			}
			if protected {
				fmt.Fprintln(out, ui.Good.Render("Protected maker time: decline interruptions."))
			}
			return nil
		},
	}

	return cmd
}

func newMakerInterruptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interrupt",
		Short: "Log an interruption on the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.LogInterruption(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Interruption logged."))
			return nil
		},
	}

	return cmd
}

func newMakerStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show maker/manager statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.MakerStats(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconMaker, "Maker Mode"))
			fmt.Fprintln(out, ui.LabelValue("Maker time", fmt.Sprintf("%d min over %d sessions", stats.TotalMakerMinutes, stats.MakerSessionsCount)))
			fmt.Fprintln(out, ui.LabelValue("Manager time", fmt.Sprintf("%d min over %d sessions", stats.TotalManagerMinutes, stats.ManagerSessionsCount)))
			fmt.Fprintln(out, ui.LabelValue("Productivity", fmt.Sprintf("maker %.1f, manager %.1f", stats.AvgMakerProductivity, stats.AvgManagerProductivity)))
			fmt.Fprintln(out, ui.LabelValue("Interruptions", stats.TotalInterruptions))
			fmt.Fprintln(out, ui.LabelValue("Longest maker block", fmt.Sprintf("%d min", stats.LongestMakerBlock)))
			fmt.Fprintln(out, ui.LabelValue("Deep-work streak", fmt.Sprintf("%d days", stats.DeepWorkStreak)))
			return nil
		},
	}

	return cmd
}

func newMakerMeetingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting <minutes>",
		Short: "Estimate the cost of a meeting in the current mode",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("meeting length in minutes is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("minutes must be an integer")
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

			minutes, _ := strconv.Atoi(args[0])
			cost, err := svc.MeetingCostFor(ctx, minutes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cost.LostProductivityMinutes > 0 {
				fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("Estimated cost: %d min of deep-work productivity.", cost.LostProductivityMinutes)))
			}
			fmt.Fprintln(out, cost.Suggestion)

			best, worst, err := svc.SuggestMeetingTimes(ctx)
			if err != nil {
				return err
			}
			if len(best) > 0 {
				fmt.Fprintln(out, ui.LabelValue("Good slots", best))
			}
			if len(worst) > 0 {
				fmt.Fprintln(out, ui.LabelValue("Avoid", worst))
			}
			return nil
		},
	}

	return cmd
}
