package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/ui"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticity check-ins and stats",
	}

	cmd.AddCommand(
		newAuthLogCmd(),
		newAuthStatsCmd(),
		newAuthReflectCmd(),
	)
	return cmd
}

func newAuthLogCmd() *cobra.Command {
	var boundaries int
	var signals []string
	var notes string

	cmd := &cobra.Command{
		Use:   "log <score>",
		Short: "Log today's authenticity score (0-10)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("score is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("score must be an integer")
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

			score, _ := strconv.Atoi(args[0])
			log, err := svc.LogAuthenticity(ctx, score, boundaries, signals, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged %d/10 for %s\n", ui.IconHeart, log.Score, log.Date)

			alert, err := svc.CheckLowAuthenticity(ctx)
			if err != nil {
				return err
			}
			if alert.ShouldAlert {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s %d consecutive low days. Time to check in with yourself.", ui.IconWarn, alert.ConsecutiveLowDays)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&boundaries, "boundaries", "b", 0, "Boundaries honored today")
	cmd.Flags().StringSliceVarP(&signals, "signal", "s", nil, "Body signal (repeatable)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes")

	return cmd
}

func newAuthStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show authenticity averages, streaks, and trend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.AuthenticityStats(ctx)
			if err != nil {
				return err
			}
			trend, err := svc.AuthenticityTrend(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconHeart, "Authenticity"))
			fmt.Fprintln(out, ui.LabelValue("Average", fmt.Sprintf("%.1f (7d %.1f, 30d %.1f)", stats.AverageScore, stats.Last7DaysAverage, stats.Last30DaysAverage)))
			fmt.Fprintln(out, ui.LabelValue("Trend", ui.TrendText(string(trend))))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d days of 7+ (longest %d)", stats.CurrentStreak, stats.LongestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Boundaries honored", stats.TotalBoundariesHonored))
			if len(stats.CommonBodySignals) > 0 {
				fmt.Fprintln(out, ui.H2.Render("Body signals"))
				for _, sc := range stats.CommonBodySignals {
					fmt.Fprintf(out, "- %s (%d)\n", sc.Signal, sc.Count)
				}
			}
			return nil
		},
	}

	return cmd
}

func newAuthReflectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "Get reflection prompts based on recent logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			prompts, err := svc.ReflectionPrompts(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconHeart, "Reflection"))
			for _, p := range prompts {
				fmt.Fprintln(out, "- "+p)
			}
			return nil
		},
	}

	return cmd
}
