package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/engine"
	"github.com/myaiRhys/Lifer/internal/ui"
)

func newSeasonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Life seasons (spring/summer/fall/winter)",
	}

	cmd.AddCommand(
		newSeasonShowCmd(),
		newSeasonStartCmd(),
		newSeasonStatsCmd(),
	)
	return cmd
}

func newSeasonShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current season",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			current, err := svc.CurrentSeason(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if current == nil {
				fmt.Fprintln(out, ui.Muted.Render("No season set. Start one with: lifer season start <season>"))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.SeasonIcon(current.Season), "Season: "+current.Season))
			fmt.Fprintln(out, ui.LabelValue("Since", current.StartDate.Format("2006-01-02")))
			fmt.Fprintln(out, ui.LabelValue("Energy", current.EnergyPattern))
			fmt.Fprintln(out, ui.Muted.Render(current.Mindset))
			if current.Theme != "" {
				fmt.Fprintln(out, ui.LabelValue("Theme", current.Theme))
			}

			transition, err := svc.CheckSeasonTransition(ctx)
			if err != nil {
				return err
			}
			if transition != nil {
				style := ui.Muted
				if transition.ShouldTransition {
					style = ui.Warn
				}
				fmt.Fprintln(out, style.Render(transition.Message))
			}
			return nil
		},
	}

	return cmd
}

func newSeasonStartCmd() *cobra.Command {
	var theme string
	var outcomes []string

	cmd := &cobra.Command{
		Use:   "start <season>",
		Short: "Start a new season, closing the current one",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("season is required (spring|summer|fall|winter)")
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

			season, err := engine.ParseSeason(args[0])
			if err != nil {
				return err
			}

			phase, err := svc.StartSeason(ctx, season, theme, outcomes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s has begun.\n", ui.SeasonIcon(phase.Season), phase.Season)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(phase.Mindset))
			return nil
		},
	}

	cmd.Flags().StringVarP(&theme, "theme", "t", "", "Theme for this season")
	cmd.Flags().StringSliceVarP(&outcomes, "outcome", "o", nil, "Primary outcome ID (repeatable)")

	return cmd
}

func newSeasonStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show season cycle statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.SeasonStats(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.SeasonIcon(string(stats.CurrentSeason)), "Seasons"))
			fmt.Fprintln(out, ui.LabelValue("Current", fmt.Sprintf("%s (%d days)", stats.CurrentSeason, stats.DaysInCurrentSeason)))
			fmt.Fprintln(out, ui.LabelValue("Cycles completed", stats.TotalSeasonsCycled))
			if stats.AvgSeasonDuration > 0 {
				fmt.Fprintln(out, ui.LabelValue("Avg duration", fmt.Sprintf("%d days", stats.AvgSeasonDuration)))
			}
			for _, s := range stats.History {
				fmt.Fprintf(out, "- %s %s: %d days, %d tasks, %d outcomes\n", ui.SeasonIcon(string(s.Season)), s.Season, s.Days, s.Tasks, s.Outcomes)
			}
			return nil
		},
	}

	return cmd
}
