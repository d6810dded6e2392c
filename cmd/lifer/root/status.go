package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, streaks, and today's overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			state, err := svc.UserState(ctx)
			if err != nil {
				return err
			}
			if state == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No data yet. Complete a task to get started."))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconLevel, "Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", state.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", ui.XPBar(state.XP, state.XPForNextLevel, 24)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days (longest %d)", ui.IconStreak, state.CurrentStreak, state.LongestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Morning wins", state.MorningControlCount))
			fmt.Fprintln(out, ui.LabelValue("Leverage", fmt.Sprintf("%.1f lifetime, %.1f last 7 days", state.LifetimeLeverageRatio, state.Last7DaysLeverageRatio)))
			fmt.Fprintln(out, "")

			season, err := svc.CurrentSeason(ctx)
			if err != nil {
				return err
			}
			if season != nil {
				fmt.Fprintln(out, ui.H2.Render(ui.SeasonIcon(season.Season)+" Season: "+season.Season))
				if season.Theme != "" {
					fmt.Fprintln(out, "  "+ui.Muted.Render(season.Theme))
				}
			}

			mode, err := svc.CurrentMode(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Work mode", ui.ModeIcon(string(mode))+" "+string(mode)))

			tasks, err := svc.Tasks(ctx)
			if err != nil {
				return err
			}
			open := 0
			for _, t := range tasks {
				if !t.Completed {
					open++
				}
			}
			fmt.Fprintln(out, ui.LabelValue("Open tasks", open))

			unlocked, err := svc.UnlockedAchievements(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Achievements", fmt.Sprintf("%d unlocked", len(unlocked))))

			return nil
		},
	}

	return cmd
}
