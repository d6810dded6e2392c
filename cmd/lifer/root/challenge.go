package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/engine"
	"github.com/myaiRhys/Lifer/internal/ui"
)

func newChallengesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "Show today's challenges and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Settle any challenges earned by actions taken outside the CLI
			// flow, then render the fresh list.
			if _, err := svc.CheckDailyChallenges(ctx); err != nil {
				return err
			}

			state, err := svc.UserState(ctx)
			if err != nil {
				return err
			}
			if state == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No data yet."))
				return nil
			}
			tasks, err := svc.Tasks(ctx)
			if err != nil {
				return err
			}
			practices, err := svc.Practices(ctx)
			if err != nil {
				return err
			}
			challenges, err := svc.DailyChallenges(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChallenge, "Daily Challenges"))
			now := svc.Now()
			for _, ch := range challenges {
				p := engine.ChallengeProgress(ch, state, tasks, practices, now)
				line := fmt.Sprintf("%s %s %s %d/%d %s", ch.Icon, ch.Name, ui.Muted.Render("—"), p.Current, p.Total, ui.Muted.Render(fmt.Sprintf("+%d XP, %s", ch.XPReward, ch.Difficulty)))
				if ch.CompletedAt != nil {
					line = ui.IconDone + " " + ui.Good.Render(ch.Name) + fmt.Sprintf(" %d/%d (done)", p.Current, p.Total)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	return cmd
}
