package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/engine"
	"github.com/myaiRhys/Lifer/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Show unlocked achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			unlocked, err := svc.UnlockedAchievements(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements (%d/%d)", len(unlocked), len(engine.Achievements))))

			byID := make(map[string]bool, len(unlocked))
			for _, a := range unlocked {
				byID[a.ID] = true
				fmt.Fprintf(out, "%s %s %s %s\n", a.Icon, a.Name, ui.RarityText(a.Rarity), ui.Muted.Render(a.UnlockedAt.Format("2006-01-02")))
			}

			if !all {
				return nil
			}

			state, err := svc.UserState(ctx)
			if err != nil {
				return err
			}
			if state == nil {
				return nil
			}
			history, err := svc.History(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Locked"))
			for _, def := range engine.Achievements {
				if byID[def.ID] {
					continue
				}
				p := def.Rule.Progress(state, history)
				fmt.Fprintf(out, "%s %s %s %s\n", def.Icon, ui.Muted.Render(def.Name), ui.Muted.Render(fmt.Sprintf("%d/%d", p.Current, p.Total)), ui.Muted.Render(def.Description))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include locked achievements with progress")
	return cmd
}
