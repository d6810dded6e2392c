package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/engine"
	"github.com/myaiRhys/Lifer/internal/ui"
)

func newJarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jar",
		Short: "Cookie jar of past victories",
	}

	cmd.AddCommand(
		newJarAddCmd(),
		newJarListCmd(),
		newJarPullCmd(),
		newJarStatsCmd(),
	)
	return cmd
}

func newJarAddCmd() *cobra.Command {
	var story string
	var emotion string
	var difficulty int
	var category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a victory to the jar",
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

			v, err := svc.AddVictory(ctx, engine.AddVictoryInput{
				Title:      args[0],
				Story:      story,
				Emotion:    engine.VictoryEmotion(emotion),
				Difficulty: difficulty,
				Category:   engine.VictoryCategory(category),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (difficulty %d, id %s)\n", ui.IconJar, v.Title, v.Difficulty, ui.Muted.Render(v.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&story, "story", "s", "", "The story behind the win")
	cmd.Flags().StringVarP(&emotion, "emotion", "e", "proud", "Emotion (proud|unstoppable|relieved|energized|calm)")
	cmd.Flags().IntVarP(&difficulty, "difficulty", "d", 5, "How hard it was (1-10)")
	cmd.Flags().StringVarP(&category, "category", "c", "personal", "Category (physical|mental|professional|personal)")

	return cmd
}

func newJarListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List victories, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			victories, err := svc.Victories(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(victories) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty jar)"))
				return nil
			}
			for _, v := range victories {
				fmt.Fprintf(out, "%s %s [%s, d%d, pulled %dx] %s\n", ui.IconJar, v.Title, v.Category, v.Difficulty, v.TimesRetrieved, ui.Muted.Render(v.ID))
			}
			return nil
		},
	}

	return cmd
}

func newJarPullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pull",
		Aliases: []string{"draw"},
		Short:   "Pull a random victory (weighted by difficulty)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := svc.RandomVictory(ctx)
			if err != nil {
				return err
			}
			if v == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("The jar is empty. Add a victory first."))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconJar, v.Title))
			if v.Story != "" {
				fmt.Fprintln(out, v.Story)
			}
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("You felt %s. Difficulty %d/10. Remember: you've done hard things before.", v.Emotion, v.Difficulty)))
			return nil
		},
	}

	return cmd
}

func newJarStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show jar statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.CookieJarStats(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconJar, "Cookie Jar"))
			fmt.Fprintln(out, ui.LabelValue("Victories", stats.TotalVictories))
			fmt.Fprintln(out, ui.LabelValue("Retrievals", stats.TotalRetrievals))
			fmt.Fprintln(out, ui.LabelValue("Avg difficulty", fmt.Sprintf("%.1f", stats.AvgDifficulty)))
			fmt.Fprintln(out, ui.LabelValue("Most common emotion", stats.MostCommonEmotion))
			fmt.Fprintln(out, ui.LabelValue("Jar strength", fmt.Sprintf("%d/100", stats.CurrentStrength)))
			for _, cc := range stats.VictoryByCategory {
				fmt.Fprintf(out, "- %s: %d\n", cc.Category, cc.Count)
			}
			return nil
		},
	}

	return cmd
}
