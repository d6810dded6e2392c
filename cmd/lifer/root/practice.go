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

func newPracticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Manage daily practices",
	}

	cmd.AddCommand(
		newPracticeListCmd(),
		newPracticeAddCmd(),
		newPracticeLogCmd(),
	)
	return cmd
}

func newPracticeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List practices and today's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			practices, err := svc.Practices(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(practices) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no practices)"))
				return nil
			}
			for _, p := range practices {
				mark := " "
				if p.TodayCompleted {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %s %s %g/%g %s %s strength %d, streak %d %s\n",
					mark, ui.IconPractice, p.Name, p.TodayValue, p.Target, p.Unit,
					ui.Muted.Render("—"), p.HabitStrength, p.CurrentStreak, ui.Muted.Render(p.ID))
			}
			return nil
		},
	}

	return cmd
}

func newPracticeAddCmd() *cobra.Command {
	var ptype string
	var target float64
	var unit string
	var frequency string
	var days []int
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a practice",
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

			p, err := svc.CreatePractice(ctx, engine.CreatePracticeInput{
				Name:         args[0],
				Description:  description,
				Type:         ptype,
				Target:       target,
				Unit:         unit,
				Frequency:    frequency,
				ScheduleDays: days,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%g %s %s, id %s)\n", ui.IconPractice, p.Name, p.Target, p.Unit, p.Frequency, ui.Muted.Render(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&ptype, "type", "t", "positive", "Practice type (positive|negative)")
	cmd.Flags().Float64Var(&target, "target", 1, "Daily target value")
	cmd.Flags().StringVarP(&unit, "unit", "u", "completion", "Unit label")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "daily", "Frequency (daily|custom)")
	cmd.Flags().IntSliceVar(&days, "days", nil, "Schedule days for custom frequency (0=Sunday)")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")

	return cmd
}

func newPracticeLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <id> <value>",
		Short: "Log today's value for a practice",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and value are required")
			}
			if _, err := strconv.ParseFloat(args[1], 64); err != nil {
				return errors.New("value must be a number")
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

			value, _ := strconv.ParseFloat(args[1], 64)
			p, err := svc.LogPractice(ctx, args[0], value)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Practice not found."))
				return nil
			}

			out := cmd.OutOrStdout()
			if p.TodayCompleted {
				fmt.Fprintf(out, "%s %s: %g/%g %s %s\n", ui.IconDone, p.Name, p.TodayValue, p.Target, p.Unit, ui.Good.Render("target hit"))
				fmt.Fprintf(out, "   strength %d, streak %d days\n", p.HabitStrength, p.CurrentStreak)
			} else {
				fmt.Fprintf(out, "%s %s: %g/%g %s\n", ui.IconPractice, p.Name, p.TodayValue, p.Target, p.Unit)
			}
			return nil
		},
	}

	return cmd
}
