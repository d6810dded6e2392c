package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/ui"
)

func newOutcomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outcome",
		Short: "Manage long-term outcomes",
	}

	cmd.AddCommand(
		newOutcomeListCmd(),
		newOutcomeAddCmd(),
		newOutcomeProgressCmd(),
		newOutcomeDoneCmd(),
		newOutcomeArchiveCmd(),
	)
	return cmd
}

func newOutcomeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			outcomes, err := svc.Outcomes(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(outcomes) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no outcomes)"))
				return nil
			}
			for _, o := range outcomes {
				fmt.Fprintf(out, "%s %s [%s, %d%%, %d tasks] %s\n", ui.IconOutcome, o.Result, o.Status, o.Progress, o.LinkedTaskCount, ui.Muted.Render(o.ID))
				if o.Purpose != "" {
					fmt.Fprintln(out, "   "+ui.Muted.Render("why: "+o.Purpose))
				}
			}
			return nil
		},
	}

	return cmd
}

func newOutcomeAddCmd() *cobra.Command {
	var purpose string

	cmd := &cobra.Command{
		Use:   "add <result>",
		Short: "Add an outcome",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("result is required")
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

			o, err := svc.CreateOutcome(ctx, args[0], purpose)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (id %s)\n", ui.IconOutcome, o.Result, ui.Muted.Render(o.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&purpose, "purpose", "p", "", "Why this outcome matters")
	return cmd
}

func newOutcomeProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Update outcome progress (0-100)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and percent are required")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("percent must be an integer")
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

			pct, _ := strconv.Atoi(args[1])
			o, err := svc.UpdateOutcomeProgress(ctx, args[0], pct)
			if err != nil {
				return err
			}
			if o == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Outcome not found."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d%%\n", ui.IconOutcome, o.Result, o.Progress)
			return nil
		},
	}

	return cmd
}

func newOutcomeDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete an outcome",
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

			o, err := svc.CompleteOutcome(ctx, args[0])
			if err != nil {
				return err
			}
			if o == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Outcome not found or already completed."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconDone, o.Result, ui.Gold.Render("+100 XP"))
			return nil
		},
	}

	return cmd
}

func newOutcomeArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive an outcome",
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

			o, err := svc.ArchiveOutcome(ctx, args[0])
			if err != nil {
				return err
			}
			if o == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Outcome not found."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s archived %s\n", ui.IconOutcome, o.Result)
			return nil
		},
	}

	return cmd
}
