package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/myaiRhys/Lifer/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lifer",
	Short:         "Lifer — gamified life operating system",
	Long:          "Lifer tracks tasks, practices, and outcomes with XP, levels, streaks, achievements, and daily challenges, all stored locally.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newTaskCmd(),
		newPracticeCmd(),
		newOutcomeCmd(),
		newChallengesCmd(),
		newAchievementsCmd(),
		newAuthCmd(),
		newJarCmd(),
		newStackCmd(),
		newMakerCmd(),
		newSeasonCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
