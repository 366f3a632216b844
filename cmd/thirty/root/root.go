package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Goutamdhanani/30-days-challenge/internal/ui"
)

const Version = "0.1.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "thirty",
	Short:         "Thirty — 30-day challenge tracker",
	Long:          "Thirty is a local-first CLI/TUI tracker for 30-day challenges: daily tasks, carryover of what you miss, and XP for what you finish.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newStartCmd(),
		newFitnessCmd(),
		newGenerateCmd(),
		newQuotaCmd(),
		newTodayCmd(),
		newCheckCmd(),
		newListCmd(),
		newStatsCmd(),
		newDeleteCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

// logger builds the process logger; debug output is opt-in via --verbose.
func logger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
