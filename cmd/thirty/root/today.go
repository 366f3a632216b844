package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
	"github.com/Goutamdhanani/30-days-challenge/internal/ui"
)

func newTodayCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the current day of your challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ch, err := loadChallenge(ctx, svc, id)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			idx := engine.CurrentDayIndex(ch.StartAt, now)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTarget, ch.Title))
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
				ui.LabelValue("XP", ui.Gold.Render(fmt.Sprintf("%d", ch.EarnedXP()))),
				ui.LabelValue("Days done", fmt.Sprintf("%d/%d", ch.CompletedDays(), engine.ChallengeDays)))
			fmt.Fprintln(cmd.OutOrStdout(), "")
			printDots(cmd, ch, idx)
			fmt.Fprintln(cmd.OutOrStdout(), "")
			printDay(cmd, ch, idx)
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Check off a task with `thirty check <task#>`."))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "challenge id (defaults to the latest)")

	return cmd
}

func loadChallenge(ctx context.Context, svc *engine.Service, id string) (*engine.Challenge, error) {
	if id != "" {
		return svc.Load(ctx, id)
	}
	return svc.LoadLatest(ctx)
}
