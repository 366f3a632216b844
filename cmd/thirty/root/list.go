package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
	"github.com/Goutamdhanani/30-days-challenge/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			all, err := svc.List(ctx)
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No challenges yet. Run `thirty start` to begin."))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCal, "Challenges"))
			for _, ch := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", ui.H2.Render(ch.Title), ui.Muted.Render("("+ch.ID+")"))
				fmt.Fprintf(cmd.OutOrStdout(), "  started %s, %d/%d days done, %d xp\n",
					ch.StartAt.Format("Jan 2 2006"),
					ch.CompletedDays(), engine.ChallengeDays,
					ch.EarnedXP())
			}
			return nil
		},
	}

	return cmd
}
