package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
	"github.com/Goutamdhanani/30-days-challenge/internal/ui"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [goal]",
		Short: "Generate a challenge plan with AI",
		Long:  "Generate a tailored 30-day plan from a goal using the Anthropic API. Requires ANTHROPIC_API_KEY. Limited per ISO week.",
		RunE: func(cmd *cobra.Command, args []string) error {
			goal := strings.TrimSpace(strings.Join(args, " "))
			if goal == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("Describe your 30-day goal").
						Placeholder("e.g. Go from couch to 5k").
						Value(&goal),
				))
				if err := form.Run(); err != nil {
					return err
				}
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Generating plan… this usually takes a few seconds."))
			ch, err := svc.StartGenerated(ctx, goal)
			if err != nil {
				var quotaErr engine.QuotaError
				if errors.As(err, &quotaErr) {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Weekly generation limit reached."))
					fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Limit", quotaErr.Limit))
					fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Resets", quotaErr.ResetAt.Format(time.RFC1123)))
					return nil
				}
				return err
			}

			printChallengeCreated(cmd, ch)

			quota, err := svc.GenerationQuota(ctx)
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%d of %d generations left this week.", quota.Remaining(), quota.Limit)))
			}
			return nil
		},
	}

	return cmd
}

func newQuotaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Show remaining AI generations this week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			quota, err := svc.GenerationQuota(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBolt, "Generation Quota"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Week", quota.WeekKey))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Used", fmt.Sprintf("%d of %d", quota.Used, quota.Limit)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Resets", quota.ResetAt.Format(time.RFC1123)))
			return nil
		},
	}

	return cmd
}
