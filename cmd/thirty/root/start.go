package root

import (
	"context"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [goal]",
		Short: "Start a challenge from a goal (no AI)",
		RunE: func(cmd *cobra.Command, args []string) error {
			goal := strings.TrimSpace(strings.Join(args, " "))
			if goal == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("What do you want to do for 30 days?").
						Placeholder("e.g. Learn Go basics").
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

			ch, err := svc.StartLocal(ctx, goal)
			if err != nil {
				return err
			}
			printChallengeCreated(cmd, ch)
			return nil
		},
	}

	return cmd
}
