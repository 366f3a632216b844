package root

import (
	"context"

	"github.com/spf13/cobra"
)

func newFitnessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fitness",
		Short: "Start the built-in 30-day fitness challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ch, err := svc.StartFitness(ctx)
			if err != nil {
				return err
			}
			printChallengeCreated(cmd, ch)
			return nil
		},
	}

	return cmd
}
