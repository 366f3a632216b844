package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
	"github.com/Goutamdhanani/30-days-challenge/internal/ui"
)

func newCheckCmd() *cobra.Command {
	var (
		id   string
		day  int
		undo bool
	)
	cmd := &cobra.Command{
		Use:   "check <task#>",
		Short: "Check off a task (today's by default)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task number is required")
			}
			if n, err := strconv.Atoi(args[0]); err != nil || n < 1 {
				return errors.New("task number must be a positive integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			taskNum, _ := strconv.Atoi(args[0])

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
			dayIdx := engine.CurrentDayIndex(ch.StartAt, now)
			if day > 0 {
				if day > len(ch.Days) {
					return fmt.Errorf("day must be 1..%d", len(ch.Days))
				}
				dayIdx = day - 1
			}
			tasks := ch.Days[dayIdx].Tasks
			if taskNum > len(tasks) {
				return fmt.Errorf("day %d has %d tasks", dayIdx+1, len(tasks))
			}
			task := tasks[taskNum-1]

			if dayIdx < engine.CurrentDayIndex(ch.StartAt, now) {
				return fmt.Errorf("day %d is in the past and can no longer be edited", dayIdx+1)
			}

			updated, err := svc.Toggle(ctx, ch.ID, dayIdx, task.ID, !undo)
			if err != nil {
				return err
			}

			if undo {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Unchecked %q.\n", ui.IconLoop, task.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconDone, ui.Good.Render("Done:"), task.Title)
			}

			d := updated.Days[dayIdx]
			if d.AllDone() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("%s Day %d complete! +%d XP", ui.IconTrophy, d.DayNumber, d.XPReward)))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Day %d at %d%%.", d.DayNumber, d.CompletedWeight())))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "challenge id (defaults to the latest)")
	cmd.Flags().IntVar(&day, "day", 0, "day number 1..30 (defaults to today)")
	cmd.Flags().BoolVar(&undo, "undo", false, "uncheck instead")

	return cmd
}
