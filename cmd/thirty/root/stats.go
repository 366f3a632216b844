package root

import (
	"context"
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
	"github.com/Goutamdhanani/30-days-challenge/internal/ui"
)

func newStatsCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-day completion stats",
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

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconChart, ch.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Day", fmt.Sprintf("%d of %d", idx+1, engine.ChallengeDays)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Days completed", ch.CompletedDays()))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP earned", ch.EarnedXP()))
			missed := 0
			carryovers := 0
			for _, d := range ch.Days {
				if d.Status == engine.StatusMissed {
					missed++
				}
				for _, t := range d.Tasks {
					if t.Carryover {
						carryovers++
					}
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Days missed", missed))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Carried-over tasks", carryovers))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), renderCompletionChart(ch))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "challenge id (defaults to the latest)")

	return cmd
}

// renderCompletionChart draws completed task weight (0..100) per day.
func renderCompletionChart(ch *engine.Challenge) string {
	styleFor := func(s engine.DayStatus) lipgloss.Style {
		switch s {
		case engine.StatusCompleted:
			return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		case engine.StatusMissed:
			return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		default:
			return lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
		}
	}

	chart := barchart.New(2*engine.ChallengeDays+2, 10)

	var bars []barchart.BarData
	for _, d := range ch.Days {
		label := ""
		if d.DayNumber == 1 || d.DayNumber%5 == 0 {
			label = fmt.Sprintf("%d", d.DayNumber)
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  fmt.Sprintf("day %d", d.DayNumber),
				Value: float64(d.CompletedWeight()),
				Style: styleFor(d.Status),
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}
