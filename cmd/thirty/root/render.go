package root

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
	"github.com/Goutamdhanani/30-days-challenge/internal/ui"
)

func printChallengeCreated(cmd *cobra.Command, ch *engine.Challenge) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Challenge created"))
	fmt.Fprintln(out, ui.LabelValue("Title", ch.Title))
	fmt.Fprintln(out, ui.LabelValue("ID", ui.Muted.Render(ch.ID)))
	fmt.Fprintln(out, ui.LabelValue("Starts", ch.StartAt.Format(time.RFC1123)))
	fmt.Fprintln(out, "")
	printDay(cmd, ch, 0)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, ui.Muted.Render("Run `thirty today` to see your current day, `thirty board` for the TUI."))
}

// printDay renders one day's task list; dayIdx is zero-based.
func printDay(cmd *cobra.Command, ch *engine.Challenge, dayIdx int) {
	out := cmd.OutOrStdout()
	day := ch.Days[dayIdx]

	fmt.Fprintf(out, "%s  %s  %s\n",
		ui.H2.Render(fmt.Sprintf("Day %d of %d", day.DayNumber, engine.ChallengeDays)),
		ui.StatusText(day.Status),
		ui.Dim.Render(fmt.Sprintf("due %s, ~%dm, %d xp", day.DueAt.Format("Jan 2 15:04"), day.EstMinutes, day.XPReward)))

	for i, t := range day.Tasks {
		box := "[ ]"
		if t.Completed {
			box = ui.Good.Render("[x]")
		}
		line := fmt.Sprintf("  %d. %s %s %s", i+1, box, t.Title, ui.Dim.Render(fmt.Sprintf("(%d%%)", t.Percent)))
		if t.Carryover {
			line += " " + ui.Warn.Render(fmt.Sprintf("↩ from day %d", t.FromDay))
		}
		fmt.Fprintln(out, line)
		if t.Details != "" {
			fmt.Fprintln(out, "       "+ui.Muted.Render(t.Details))
		}
	}
}

// printDots renders the 30-day overview row, bracketing the current day.
func printDots(cmd *cobra.Command, ch *engine.Challenge, currentIdx int) {
	var b strings.Builder
	for i, d := range ch.Days {
		dot := ui.StatusDot(d.Status)
		if i == currentIdx {
			b.WriteString("[" + dot + "]")
		} else {
			b.WriteString(" " + dot + " ")
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), b.String())
}
