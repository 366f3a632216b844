package planner

import (
	"fmt"
	"strings"
)

// buildPrompt asks for JSON only. The rules repeat the client-side
// constraints so the model output needs minimal repair before normalizing.
func buildPrompt(goal string) string {
	lines := []string{
		"You are designing a focused, actionable 30-day challenge.",
		"Output JSON only matching the provided schema. No markdown, no commentary.",
		"",
		"Rules:",
		"- Exactly 30 entries in days[] with dayNumber from 1..30.",
		"- Each day has 1..5 tasks. Keep tasks concrete, short, and measurable.",
		"- Prefer progressive overload across days.",
		"- If percent weights are omitted or do not sum to 100, the client will rebalance.",
		"- Keep xpReward around 120 and estMinutes around 20-40, adjust as needed.",
		"",
		fmt.Sprintf("User goal/prompt: %q", strings.TrimSpace(goal)),
		"",
		"Important: return valid JSON only. The top-level object should be { title, days }.",
	}
	return strings.Join(lines, "\n")
}
