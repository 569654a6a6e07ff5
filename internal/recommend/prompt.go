package recommend

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a career advisor for students and early-career professionals. You read a short personality quiz and suggest roles that fit.`

func buildUserMessage(in Input, count int) string {
	var b strings.Builder

	if in.HasOnboarding {
		o := in.Onboarding
		fmt.Fprintf(&b, "Language: %s\n", o.Language)
		fmt.Fprintf(&b, "Region: %s\n", o.Region)
		if goal, ok := o.GoalText(); ok {
			fmt.Fprintf(&b, "Stated goal: %s\n", goal)
		} else {
			b.WriteString("Stated goal: none\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Quiz answers:\n")
	for _, i := range in.Answers.Indexes() {
		q := fmt.Sprintf("Question %d", i+1)
		if i < len(in.Questions) {
			q = in.Questions[i].Text
		}
		fmt.Fprintf(&b, "- %s: %s\n", q, strings.Join(in.Answers[i].Values(), ", "))
	}
	if len(in.Answers) == 0 {
		b.WriteString("None\n")
	}

	fmt.Fprintf(&b, `
Instructions:
Suggest exactly %d roles, best fit first.
1. Use a stable kebab-case role_id and a short role_name.
2. The summary speaks to the user ("you") and cites their answers.
3. Prefer roles reachable within two years of focused learning.`, count)

	return b.String()
}
