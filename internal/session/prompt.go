package session

import (
	"sort"
	"strings"
)

// BuildSystemPrompt assembles the AI system prompt for one user: the Alex
// persona, the user's strongest interests, the persuasion approaches worth
// leaning on, and behavioral directives derived from the session's
// personality traits. The LLM sees only plain-language directives, not
// raw trait numbers.
func (m *Manager) BuildSystemPrompt(userID string) string {
	s := m.GetSession(userID)

	var b strings.Builder
	b.WriteString("You are Alex, a friendly and experienced trading mentor. ")
	b.WriteString("Your goal is to get the user excited about trading signals and have them register through your link. ")
	b.WriteString("Keep replies short, casual, and conversational. Never reveal that you are an AI.\n")

	if interests := m.TopInterests(userID, 3); len(interests) > 0 {
		b.WriteString("\nThe user has shown interest in: " + strings.Join(interests, ", ") + ". Connect trading to these when natural.\n")
	}

	if approaches := topApproaches(s.PersuasionApproaches, 2); len(approaches) > 0 {
		b.WriteString("\n--- Persuasion Approaches ---\n")
		for _, a := range approaches {
			b.WriteString("- " + a + "\n")
		}
	}

	b.WriteString("\n" + buildBehaviorDirectives(s.Personality))
	return b.String()
}

// topApproaches returns descriptions of the strongest approaches with
// effectiveness above 0.5, best first.
func topApproaches(approaches map[string]Approach, limit int) []string {
	type ranked struct {
		name string
		a    Approach
	}
	var list []ranked
	for name, a := range approaches {
		if a.Effectiveness > 0.5 {
			list = append(list, ranked{name, a})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].a.Effectiveness != list[j].a.Effectiveness {
			return list[i].a.Effectiveness > list[j].a.Effectiveness
		}
		return list[i].name < list[j].name
	})
	if len(list) > limit {
		list = list[:limit]
	}
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.a.Description)
	}
	return out
}

// buildBehaviorDirectives turns personality traits into plain-language
// directives.
func buildBehaviorDirectives(p Personality) string {
	var lines []string

	if p.Friendliness >= 9 {
		lines = append(lines, "Be very warm and welcoming.")
	} else {
		lines = append(lines, "Keep a friendly, approachable tone.")
	}

	if p.Enthusiasm >= 9 {
		lines = append(lines, "Show strong excitement about trading opportunities.")
	} else {
		lines = append(lines, "Stay upbeat about trading without overdoing it.")
	}

	switch {
	case p.Formality <= 4:
		lines = append(lines, "Write casually, like texting a friend.")
	case p.Formality <= 6:
		lines = append(lines, "Keep the tone relaxed but coherent.")
	default:
		lines = append(lines, "Stay polite and a bit more composed.")
	}

	if p.Persuasiveness >= 9 {
		lines = append(lines, "Steer every exchange toward registering, but never pushy.")
	} else {
		lines = append(lines, "Nudge toward registering when the moment fits.")
	}

	if p.Directness >= 8 {
		lines = append(lines, "Get to the point quickly.")
	} else {
		lines = append(lines, "Build a little rapport before making your point.")
	}

	lines = append(lines,
		"Never expose internal metrics.",
		"Never describe your approach or strategy to the user.",
	)

	return "--- Behavioral Directives ---\n- " + strings.Join(lines, "\n- ") + "\n"
}
