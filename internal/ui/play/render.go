package play

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the attempt and timer line.
func renderHeader(state State, noColor bool) string {
	line := "Attempt " + state.AttemptID
	if state.Phase == PhaseAnswering {
		line += " | Time left: " + formatSeconds(state.RemainingSec)
		line += " | Answered: " + strconv.Itoa(Answered(state)) + "/" + strconv.Itoa(len(state.Questions))
	}
	color := lipgloss.Color("33")
	if state.Phase == PhaseAnswering && state.RemainingSec <= 10 {
		color = lipgloss.Color("196")
	}
	return stylize(line, noColor, color)
}

// renderQuestion renders the current question and its options.
func renderQuestion(state State, noColor bool) string {
	question, ok := currentQuestion(state)
	if !ok {
		return stylize("No questions available.", noColor, lipgloss.Color("244"))
	}
	selected, answered := AnswerFor(state, question.ID)
	lines := []string{
		"",
		stylize(fmt.Sprintf("Question %d/%d", state.Current+1, len(state.Questions)), noColor, lipgloss.Color("240")),
		question.Body,
		"",
	}
	for i, option := range question.Options {
		pointer := "  "
		if i == state.Cursor {
			pointer = "> "
		}
		mark := "( )"
		if answered && i == selected {
			mark = "(*)"
		}
		line := pointer + mark + " " + option
		if i == state.Cursor {
			line = stylize(line, noColor, lipgloss.Color("39"))
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// renderStatus renders the last error, if any.
func renderStatus(state State, noColor bool) string {
	if state.Err == "" {
		return ""
	}
	return stylize(state.Err, noColor, lipgloss.Color("220"))
}

// renderHelp renders the key bindings line.
func renderHelp(text string, noColor bool) string {
	return stylize(text, noColor, lipgloss.Color("244"))
}

// formatSeconds renders a countdown as m:ss.
func formatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
