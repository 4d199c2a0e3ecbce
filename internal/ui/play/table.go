package play

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"quiz/pkg/quiz"
)

var resultLabels = []string{
	"Total questions",
	"Answered",
	"Correct",
	"Incorrect",
	"Unanswered",
	"Correct %",
	"Incorrect %",
}

// resultColumns returns the results table layout.
func resultColumns() []table.Column {
	return []table.Column{
		{Title: "Metric", Width: 18},
		{Title: "Value", Width: 8},
	}
}

// tableStyles returns table styles for the results view.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	styles.Selected = lipgloss.NewStyle()
	return styles
}

// resultRows converts results into table rows in display order.
func resultRows(results quiz.Results) []table.Row {
	values := []int{
		results.TotalQuestions,
		results.TotalAnswered,
		results.CorrectCount,
		results.IncorrectCount,
		results.UnansweredCount,
		results.CorrectPercentage,
		results.IncorrectPercentage,
	}
	rows := make([]table.Row, 0, len(values))
	for i, value := range values {
		rows = append(rows, table.Row{resultLabels[i], strconv.Itoa(value)})
	}
	return rows
}
