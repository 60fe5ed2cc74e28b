package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/nepplot/internal/parity"
)

// RenderSummary formats the RMSE of every quantity and component as a table.
func RenderSummary(title string, s parity.Summary) string {
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(CurrentTheme.Muted)).
		Headers("QUANTITY", "COMPONENT", "RMSE", "UNIT", "ROWS").
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == ltable.HeaderRow:
				return st.Bold(true).Foreground(CurrentTheme.Primary)
			case col == 2:
				return st.Foreground(CurrentTheme.Secondary).Align(lipgloss.Right)
			case col == 4:
				return st.Align(lipgloss.Right)
			}
			return st
		})

	for _, q := range s.Quantities() {
		rows := strconv.Itoa(q.Rows)
		t.Row(q.Name, "mean", formatRMSE(q.Name, q.Mean), q.Unit, rows)
		if len(q.Order) < 2 {
			continue
		}
		for _, c := range q.Order {
			t.Row("", c, formatRMSE(q.Name, q.Components[c]), q.Unit, "")
		}
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	if s.Dropped > 0 {
		b.WriteString(warnStyle().Render(fmt.Sprintf("dropped %d stress rows with |value| above threshold", s.Dropped)))
		b.WriteString("\n")
	}
	return b.String()
}

// formatRMSE matches the precision used on the figure.
func formatRMSE(quantity string, v float64) string {
	if quantity == "stress" {
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
