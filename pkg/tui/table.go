package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/prefs/pkg/editor"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	maxValueWidth   = 40
	maxOptionsWidth = 30
)

// RenderTable renders a titled settings table. Values longer than the
// column limit are truncated; option lists wrap.
func RenderTable(th Theme, title string, rows []editor.Row) string {
	hasOptions := false
	for _, r := range rows {
		if len(r.Options) > 0 {
			hasOptions = true
			break
		}
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		value := r.Value
		if value == "" {
			value = "(unset)"
		}
		row := []string{r.Name, truncate.StringWithTail(value, maxValueWidth, "…")}
		if hasOptions {
			row = append(row, wordwrap.String(strings.Join(r.Options, ", "), maxOptionsWidth))
		}
		data = append(data, row)
	}

	headers := []string{"SETTING", "VALUE"}
	if hasOptions {
		headers = append(headers, "OPTIONS")
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(th.Border).
		Headers(headers...).
		Rows(data...)

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return th.Header
		case col == 1:
			return th.Value.Padding(0, 1)
		case col == 2:
			return th.Muted.Padding(0, 1)
		default:
			return cell
		}
	})

	var b strings.Builder
	if title != "" {
		b.WriteString(th.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(t.String())
	return b.String()
}
