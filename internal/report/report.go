// Package report renders a focus result for terminals and scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/phrazzld/focus-api/internal/domain"
)

// Format selects the output encoding.
type Format string

// Supported formats
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat converts a case-insensitive name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Write encodes result to w in the given format. now is used for the
// relative due column of the table format.
func Write(w io.Writer, result *domain.FocusTaskResult, format Format, now time.Time) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		_, err := io.WriteString(w, Table(result, now)+"\n")
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	focusTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	waitingTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	overdueStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("196"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true).
				Padding(0, 1)
)

var columns = []string{"Score", "Task", "Priority", "Due", "Successors", "Workspace / Item", "After"}

// Table renders both lists as aligned columns.
func Table(result *domain.FocusTaskResult, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%d of %d open tasks, mode %s)\n\n",
		headerStyle.Render("Focus"), len(result.FocusTasks)+len(result.WaitingTasks),
		result.TotalTaskCount, result.Mode)

	b.WriteString(focusTitleStyle.Render("Ready to start"))
	b.WriteString("\n")
	b.WriteString(section(result.FocusTasks, now, "Nothing ready to start"))
	b.WriteString("\n\n")
	b.WriteString(waitingTitleStyle.Render("Waiting on a predecessor"))
	b.WriteString("\n")
	b.WriteString(section(result.WaitingTasks, now, "Nothing blocked"))

	return b.String()
}

func section(tasks []domain.FocusTaskInfo, now time.Time, empty string) string {
	if len(tasks) == 0 {
		return placeholderStyle.Render(empty)
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.FormatFloat(t.TotalScore, 'f', -1, 64),
			"#" + strconv.Itoa(t.Sequence) + " " + t.Content,
			priorityLabel(t.Priority),
			RelativeDue(t.DueAt, now),
			strconv.Itoa(t.SuccessorCount),
			t.WorkspaceName + " / " + t.ItemTitle,
			t.PredecessorSummary(),
		})
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, renderRow(columns, widths, func(int) lipgloss.Style { return headerStyle }))
	for ri, row := range rows {
		overdue := tasks[ri].DueAt.Before(now)
		lines = append(lines, renderRow(row, widths, func(col int) lipgloss.Style {
			if col == 3 && overdue {
				return overdueStyle
			}
			return cellStyle
		}))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRow(cells []string, widths []int, style func(col int) lipgloss.Style) string {
	rendered := make([]string, len(cells))
	for i, cell := range cells {
		// Width includes the horizontal padding of the style.
		rendered[i] = style(i).Width(widths[i] + 2).Render(cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func priorityLabel(p domain.Priority) string {
	if p == domain.PriorityUnset {
		return "-"
	}
	return string(p)
}

// RelativeDue describes dueAt relative to now, e.g. "in 3d", "in 5h" or
// "overdue 2h".
func RelativeDue(dueAt, now time.Time) string {
	d := dueAt.Sub(now)
	prefix := "in "
	if d < 0 {
		prefix = "overdue "
		d = -d
	}

	switch {
	case d >= 24*time.Hour:
		return prefix + strconv.Itoa(int(d/(24*time.Hour))) + "d"
	case d >= time.Hour:
		return prefix + strconv.Itoa(int(d/time.Hour)) + "h"
	default:
		return prefix + strconv.Itoa(int(d/time.Minute)) + "m"
	}
}
