package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableStyle provides consistent styling for tables across the CLI.
type TableStyle struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
}

// DefaultTableStyle returns the default table styling.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		Cell: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Selected: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Background(ColorMuted),
		Border: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	style := DefaultTableStyle()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = style.Cell
	// Nothing is focused, so the cursor row renders like any other.
	s.Selected = style.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
// This is for CLI output (not TUI), producing a simple formatted table.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// Status values for KeyValueRow.
const (
	StatusNone = ""
	StatusOK   = "ok"
	StatusWarn = "warn"
	StatusFail = "fail"
	StatusInfo = "info"
)

// KeyValueRow is one labeled line in a property listing.
type KeyValueRow struct {
	Status string // one of the Status* values
	Key    string
	Value  string
}

// RenderKeyValues renders rows under a bold title, aligning the values.
func RenderKeyValues(title string, rows []KeyValueRow) string {
	if len(rows) == 0 {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	keyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	keyWidth := 0
	for _, row := range rows {
		if w := lipgloss.Width(row.Key); w > keyWidth {
			keyWidth = w
		}
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
	}
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(statusIcon(row.Status))
		b.WriteString(" ")
		b.WriteString(keyStyle.Render(padRight(row.Key, keyWidth)))
		b.WriteString("  ")
		b.WriteString(row.Value)
		b.WriteString("\n")
	}
	return b.String()
}

func statusIcon(status string) string {
	switch status {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolComplete)
	case StatusWarn:
		return lipgloss.NewStyle().Foreground(ColorWarning).Render(SymbolComplete)
	case StatusFail:
		return lipgloss.NewStyle().Foreground(ColorError).Render(SymbolFail)
	case StatusInfo:
		return lipgloss.NewStyle().Foreground(ColorInfo).Render(SymbolComplete)
	default:
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(SymbolPending)
	}
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	// Account for ANSI codes when calculating visible length
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}
