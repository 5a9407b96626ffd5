package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/zbdtop/internal/zbd"
)

const (
	defaultCellWidth = 4
	maxCellWidth     = 8
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderDetail())
	b.WriteString("\n")
	b.WriteString(m.renderLegend())
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return b.String()
}

// renderHeader renders the device summary line.
func (m Model) renderHeader() string {
	info := m.src.Info()

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("zbdtop " + m.src.Path())

	stats := fmt.Sprintf(" | %s | %d cnv + %d seq zones | zone %s | capacity %s",
		info.Model,
		m.src.NrConvZones(),
		m.src.NrSeqZones(),
		humanize.IBytes(info.ZoneSize),
		humanize.IBytes(info.Capacity))
	if d := m.src.Divisor(); d > 1 {
		stats += " | unit " + humanize.IBytes(d)
	}

	header := title + lipgloss.NewStyle().Foreground(ColorTextSecondary).Render(stats)
	if m.sched.Stale() {
		header += StaleStyle.Render(fmt.Sprintf(" | stale (%d failed)", m.sched.Failures()))
	}

	return HeaderStyle.Render(header)
}

// cellWidth picks the widest cell that lets a full row fit the terminal.
func (m Model) cellWidth() int {
	if m.width == 0 {
		return defaultCellWidth
	}
	cols := m.layout.Shape().Cols
	// border, padding and the row label
	avail := m.width - 4 - m.labelWidth() - 1
	w := avail/cols - 1
	if w < 1 {
		w = 1
	}
	if w > maxCellWidth {
		w = maxCellWidth
	}
	return w
}

func (m Model) labelWidth() int {
	return len(fmt.Sprint(m.layout.NrZones()))
}

// renderGrid renders the visible rows of zone cells.
func (m Model) renderGrid() string {
	if m.layout.NrZones() == 0 {
		return GridStyle.Render(LabelStyle.Render("No zones"))
	}

	shape := m.layout.Shape()
	width := m.cellWidth()
	labelStyle := LabelStyle.Width(m.labelWidth()).Align(lipgloss.Right)

	rows := make([]string, 0, shape.VisibleRows)
	for r := m.topRow; r < m.topRow+shape.VisibleRows && r < shape.Rows; r++ {
		cells := make([]string, 0, shape.Cols)
		for c := 0; c < shape.Cols; c++ {
			cells = append(cells, m.renderCell(r, c, width))
		}
		label := labelStyle.Render(fmt.Sprint(r * shape.Cols))
		rows = append(rows, label+" "+strings.Join(cells, " "))
	}

	return GridStyle.Render(strings.Join(rows, "\n"))
}

// renderCell renders one grid cell as a fill bar colored by condition.
func (m Model) renderCell(row, col, width int) string {
	cell := m.layout.At(row, col)
	if cell.Empty() {
		return strings.Repeat(CellBlank, width)
	}

	z := cell.Zone()
	style := lipgloss.NewStyle().Foreground(ConditionColor(z))
	if cell.Zno == m.selected {
		style = style.Inherit(SelectedCellStyle)
	}
	return style.Render(FillBar(width, z.Written(), z.Capacity))
}

// renderDetail describes the selected zone in display units.
func (m Model) renderDetail() string {
	z := m.SelectedZone()
	if z == nil {
		return LabelStyle.Render("No zone selected")
	}

	fields := []string{
		fmt.Sprintf("zone %d", m.selected),
		z.Type.String(),
		z.Cond.Description(),
		"start " + ValueStyle.Render(fmt.Sprint(z.Start)),
		"len " + ValueStyle.Render(fmt.Sprint(z.Len)),
		"cap " + ValueStyle.Render(fmt.Sprint(z.Capacity)),
	}
	if !z.IsConventional() {
		fields = append(fields,
			"wp "+ValueStyle.Render(fmt.Sprint(z.WP)),
			fmt.Sprintf("%d%%", fillPercent(z)))
	}

	return LabelStyle.Render(strings.Join(fields, "  "))
}

// renderLegend lists the condition colors.
func (m Model) renderLegend() string {
	parts := make([]string, 0, len(legendEntries))
	for _, e := range legendEntries {
		swatch := lipgloss.NewStyle().Foreground(e.color).Render(CellFilled)
		parts = append(parts, swatch+" "+LabelStyle.Render(e.label))
	}
	return FooterStyle.Render(strings.Join(parts, "  "))
}

func fillPercent(z *zbd.Zone) int {
	if z.Capacity == 0 {
		return 0
	}
	return int(z.Written() * 100 / z.Capacity)
}
