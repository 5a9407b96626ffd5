package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/zbdtop/internal/zbd"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent  = lipgloss.Color("#FF2E97") // Neon pink
	ColorWarning = lipgloss.Color("#FFAA00")

	// Zone condition colors
	ColorConventional = lipgloss.Color("#8A8AA8") // Slate
	ColorEmpty        = lipgloss.Color("#39FF14") // Neon green
	ColorOpen         = lipgloss.Color("#00FFFF") // Neon cyan
	ColorClosed       = lipgloss.Color("#BF40FF") // Neon purple
	ColorFull         = lipgloss.Color("#FF2E97") // Neon pink
	ColorInactive     = lipgloss.Color("#FFAA00") // Electric amber
	ColorBroken       = lipgloss.Color("#FF0055") // Hot red-pink
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	GridStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	StaleStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	SelectedCellStyle = lipgloss.NewStyle().
				Reverse(true)
)

// Cell glyphs
const (
	CellFilled = "█"
	CellEmpty  = "░"
	CellBlank  = " "
)

// ConditionColor returns the color used to draw a zone.
func ConditionColor(z *zbd.Zone) lipgloss.Color {
	if z.IsConventional() {
		return ColorConventional
	}
	switch z.Cond {
	case zbd.ZoneCondEmpty:
		return ColorEmpty
	case zbd.ZoneCondImpOpen, zbd.ZoneCondExpOpen:
		return ColorOpen
	case zbd.ZoneCondClosed:
		return ColorClosed
	case zbd.ZoneCondFull:
		return ColorFull
	case zbd.ZoneCondInactive:
		return ColorInactive
	case zbd.ZoneCondReadOnly, zbd.ZoneCondOffline:
		return ColorBroken
	default:
		return ColorTextMuted
	}
}

// FillBar renders a zone's written fraction as width cells.
func FillBar(width int, written, capacity uint64) string {
	if width < 1 {
		width = 1
	}

	filled := 0
	if capacity > 0 {
		if written > capacity {
			written = capacity
		}
		filled = int(written * uint64(width) / capacity)
		// Any written data shows at least one cell.
		if filled == 0 && written > 0 {
			filled = 1
		}
	}

	return strings.Repeat(CellFilled, filled) + strings.Repeat(CellEmpty, width-filled)
}

// legendEntry is one condition in the legend.
type legendEntry struct {
	label string
	color lipgloss.Color
}

var legendEntries = []legendEntry{
	{label: "cnv", color: ColorConventional},
	{label: "empty", color: ColorEmpty},
	{label: "open", color: ColorOpen},
	{label: "closed", color: ColorClosed},
	{label: "full", color: ColorFull},
	{label: "inactive", color: ColorInactive},
	{label: "ro/offline", color: ColorBroken},
}
