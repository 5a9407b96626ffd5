package grid

import "github.com/rileyhilliard/zbdtop/internal/zbd"

// Cell is one display slot. An empty placeholder has Zno == -1.
type Cell struct {
	Zno  int
	zone *zbd.Zone
}

// Empty reports whether the cell holds no zone.
func (c Cell) Empty() bool {
	return c.Zno < 0
}

// Zone returns the zone shown in the cell, or nil for a placeholder. The
// pointer aliases the session's zone slice, so it always reflects the last
// successful refresh.
func (c Cell) Zone() *zbd.Zone {
	return c.zone
}

// Layout is an immutable grid of cells built over a zone slice.
type Layout struct {
	shape Shape
	n     int
	cells []Cell
}

// New builds the cells for zones. Cell i holds zone i for i < len(zones);
// the remaining cells up to shape.Cells() are placeholders. zones must not
// be reallocated afterwards.
func New(zones []zbd.Zone, shape Shape) *Layout {
	if shape.Cols < 1 {
		shape.Cols = 1
	}
	if need := ceilDiv(len(zones), shape.Cols); shape.Rows < need {
		shape.Rows = need
	}
	if shape.Rows < 1 {
		shape.Rows = 1
	}
	if shape.VisibleRows < 1 || shape.VisibleRows > shape.Rows {
		shape.VisibleRows = shape.Rows
	}

	cells := make([]Cell, shape.Cells())
	for i := range cells {
		if i < len(zones) {
			cells[i] = Cell{Zno: i, zone: &zones[i]}
		} else {
			cells[i] = Cell{Zno: -1}
		}
	}

	return &Layout{shape: shape, n: len(zones), cells: cells}
}

// Shape returns the grid geometry.
func (l *Layout) Shape() Shape { return l.shape }

// NrZones returns the number of populated cells.
func (l *Layout) NrZones() int { return l.n }

// Len returns the total number of cells.
func (l *Layout) Len() int { return len(l.cells) }

// Map returns the cell index for zone zno and its row and column.
func (l *Layout) Map(zno int) (idx, row, col int, ok bool) {
	if zno < 0 || zno >= l.n {
		return 0, 0, 0, false
	}
	return zno, zno / l.shape.Cols, zno % l.shape.Cols, true
}

// Cell returns the cell at index i. Out-of-range indexes yield a placeholder.
func (l *Layout) Cell(i int) Cell {
	if i < 0 || i >= len(l.cells) {
		return Cell{Zno: -1}
	}
	return l.cells[i]
}

// At returns the cell at row, col.
func (l *Layout) At(row, col int) Cell {
	if col < 0 || col >= l.shape.Cols {
		return Cell{Zno: -1}
	}
	return l.Cell(row*l.shape.Cols + col)
}

// Window returns the zone range shown when topRow is the first visible row,
// clipped to the live zone count.
func (l *Layout) Window(topRow int) (start, count int) {
	topRow = l.ClampTopRow(topRow)
	start = topRow * l.shape.Cols
	if start >= l.n {
		return start, 0
	}
	count = l.shape.VisibleRows * l.shape.Cols
	if start+count > l.n {
		count = l.n - start
	}
	return start, count
}

// ClampTopRow bounds a scroll position so the window never runs past the
// last row.
func (l *Layout) ClampTopRow(topRow int) int {
	maxTop := l.shape.Rows - l.shape.VisibleRows
	if topRow > maxTop {
		topRow = maxTop
	}
	if topRow < 0 {
		topRow = 0
	}
	return topRow
}

// RowOf returns the row holding zone zno.
func (l *Layout) RowOf(zno int) int {
	if zno < 0 {
		return 0
	}
	return zno / l.shape.Cols
}
