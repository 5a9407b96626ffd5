// Package grid maps zone numbers onto a fixed two-dimensional grid of cells.
//
// The shape is computed once from the zone count and the requested
// dimensions, then the cells are built once after the first full zone
// listing. Refreshes change zone contents, never the mapping.
package grid

import "math"

// Defaults holds the tunable constants used when a dimension is not requested.
type Defaults struct {
	// SmallThreshold is the zone count below which an unconstrained grid is
	// laid out near-square.
	SmallThreshold int
	Columns        int
	Rows           int
}

// DefaultDefaults returns the stock grid defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		SmallThreshold: 100,
		Columns:        10,
		Rows:           10,
	}
}

// Shape is the computed grid geometry.
type Shape struct {
	Cols int
	// Rows is the total number of rows needed to hold every zone.
	Rows int
	// VisibleRows is the height of the scroll window.
	VisibleRows int
}

// Cells returns the total number of cells.
func (s Shape) Cells() int {
	return s.Cols * s.Rows
}

// Compute derives the grid shape for n zones. reqCols and reqRows of 0 mean
// unset. Cols and Rows are always at least 1, and Cols*Rows >= n.
func Compute(n, reqCols, reqRows int, d Defaults) Shape {
	if n < 0 {
		n = 0
	}
	if reqCols < 0 {
		reqCols = 0
	}
	if reqRows < 0 {
		reqRows = 0
	}
	d = d.withFallbacks()

	var cols, visible int
	if reqCols == 0 && reqRows == 0 && n < d.SmallThreshold {
		cols = int(math.Sqrt(float64(n)))
		if cols < 1 {
			cols = 1
		}
		visible = ceilDiv(n, cols)
	} else {
		cols = reqCols
		if cols == 0 {
			cols = d.Columns
		}
		visible = reqRows
		if visible == 0 {
			visible = d.Rows
		}
	}

	rows := ceilDiv(n, cols)
	if rows < 1 {
		rows = 1
	}
	if visible < 1 {
		visible = 1
	}
	if visible > rows {
		visible = rows
	}

	return Shape{Cols: cols, Rows: rows, VisibleRows: visible}
}

func (d Defaults) withFallbacks() Defaults {
	stock := DefaultDefaults()
	if d.SmallThreshold <= 0 {
		d.SmallThreshold = stock.SmallThreshold
	}
	if d.Columns <= 0 {
		d.Columns = stock.Columns
	}
	if d.Rows <= 0 {
		d.Rows = stock.Rows
	}
	return d
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
