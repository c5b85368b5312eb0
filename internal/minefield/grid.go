package minefield

import (
	"fmt"
	"strings"
)

// neighbors lists the row/column offsets of the 8 squares around a cell.
var neighbors = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// Grid is a fixed rows x cols array of cells. Hints are computed once, after
// which the grid is read-only.
type Grid struct {
	rows     int
	cols     int
	cells    [][]Cell
	computed bool
}

// NewGrid allocates an all-safe grid. Both dimensions must be positive.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, Formatf("field dimensions must be positive, got %d x %d", rows, cols)
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// Rows returns the number of physical rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of physical columns.
func (g *Grid) Cols() int { return g.cols }

// SetRow fills physical row r from pattern, one character per column. The
// pattern must be exactly Cols characters long.
func (g *Grid) SetRow(r int, pattern string) error {
	if g.computed {
		return ErrGridComputed
	}
	if r < 0 || r >= g.rows {
		return fmt.Errorf("row %d out of range [0,%d)", r, g.rows)
	}
	chars := []rune(pattern)
	if len(chars) != g.cols {
		return Formatf("column count mismatch: expected %d cells, got %d", g.cols, len(chars))
	}
	for c, ch := range chars {
		g.cells[r][c].set(string(ch) == MineToken)
	}
	return nil
}

// SetColumn fills physical column c from pattern, character k landing in row
// k. It is used when input lines describe columns rather than rows, and the
// pattern must be exactly Rows characters long.
func (g *Grid) SetColumn(c int, pattern string) error {
	if g.computed {
		return ErrGridComputed
	}
	if c < 0 || c >= g.cols {
		return fmt.Errorf("column %d out of range [0,%d)", c, g.cols)
	}
	chars := []rune(pattern)
	if len(chars) != g.rows {
		return Formatf("row count mismatch: expected %d cells in column, got %d", g.rows, len(chars))
	}
	for r, ch := range chars {
		g.cells[r][c].set(string(ch) == MineToken)
	}
	return nil
}

// ComputeAdjacency increments every in-bounds neighbour of every mine. It
// only runs once; later calls are no-ops.
func (g *Grid) ComputeAdjacency() {
	if g.computed {
		return
	}
	g.computed = true
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if !g.cells[r][c].mine {
				continue
			}
			for _, offset := range neighbors {
				if nr, nc := r+offset[0], c+offset[1]; g.inBounds(nr, nc) {
					g.cells[nr][nc].Increment()
				}
			}
		}
	}
}

// Computed reports whether hints have been computed.
func (g *Grid) Computed() bool { return g.computed }

func (g *Grid) inBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// Get returns the cell at (r, c), computing hints first if needed. Indices
// must be in range.
func (g *Grid) Get(r, c int) Cell {
	g.ComputeAdjacency()
	return g.cells[r][c]
}

// MineCount returns the number of mine cells.
func (g *Grid) MineCount() int {
	n := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if cell.mine {
				n++
			}
		}
	}
	return n
}

// Lines renders each physical row as the concatenation of its cells.
func (g *Grid) Lines() []string {
	g.ComputeAdjacency()
	lines := make([]string, g.rows)
	var b strings.Builder
	for r, row := range g.cells {
		b.Reset()
		for _, cell := range row {
			b.WriteString(cell.Render())
		}
		lines[r] = b.String()
	}
	return lines
}

// Render returns the rendered rows, each terminated by a newline.
func (g *Grid) Render() string {
	var b strings.Builder
	for _, line := range g.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
