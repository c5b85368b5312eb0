package minefield

import (
	"fmt"
	"io"
	"strings"
)

// Orientation selects how row patterns are laid onto a field.
type Orientation int

const (
	// Rows reads each pattern line as one row, left to right.
	Rows Orientation = iota
	// Columns reads each pattern line as one column, top to bottom. The
	// declared dimensions are swapped accordingly.
	Columns
)

func (o Orientation) String() string {
	if o == Columns {
		return "columns"
	}
	return "rows"
}

// ParseOrientation accepts "rows"/"normal" (or "") and "columns"/"transposed".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rows", "normal":
		return Rows, nil
	case "columns", "transposed":
		return Columns, nil
	default:
		return Rows, fmt.Errorf("unknown orientation %q: expected rows or columns", s)
	}
}

// HeaderFormat is the first line of every rendered field.
const HeaderFormat = "Mine Field #%s:"

// Field is one minefield of an input stream: an identifier, its grid and the
// number of pattern lines accepted so far.
type Field struct {
	id           string
	orientation  Orientation
	declaredRows int
	declaredCols int
	accepted     int
	closed       bool
	grid         *Grid
}

// NewField creates an empty field for a "rows cols" header. In Columns
// orientation the physical grid is cols x rows and each of the rows pattern
// lines fills one physical column.
func NewField(id string, rows, cols int, o Orientation) (*Field, error) {
	gridRows, gridCols := rows, cols
	if o == Columns {
		gridRows, gridCols = cols, rows
	}
	g, err := NewGrid(gridRows, gridCols)
	if err != nil {
		return nil, err
	}
	return &Field{
		id:           id,
		orientation:  o,
		declaredRows: rows,
		declaredCols: cols,
		grid:         g,
	}, nil
}

// ID returns the field identifier.
func (f *Field) ID() string { return f.id }

// Orientation returns the population mode chosen at creation.
func (f *Field) Orientation() Orientation { return f.orientation }

// Declared returns the dimensions as written in the header.
func (f *Field) Declared() (rows, cols int) { return f.declaredRows, f.declaredCols }

// Rows returns the number of rendered rows.
func (f *Field) Rows() int { return f.grid.Rows() }

// Cols returns the number of rendered columns.
func (f *Field) Cols() int { return f.grid.Cols() }

// RowsAccepted returns how many pattern lines have been consumed.
func (f *Field) RowsAccepted() int { return f.accepted }

// Full reports whether every declared pattern line has been accepted.
func (f *Field) Full() bool { return f.accepted >= f.declaredRows }

// Closed reports whether the field has been finalized.
func (f *Field) Closed() bool { return f.closed }

// AcceptRow consumes the next pattern line. Lines beyond the declared count
// are ignored. An empty line takes a slot but leaves its cells safe.
func (f *Field) AcceptRow(pattern string) error {
	if f.closed {
		return &ClosedFieldError{ID: f.id}
	}
	if f.Full() {
		return nil
	}
	if pattern != "" {
		var err error
		if f.orientation == Columns {
			err = f.grid.SetColumn(f.accepted, pattern)
		} else {
			err = f.grid.SetRow(f.accepted, pattern)
		}
		if err != nil {
			return err
		}
	}
	f.accepted++
	return nil
}

// Finalize closes the field to further rows and computes its hints. It is
// safe to call more than once.
func (f *Field) Finalize() {
	if f.closed {
		return
	}
	f.closed = true
	f.grid.ComputeAdjacency()
}

// Get returns the cell at rendered position (r, c), finalizing first.
func (f *Field) Get(r, c int) Cell {
	f.Finalize()
	return f.grid.Get(r, c)
}

// MineCount returns the number of mines in the field.
func (f *Field) MineCount() int { return f.grid.MineCount() }

// Lines returns the rendered grid rows, finalizing first.
func (f *Field) Lines() []string {
	f.Finalize()
	return f.grid.Lines()
}

// Render returns the header, the grid rows and a trailing blank line.
func (f *Field) Render() string {
	f.Finalize()
	var b strings.Builder
	fmt.Fprintf(&b, HeaderFormat, f.id)
	b.WriteByte('\n')
	b.WriteString(f.grid.Render())
	b.WriteByte('\n')
	return b.String()
}

// WriteTo writes the rendering to w.
func (f *Field) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.Render())
	return int64(n), err
}
