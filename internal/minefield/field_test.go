package minefield

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_RenderScenarioB(t *testing.T) {
	f, err := NewField("1", 4, 4, Rows)
	require.NoError(t, err)
	for _, row := range []string{"*...", "....", ".*..", "....", "..*"} {
		require.NoError(t, f.AcceptRow(row))
	}

	want := "Mine Field #1:\n*100\n2210\n1*10\n1110\n\n"
	if diff := cmp.Diff(want, f.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestField_ExtraRowsIgnored(t *testing.T) {
	f, err := NewField("2", 3, 5, Rows)
	require.NoError(t, err)
	for _, row := range []string{"**...", ".....", ".*..."} {
		require.NoError(t, f.AcceptRow(row))
	}
	before := f.grid.Render()
	require.True(t, f.Full())

	// Wrong length as well as surplus: still ignored once full.
	require.NoError(t, f.AcceptRow("...."))
	require.NoError(t, f.AcceptRow("..*"))
	assert.Equal(t, 3, f.RowsAccepted())
	assert.Equal(t, before, f.grid.Render())
	assert.Equal(t, "Mine Field #2:\n**100\n33200\n1*100\n\n", f.Render())
}

func TestField_ClosedRejectsRows(t *testing.T) {
	f, err := NewField("7", 2, 2, Rows)
	require.NoError(t, err)
	f.Finalize()
	f.Finalize()

	err = f.AcceptRow("..")
	var ce *ClosedFieldError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, "7", ce.ID)
	assert.Contains(t, err.Error(), "closed")
	assert.True(t, IsInputError(err))
}

func TestField_RenderFinalizes(t *testing.T) {
	f, err := NewField("1", 1, 1, Rows)
	require.NoError(t, err)
	require.NoError(t, f.AcceptRow("."))
	assert.Equal(t, "Mine Field #1:\n0\n\n", f.Render())
	assert.True(t, f.Closed())
	assert.Error(t, f.AcceptRow("."))
}

func TestField_EmptyPatternTakesSlot(t *testing.T) {
	f, err := NewField("1", 2, 2, Rows)
	require.NoError(t, err)
	require.NoError(t, f.AcceptRow(""))
	require.NoError(t, f.AcceptRow("*."))
	assert.Equal(t, []string{"11", "*1"}, f.Lines())
}

func TestField_LengthMismatch(t *testing.T) {
	f, err := NewField("1", 3, 3, Rows)
	require.NoError(t, err)
	err = f.AcceptRow("**")
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 0, f.RowsAccepted())
}

func TestField_ColumnsOrientation(t *testing.T) {
	f, err := NewField("c", 3, 5, Columns)
	require.NoError(t, err)
	assert.Equal(t, 5, f.Rows())
	assert.Equal(t, 3, f.Cols())
	for _, col := range []string{"**...", ".....", ".*..."} {
		require.NoError(t, f.AcceptRow(col))
	}

	assert.Equal(t, "1", f.Get(0, 2).Render())
	assert.Equal(t, "0", f.Get(4, 2).Render())
	assert.Equal(t, []string{"*31", "*3*", "121", "000", "000"}, f.Lines())
}

// transpose returns the textual transpose of equal-length lines.
func transpose(lines []string) []string {
	out := make([]string, len(lines[0]))
	for c := range out {
		var b strings.Builder
		for _, line := range lines {
			b.WriteByte(line[c])
		}
		out[c] = b.String()
	}
	return out
}

func TestField_ColumnsMatchesTransposedRows(t *testing.T) {
	inputs := [][]string{
		{"*...", "....", ".*..", "...."},
		{"**...", ".....", ".*..."},
		{"*", ".", "*"},
		{".*.*.*"},
	}

	for _, in := range inputs {
		rows, cols := len(in), len(in[0])
		columnar, err := NewField("1", rows, cols, Columns)
		require.NoError(t, err)
		for _, line := range in {
			require.NoError(t, columnar.AcceptRow(line))
		}

		swapped := transpose(in)
		normal, err := NewField("1", cols, rows, Rows)
		require.NoError(t, err)
		for _, line := range swapped {
			require.NoError(t, normal.AcceptRow(line))
		}

		if diff := cmp.Diff(normal.Render(), columnar.Render()); diff != "" {
			t.Errorf("columns rendering of %v differs from rows rendering of transpose (-rows +columns):\n%s", in, diff)
		}
	}
}

func TestField_WriteTo(t *testing.T) {
	f, err := NewField("3", 1, 2, Rows)
	require.NoError(t, err)
	require.NoError(t, f.AcceptRow("*."))

	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "Mine Field #3:\n*1\n\n", buf.String())
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{
		"":           Rows,
		"rows":       Rows,
		"normal":     Rows,
		"columns":    Columns,
		"Transposed": Columns,
	} {
		got, err := ParseOrientation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOrientation("diagonal")
	assert.Error(t, err)
	assert.Equal(t, "columns", Columns.String())
}
