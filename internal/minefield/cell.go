// Package minefield holds the minefield model: cells, the grid that computes
// adjacency hints, and the field that accepts row patterns from an input
// stream.
package minefield

import (
	"strconv"
	"unicode/utf8"
)

const (
	// MineToken marks a mine in a row pattern and in rendered output.
	MineToken = "*"
	// SafeToken marks a safe cell in a row pattern.
	SafeToken = "."

	// MineValue is the raw value reported for a mine cell.
	MineValue = -1
)

// Cell is a single square of a grid. It is either a mine or a safe square
// carrying the number of adjacent mines.
type Cell struct {
	mine  bool
	count int
}

// SetFromPattern sets the cell from a one-character pattern token. "*" makes
// the cell a mine; any other single character makes it safe with a zero
// count. Empty and multi-character tokens are rejected.
func (c *Cell) SetFromPattern(token string) error {
	if utf8.RuneCountInString(token) != 1 {
		return Formatf("cell token %q must be exactly one character", token)
	}
	c.set(token == MineToken)
	return nil
}

func (c *Cell) set(mine bool) {
	c.mine = mine
	c.count = 0
}

// Increment adds one to the adjacent mine count. Mines are left unchanged.
func (c *Cell) Increment() {
	if !c.mine {
		c.count++
	}
}

// IsMine reports whether the cell holds a mine.
func (c Cell) IsMine() bool { return c.mine }

// Count returns the number of adjacent mines, or MineValue for a mine.
func (c Cell) Count() int {
	if c.mine {
		return MineValue
	}
	return c.count
}

// Render returns "*" for a mine, otherwise the decimal hint.
func (c Cell) Render() string {
	if c.mine {
		return MineToken
	}
	return strconv.Itoa(c.count)
}
