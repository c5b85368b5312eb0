package parse

import (
	"regexp"
	"strconv"

	"github.com/banshee-data/minehint/internal/minefield"
)

const (
	LineTypeDimension = "dimension"
	LineTypeSentinel  = "sentinel"
	LineTypePattern   = "pattern"
	LineTypeInvalid   = "invalid"
)

// InvalidCharactersMsg is the FormatError message for lines that are neither
// headers nor patterns.
const InvalidCharactersMsg = "invalid characters; only * and . permitted"

var (
	dimensionLine = regexp.MustCompile(`^(\d+)\s+(\d+)$`)
	patternLine   = regexp.MustCompile(`^[*.]*$`)
)

// ClassifyLine returns the line type token for an already trimmed line.
// Header shapes take priority over patterns, so "0 0" is always the sentinel.
func ClassifyLine(line string) string {
	if m := dimensionLine.FindStringSubmatch(line); m != nil {
		if isZero(m[1]) && isZero(m[2]) {
			return LineTypeSentinel
		}
		return LineTypeDimension
	}
	if patternLine.MatchString(line) {
		return LineTypePattern
	}
	return LineTypeInvalid
}

func isZero(digits string) bool {
	for _, d := range digits {
		if d != '0' {
			return false
		}
	}
	return true
}

// ParseDimensions extracts the two integers of a header line.
func ParseDimensions(line string) (rows, cols int, err error) {
	m := dimensionLine.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, minefield.Formatf("%q is not a dimension line", line)
	}
	if rows, err = strconv.Atoi(m[1]); err != nil {
		return 0, 0, minefield.Formatf("row count %q: %v", m[1], err)
	}
	if cols, err = strconv.Atoi(m[2]); err != nil {
		return 0, 0, minefield.Formatf("column count %q: %v", m[2], err)
	}
	return rows, cols, nil
}
