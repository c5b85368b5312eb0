// Package missing finds the smallest positive integer absent from a list.
package missing

import (
	"fmt"
	"strconv"
	"strings"
)

// NotFound is returned by FindMissing when no value in 1..max is absent.
const NotFound = -1

// FindMissing returns the smallest value in 1..max(values) that does not
// appear in values. Non-positive values are ignored. It returns NotFound for
// empty input or when the range is complete.
func FindMissing(values []int) int {
	n := len(values)
	largest := 0
	// Only 1..n+1 can be absent, so larger values need no slot.
	seen := make([]bool, n+1)
	for _, v := range values {
		if v > largest {
			largest = v
		}
		if v > 0 && v <= n {
			seen[v] = true
		}
	}
	if largest == 0 {
		return NotFound
	}

	limit := min(largest, n)
	for i := 1; i <= limit; i++ {
		if !seen[i] {
			return i
		}
	}
	if largest > n {
		return n + 1
	}
	return NotFound
}

// ParseNumbers reads integers from args. Each argument may itself hold a
// comma or whitespace separated list, so "1,2 3" and "1" "2" "3" agree.
func ParseNumbers(args ...string) ([]int, error) {
	var out []int
	for _, arg := range args {
		fields := strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q: %w", f, err)
			}
			out = append(out, n)
		}
	}
	return out, nil
}
