// Package report summarizes computed fields and renders them as charts.
package report

import (
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/minehint/internal/minefield"
)

// MaxHint is the largest count a safe cell can carry.
const MaxHint = 8

// Summary holds per-field statistics. Hint figures cover safe cells only.
type Summary struct {
	FieldID    string  `json:"field_id"`
	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
	Cells      int     `json:"cells"`
	Mines      int     `json:"mines"`
	Safe       int     `json:"safe"`
	Density    float64 `json:"density"`
	HintMean   float64 `json:"hint_mean"`
	HintStdDev float64 `json:"hint_std_dev"`
	HintMax    int     `json:"hint_max"`
	// Histogram[n] is the number of safe cells with hint n.
	Histogram [MaxHint + 1]int `json:"histogram"`
}

// Summarize finalizes f if needed and computes its statistics.
func Summarize(f *minefield.Field) Summary {
	s := Summary{
		FieldID: f.ID(),
		Rows:    f.Rows(),
		Cols:    f.Cols(),
		Cells:   f.Rows() * f.Cols(),
	}

	hints := make([]float64, 0, s.Cells)
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			cell := f.Get(r, c)
			if cell.IsMine() {
				s.Mines++
				continue
			}
			n := cell.Count()
			hints = append(hints, float64(n))
			if n <= MaxHint {
				s.Histogram[n]++
			}
			if n > s.HintMax {
				s.HintMax = n
			}
		}
	}
	s.Safe = len(hints)
	if s.Cells > 0 {
		s.Density = float64(s.Mines) / float64(s.Cells)
	}

	switch len(hints) {
	case 0:
	case 1:
		s.HintMean = hints[0]
	default:
		s.HintMean, s.HintStdDev = stat.MeanStdDev(hints, nil)
	}
	return s
}

// SummarizeAll summarizes each field in order.
func SummarizeAll(fields []*minefield.Field) []Summary {
	out := make([]Summary, 0, len(fields))
	for _, f := range fields {
		out = append(out, Summarize(f))
	}
	return out
}
