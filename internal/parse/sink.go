package parse

import (
	"io"

	"github.com/banshee-data/minehint/internal/minefield"
)

// Sink receives each field once it has been finalized.
type Sink interface {
	Emit(f *minefield.Field) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(f *minefield.Field) error

func (fn SinkFunc) Emit(f *minefield.Field) error { return fn(f) }

// TextSink writes field renderings to an io.Writer.
type TextSink struct {
	w io.Writer
}

// NewTextSink returns a sink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) Emit(f *minefield.Field) error {
	_, err := f.WriteTo(s.w)
	return err
}

// MultiSink emits to each sink in order and stops at the first error. Nil
// entries are skipped.
type MultiSink []Sink

func (m MultiSink) Emit(f *minefield.Field) error {
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Emit(f); err != nil {
			return err
		}
	}
	return nil
}
