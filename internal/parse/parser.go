// Package parse splits a text stream of minefield definitions into fields.
//
// Each field starts with a "rows cols" header followed by pattern lines over
// the alphabet {*, .}. A "0 0" header ends the stream. A field is finalized
// and handed to the Sink when the next header, the end marker or the end of
// input is reached.
package parse

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/minehint/internal/minefield"
	"github.com/banshee-data/minehint/internal/monitoring"
)

// ErrNoActiveField is wrapped by the FormatError returned for pattern data
// that arrives before any header.
var ErrNoActiveField = errors.New("pattern line without a preceding dimension line")

// ErrSessionEnded is returned when lines are offered after the end marker.
var ErrSessionEnded = errors.New("input already terminated by 0 0")

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Options configures a parsing session.
type Options struct {
	// Orientation applies to every field of the session.
	Orientation minefield.Orientation
	// MaxCells rejects headers describing more cells than this. Zero
	// disables the check.
	MaxCells int
}

// Summary describes a finished session.
type Summary struct {
	Fields       int  `json:"fields"`
	Lines        int  `json:"lines"`
	SentinelSeen bool `json:"sentinel_seen"`
}

// Parser is the per-stream state machine. It is not safe for concurrent use.
type Parser struct {
	opts    Options
	sink    Sink
	current *minefield.Field
	nextID  int
	line    int
	emitted int
	ended   bool
}

// NewParser returns a parser that emits finished fields to sink.
func NewParser(sink Sink, opts Options) *Parser {
	return &Parser{opts: opts, sink: sink, nextID: 1}
}

// Ended reports whether the "0 0" end marker has been consumed.
func (p *Parser) Ended() bool { return p.ended }

// Current returns the field being populated, or nil.
func (p *Parser) Current() *minefield.Field { return p.current }

// Consume processes one raw input line.
func (p *Parser) Consume(raw string) error {
	if p.ended {
		return ErrSessionEnded
	}
	p.line++
	// Surrounding whitespace is dropped, so " *. " counts as the pattern "*.".
	line := strings.TrimSpace(raw)

	kind := ClassifyLine(line)
	monitoring.Debugf("line %d: %s %q", p.line, kind, line)

	switch kind {
	case LineTypeSentinel:
		if err := p.flush(); err != nil {
			return err
		}
		p.ended = true
		return nil

	case LineTypeDimension:
		if err := p.flush(); err != nil {
			return err
		}
		rows, cols, err := ParseDimensions(line)
		if err != nil {
			return p.atLine(err)
		}
		if p.opts.MaxCells > 0 && cols > 0 && rows > p.opts.MaxCells/cols {
			return p.atLine(minefield.Formatf("field of %d x %d exceeds the limit of %d cells", rows, cols, p.opts.MaxCells))
		}
		f, err := minefield.NewField(strconv.Itoa(p.nextID), rows, cols, p.opts.Orientation)
		if err != nil {
			return p.atLine(err)
		}
		p.nextID++
		p.current = f
		return nil

	case LineTypePattern:
		if p.current == nil {
			return p.atLine(&minefield.FormatError{Err: ErrNoActiveField})
		}
		return p.atLine(p.current.AcceptRow(line))

	default:
		return p.atLine(&minefield.FormatError{Msg: InvalidCharactersMsg})
	}
}

// Close finalizes and emits the field in progress, if any. Call it when the
// input is exhausted without an end marker.
func (p *Parser) Close() error {
	return p.flush()
}

// Run consumes r line by line until the end marker, the end of input, an
// error, or cancellation of ctx.
func (p *Parser) Run(ctx context.Context, r io.Reader) (Summary, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for !p.ended && scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return p.summary(), err
		}
		if err := p.Consume(scanner.Text()); err != nil {
			return p.summary(), err
		}
	}
	if err := scanner.Err(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return p.summary(), ctxErr
		}
		return p.summary(), fmt.Errorf("reading input after line %d: %w", p.line, err)
	}
	if err := p.Close(); err != nil {
		return p.summary(), err
	}
	return p.summary(), nil
}

func (p *Parser) summary() Summary {
	return Summary{Fields: p.emitted, Lines: p.line, SentinelSeen: p.ended}
}

func (p *Parser) flush() error {
	f := p.current
	if f == nil {
		return nil
	}
	p.current = nil
	f.Finalize()
	if p.sink != nil {
		if err := p.sink.Emit(f); err != nil {
			return fmt.Errorf("emitting mine field #%s: %w", f.ID(), err)
		}
	}
	p.emitted++
	monitoring.Debugf("emitted mine field #%s (%dx%d, %d mines)", f.ID(), f.Rows(), f.Cols(), f.MineCount())
	return nil
}

// atLine stamps the current line number on format errors.
func (p *Parser) atLine(err error) error {
	var fe *minefield.FormatError
	if errors.As(err, &fe) && fe.Line == 0 {
		fe.Line = p.line
	}
	return err
}
