// Package source resolves input names to readable minefield streams.
//
// A name is one of "-" for standard input, "serial:<device>" for a serial
// line, the name of a bundled fixture, or a filesystem path. Bundled
// fixtures win over files of the same name.
package source

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.bug.st/serial"

	"github.com/banshee-data/minehint/internal/monitoring"
)

// Stdin is the name that selects standard input.
const Stdin = "-"

// SerialPrefix introduces a serial device name.
const SerialPrefix = "serial:"

//go:embed fixtures/*.txt
var fixtures embed.FS

// ErrNotFound is wrapped by SourceError when no fixture or file matches.
var ErrNotFound = errors.New("no such fixture or file")

// SourceError reports a source that could not be opened or read.
type SourceError struct {
	Name string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q: %v", e.Name, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Options configures Open.
type Options struct {
	Serial PortOptions
	// Stdin replaces os.Stdin for the "-" source.
	Stdin io.Reader
}

// openSerialPort is replaced in tests.
var openSerialPort = func(device string, mode *serial.Mode) (io.ReadCloser, error) {
	return serial.Open(device, mode)
}

// Open returns a reader for name. The caller must close it. For serial
// sources the port is closed when ctx is done, which unblocks a pending read.
func Open(ctx context.Context, name string, opts Options) (io.ReadCloser, error) {
	switch {
	case name == "":
		return nil, &SourceError{Name: name, Err: errors.New("empty source name")}

	case name == Stdin:
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		return &reader{name: name, r: in}, nil

	case strings.HasPrefix(name, SerialPrefix):
		return openSerial(ctx, name, opts.Serial)
	}

	if f, err := openFixture(name); err == nil {
		monitoring.Debugf("source %q: bundled fixture", name)
		return &reader{name: name, r: f, closer: f}, nil
	}

	f, err := os.Open(filepath.Clean(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNotFound
		}
		return nil, &SourceError{Name: name, Err: err}
	}
	return &reader{name: name, r: f, closer: f}, nil
}

func openFixture(name string) (fs.File, error) {
	for _, candidate := range []string{name, strings.TrimPrefix(name, "/")} {
		if !fs.ValidPath(candidate) {
			continue
		}
		if f, err := fixtures.Open("fixtures/" + candidate); err == nil {
			return f, nil
		}
	}
	return nil, fs.ErrNotExist
}

// Fixtures lists the bundled fixture names.
func Fixtures() []string {
	entries, err := fixtures.ReadDir("fixtures")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func openSerial(ctx context.Context, name string, po PortOptions) (io.ReadCloser, error) {
	device := strings.TrimPrefix(name, SerialPrefix)
	if device == "" {
		return nil, &SourceError{Name: name, Err: errors.New("missing serial device")}
	}
	mode, err := po.SerialMode()
	if err != nil {
		return nil, &SourceError{Name: name, Err: err}
	}
	port, err := openSerialPort(device, mode)
	if err != nil {
		return nil, &SourceError{Name: name, Err: fmt.Errorf("failed to open serial port: %w", err)}
	}
	monitoring.Logf("opened serial port %s at %d baud", device, mode.BaudRate)

	r := &reader{name: name, r: port, closer: port}
	if ctx != nil && ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() { _ = r.Close() })
		r.stop = stop
	}
	return r, nil
}

// reader wraps read failures in SourceError.
type reader struct {
	name   string
	r      io.Reader
	closer io.Closer
	stop   func() bool

	once     sync.Once
	closeErr error
}

func (r *reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && err != io.EOF {
		return n, &SourceError{Name: r.name, Err: err}
	}
	return n, err
}

func (r *reader) Close() error {
	r.once.Do(func() {
		if r.stop != nil {
			r.stop()
		}
		if r.closer != nil {
			r.closeErr = r.closer.Close()
		}
	})
	return r.closeErr
}
