package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/minehint/internal/config"
	"github.com/banshee-data/minehint/internal/db"
	"github.com/banshee-data/minehint/internal/minefield"
	"github.com/banshee-data/minehint/internal/missing"
	"github.com/banshee-data/minehint/internal/parse"
	"github.com/banshee-data/minehint/internal/report"
	"github.com/banshee-data/minehint/internal/security"
	"github.com/banshee-data/minehint/internal/source"
)

func sweepCommand(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := newFlagSet("sweep", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}

	// Positional form: <input> [columns|rows].
	rest := fs.Args()
	if len(rest) > 2 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(rest[2:], " "))
	}
	if len(rest) > 0 {
		cfg.Source = &rest[0]
	}
	if len(rest) > 1 {
		o, err := minefield.ParseOrientation(rest[1])
		if err != nil {
			return err
		}
		s := o.String()
		cfg.Orientation = &s
	}

	return runSweep(ctx, cfg, stdin, stdout)
}

// runSweep parses one source and fans the fields out to every configured
// sink: the text output, the session store and the report collector.
func runSweep(ctx context.Context, cfg *config.RunConfig, stdin io.Reader, stdout io.Writer) (err error) {
	name := cfg.GetSource()
	o := cfg.GetOrientation()

	in, err := source.Open(ctx, name, source.Options{Serial: cfg.GetSerial(), Stdin: stdin})
	if err != nil {
		return err
	}
	defer in.Close()

	out := stdout
	if path := cfg.GetOutput(); path != "" {
		if err := security.ValidateOutputPath(path); err != nil {
			return err
		}
		f, err := os.Create(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = cerr
			}
		}()
		out = f
	}

	sinks := parse.MultiSink{parse.NewTextSink(out)}

	var collector report.Collector
	if cfg.GetHTMLReport() != "" || cfg.GetPNGDir() != "" {
		sinks = append(sinks, &collector)
	}

	var (
		store     *db.DB
		sessionID string
	)
	if path := cfg.GetDBPath(); path != "" {
		store, err = db.NewDB(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()
		sessionID, err = store.BeginSession(name, o)
		if err != nil {
			return err
		}
		sinks = append(sinks, &db.FieldSink{DB: store, SessionID: sessionID})
	}

	p := parse.NewParser(sinks, parse.Options{Orientation: o, MaxCells: cfg.GetMaxCells()})
	summary, runErr := p.Run(ctx, in)

	if store != nil {
		if err := store.FinishSession(sessionID, summary.Fields, runErr); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	prefix := sessionID
	if prefix == "" {
		prefix = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	if path := cfg.GetHTMLReport(); path != "" {
		if err := report.WriteHTMLFile(path, "minehint "+name, collector.Fields()); err != nil {
			return err
		}
	}
	if dir := cfg.GetPNGDir(); dir != "" {
		if _, err := report.WritePNGDir(dir, prefix, collector.Fields()); err != nil {
			return err
		}
	}
	return nil
}

func missingCommand(args []string, stdout io.Writer) error {
	numbers, err := missing.ParseNumbers(args...)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, missing.FindMissing(numbers))
	return nil
}
