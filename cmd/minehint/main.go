// Command minehint computes Minesweeper hint grids from text input.
//
//	minehint [flags] [input] [columns]   compute hints (default)
//	minehint missing <n...>              smallest missing positive integer
//	minehint serve [flags]               HTTP API
//	minehint migrate <action> [flags]    manage the session database schema
//	minehint version
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/minehint/internal/config"
	"github.com/banshee-data/minehint/internal/minefield"
	"github.com/banshee-data/minehint/internal/monitoring"
	"github.com/banshee-data/minehint/internal/source"
	"github.com/banshee-data/minehint/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	monitoring.SetLogger(log.New(stderr, "", log.LstdFlags).Printf)

	cmd := "sweep"
	if len(args) > 0 {
		switch args[0] {
		case "sweep", "missing", "serve", "migrate", "version", "help", "-h", "-help", "--help":
			cmd, args = args[0], args[1:]
		}
	}

	var err error
	switch cmd {
	case "sweep":
		err = sweepCommand(ctx, args, stdin, stdout, stderr)
	case "missing":
		err = missingCommand(args, stdout)
	case "serve":
		err = serveCommand(ctx, args, stderr)
	case "migrate":
		err = migrateCommand(args, stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, version.String())
	default:
		printUsage(stdout)
	}

	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  minehint [flags] [input] [columns]   compute hints for each mine field
  minehint missing <n...>              print the smallest missing positive integer
  minehint serve [flags]               serve the HTTP API
  minehint migrate <up|down|status|version N> [flags]
  minehint version

input is "-" for stdin, "serial:<device>", a bundled fixture name or a file
path. Run "minehint sweep -h" for flags.
`)
}

// cliFlags are shared by sweep, serve and migrate. Flags that were set on
// the command line override the config file.
type cliFlags struct {
	configPath string
	columns    bool
	output     string
	dbPath     string
	htmlPath   string
	pngDir     string
	listen     string
	baud       int
	maxCells   int
	verbose    bool
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *cliFlags) {
	f := &cliFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "Path to a JSON run config")
	fs.BoolVar(&f.columns, "columns", false, "Read pattern lines as columns (transposed input)")
	fs.StringVar(&f.output, "o", "", "Write renderings to this file instead of stdout")
	fs.StringVar(&f.dbPath, "db", "", "Record sessions in this sqlite database")
	fs.StringVar(&f.htmlPath, "html", "", "Write an HTML heatmap report to this file")
	fs.StringVar(&f.pngDir, "png-dir", "", "Write one PNG heatmap per field into this directory")
	fs.StringVar(&f.listen, "listen", config.DefaultListen, "HTTP listen address for serve")
	fs.IntVar(&f.baud, "baud", 0, "Baud rate for serial: inputs")
	fs.IntVar(&f.maxCells, "max-cells", config.DefaultMaxCells, "Reject fields with more cells than this (0 disables)")
	fs.BoolVar(&f.verbose, "v", false, "Log each parsed line")
	return fs, f
}

// resolve loads the config file, if any, and applies explicitly set flags.
func (f *cliFlags) resolve(fs *flag.FlagSet) (*config.RunConfig, error) {
	cfg := &config.RunConfig{}
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "columns":
			o := minefield.Rows.String()
			if f.columns {
				o = minefield.Columns.String()
			}
			cfg.Orientation = &o
		case "o":
			cfg.Output = &f.output
		case "db":
			cfg.DBPath = &f.dbPath
		case "html":
			cfg.HTMLReport = &f.htmlPath
		case "png-dir":
			cfg.PNGDir = &f.pngDir
		case "listen":
			cfg.Listen = &f.listen
		case "max-cells":
			cfg.MaxCells = &f.maxCells
		case "v":
			cfg.Verbose = &f.verbose
		case "baud":
			if cfg.Serial == nil {
				cfg.Serial = new(source.PortOptions)
			}
			cfg.Serial.BaudRate = f.baud
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	monitoring.SetVerbose(cfg.GetVerbose())
	return cfg, nil
}
