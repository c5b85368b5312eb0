package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/minehint/internal/minefield"
	"github.com/banshee-data/minehint/internal/source"
)

// Defaults applied by the Get* methods when a field is unset.
const (
	DefaultSource   = "minesweeper-input.txt"
	DefaultDBPath   = "minehint.db"
	DefaultListen   = "localhost:8090"
	DefaultMaxCells = 1_000_000
)

// RunConfig holds the settings for a minehint run. Every field is optional;
// command-line flags override whatever the file sets.
type RunConfig struct {
	// Source is the input name: a bundled fixture, a path, "-" or "serial:<dev>".
	Source      *string `json:"source,omitempty"`
	Orientation *string `json:"orientation,omitempty"` // "rows" or "columns"
	// Output is where renderings are written. Empty means stdout.
	Output *string `json:"output,omitempty"`

	// DBPath enables session recording when set.
	DBPath *string `json:"db_path,omitempty"`

	HTMLReport *string `json:"html_report,omitempty"`
	PNGDir     *string `json:"png_report,omitempty"`

	Listen   *string `json:"listen,omitempty"`
	MaxCells *int    `json:"max_cells,omitempty"`
	Verbose  *bool   `json:"verbose,omitempty"`

	Serial *source.PortOptions `json:"serial,omitempty"`
}

func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }
func ptrBool(v bool) *bool       { return &v }

// DefaultConfig returns a RunConfig with every field populated.
func DefaultConfig() *RunConfig {
	return &RunConfig{
		Source:      ptrString(DefaultSource),
		Orientation: ptrString(minefield.Rows.String()),
		Output:      ptrString(""),
		DBPath:      ptrString(""),
		HTMLReport:  ptrString(""),
		PNGDir:      ptrString(""),
		Listen:      ptrString(DefaultListen),
		MaxCells:    ptrInt(DefaultMaxCells),
		Verbose:     ptrBool(false),
		Serial:      &source.PortOptions{},
	}
}

// LoadConfig loads a RunConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted from
// the file stay nil and fall back to the Get* defaults.
func LoadConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RunConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RunConfig) Validate() error {
	if c.Orientation != nil {
		if _, err := minefield.ParseOrientation(*c.Orientation); err != nil {
			return err
		}
	}
	if c.MaxCells != nil && *c.MaxCells < 0 {
		return fmt.Errorf("max_cells must be non-negative, got %d", *c.MaxCells)
	}
	if c.Source != nil && strings.TrimSpace(*c.Source) == "" {
		return fmt.Errorf("source must not be empty")
	}
	if c.Serial != nil {
		if _, err := c.Serial.Normalize(); err != nil {
			return fmt.Errorf("serial: %w", err)
		}
	}
	return nil
}

// GetSource returns the input name or the bundled default fixture.
func (c *RunConfig) GetSource() string {
	if c.Source == nil || *c.Source == "" {
		return DefaultSource
	}
	return *c.Source
}

// GetOrientation returns the parsed orientation. Invalid values fall back to
// row order; Validate reports them.
func (c *RunConfig) GetOrientation() minefield.Orientation {
	if c.Orientation == nil {
		return minefield.Rows
	}
	o, err := minefield.ParseOrientation(*c.Orientation)
	if err != nil {
		return minefield.Rows
	}
	return o
}

func (c *RunConfig) GetOutput() string {
	if c.Output == nil {
		return ""
	}
	return *c.Output
}

func (c *RunConfig) GetDBPath() string {
	if c.DBPath == nil {
		return ""
	}
	return *c.DBPath
}

func (c *RunConfig) GetHTMLReport() string {
	if c.HTMLReport == nil {
		return ""
	}
	return *c.HTMLReport
}

func (c *RunConfig) GetPNGDir() string {
	if c.PNGDir == nil {
		return ""
	}
	return *c.PNGDir
}

func (c *RunConfig) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return DefaultListen
	}
	return *c.Listen
}

// GetMaxCells returns the per-field cell limit. Zero disables the limit.
func (c *RunConfig) GetMaxCells() int {
	if c.MaxCells == nil {
		return DefaultMaxCells
	}
	return *c.MaxCells
}

func (c *RunConfig) GetVerbose() bool {
	if c.Verbose == nil {
		return false
	}
	return *c.Verbose
}

// GetSerial returns the serial options, normalized where possible.
func (c *RunConfig) GetSerial() source.PortOptions {
	if c.Serial == nil {
		opts, _ := source.PortOptions{}.Normalize()
		return opts
	}
	opts, err := c.Serial.Normalize()
	if err != nil {
		return *c.Serial
	}
	return opts
}
