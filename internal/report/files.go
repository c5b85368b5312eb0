package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/minehint/internal/minefield"
	"github.com/banshee-data/minehint/internal/security"
)

// WritePNGDir writes one PNG per field into dir and returns the file paths.
// dir must be under the working directory or the temp directory.
func WritePNGDir(dir, prefix string, fields []*minefield.Field) ([]string, error) {
	if err := security.ValidateOutputPath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create png directory: %w", err)
	}

	paths := make([]string, 0, len(fields))
	for _, f := range fields {
		name := security.SanitizeFilename(fmt.Sprintf("%s_mine_field_%s", prefix, f.ID())) + ".png"
		path := filepath.Join(dir, name)
		if err := writePNGFile(path, f); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNGFile(path string, f *minefield.Field) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return WritePNG(out, f)
}

// WriteHTMLFile writes the HTML report to path after validating it.
func WriteHTMLFile(path, title string, fields []*minefield.Field) (err error) {
	if err := security.ValidateOutputPath(path); err != nil {
		return err
	}
	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return WriteHTML(out, title, fields)
}
