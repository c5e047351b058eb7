package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg/draw"

	"github.com/inodb/ideocoverage/internal/genome"
)

// formats maps a lower-case file extension to the vg format name.
var formats = map[string]string{
	"svg":  "svg",
	"pdf":  "pdf",
	"eps":  "eps",
	"png":  "png",
	"jpg":  "jpg",
	"jpeg": "jpg",
	"tif":  "tiff",
	"tiff": "tiff",
}

// Format returns the image format implied by the extension of path.
func Format(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if f, ok := formats[ext]; ok {
		return f, nil
	}
	if ext == "" {
		return "", fmt.Errorf("output %s has no file extension (use .svg, .pdf, .eps, .png, .jpg or .tiff)", path)
	}
	return "", fmt.Errorf("unsupported output format %q for %s (use .svg, .pdf, .eps, .png, .jpg or .tiff)", ext, path)
}

// Save draws the figure and writes it to path. The image is written to a
// temporary file in the same directory and renamed over path, so a failed
// write leaves no output behind.
func Save(fig *Figure, path string) error {
	format, err := Format(path)
	if err != nil {
		return err
	}

	cv, err := draw.NewFormattedCanvas(fig.Width, fig.Height, format)
	if err != nil {
		return fmt.Errorf("create %s canvas: %w", format, err)
	}
	fig.Draw(draw.New(cv))

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &genome.IOError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := cv.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &genome.IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &genome.IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return &genome.IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &genome.IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
