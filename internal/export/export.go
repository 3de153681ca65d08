// Package export writes finished drawings to image files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFilename is offered when the user saves without choosing a name.
const DefaultFilename = "kolam-canvas.png"

// ErrUnknownFormat is returned for file names whose extension maps to no
// supported format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an output encoding.
type Format int

const (
	PNG Format = iota
	PDF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case PDF:
		return "pdf"
	}
	return "unknown"
}

// FormatFor picks the format from the extension of name.
func FormatFor(name string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".png":
		return PNG, nil
	case ".pdf":
		return PDF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Source is a drawing that can render itself as an opaque PNG.
type Source interface {
	ExportPNG(w io.Writer) error
	Size() (width, height int)
}

// Write encodes src to w in format f.
func Write(w io.Writer, f Format, src Source) error {
	switch f {
	case PNG:
		return src.ExportPNG(w)
	case PDF:
		return WritePDF(w, src)
	}
	return fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
}

// ToFile writes src to path, choosing the format from its extension.
func ToFile(path string, src Source) (err error) {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return Write(file, f, src)
}
