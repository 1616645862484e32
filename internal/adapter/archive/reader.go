// Package archive reads the on-disk AMAT open-data files: one GeoJSON
// station metadata file plus up to ten yearly measurement files. It only
// probes the filesystem and hands raw bytes to the domain parsers, so the
// merge and normalization logic stays testable without touching disk.
package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/milan-air-quality/internal/domain"
)

// Reader locates source files under a base directory.
type Reader struct {
	dir          string
	stationsFile string
	logger       *slog.Logger
}

// NewReader creates a Reader rooted at dir. stationsFile is the GeoJSON
// file name, relative to dir.
func NewReader(dir, stationsFile string, logger *slog.Logger) *Reader {
	return &Reader{dir: dir, stationsFile: stationsFile, logger: logger}
}

// Stations reads the station metadata file. The file is required: absence
// is a *domain.SourceNotFoundError, which aborts the load.
func (r *Reader) Stations() (string, []byte, error) {
	path := filepath.Join(r.dir, r.stationsFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, &domain.SourceNotFoundError{Path: path}
	}
	if err != nil {
		return "", nil, fmt.Errorf("read stations file: %w", err)
	}
	return r.stationsFile, data, nil
}

// Year reads the measurement archive for one year. An absent file is not
// an error: ok is false and the caller skips the year.
func (r *Reader) Year(year int) (string, []byte, bool, error) {
	name := YearFileName(year)
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, fmt.Errorf("read year file %s: %w", name, err)
	}
	r.logger.Debug("read year archive", "file", name, "bytes", len(data))
	return name, data, true, nil
}

// YearFileName returns the archive file name for a year, e.g.
// "2020_stazioni.json".
func YearFileName(year int) string {
	return fmt.Sprintf("%d_stazioni.json", year)
}
