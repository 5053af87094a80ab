// Package fileformat picks the encoding of input and output files by
// extension and reads them with typed IO errors.
package fileformat

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
)

// Format is a file encoding
type Format string

const (
	KeyValue Format = "kv"
	JSON     Format = "json"
	YAML     Format = "yaml"
	HCL      Format = "hcl"
)

// Detect returns the format implied by the file extension. Anything not
// recognised is read as key/value lines.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	case ".hcl":
		return HCL
	default:
		return KeyValue
	}
}

// Name returns the display name used in error messages
func (f Format) Name() string {
	switch f {
	case JSON:
		return "JSON"
	case YAML:
		return "YAML"
	case HCL:
		return "HCL"
	default:
		return "key/value"
	}
}

// Read reads a whole file, mapping failures to IO errors
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, builderrors.NewFileNotFoundError(path)
		}
		return nil, builderrors.NewFileReadError(path, err)
	}
	return data, nil
}

// Write writes a file, creating its directory
func Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return builderrors.NewFileWriteError(path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return builderrors.NewFileWriteError(path, err)
	}
	return nil
}
