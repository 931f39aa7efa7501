package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/fade/internal/atomicfile"
)

// ErrNotMapping is returned when the top level or a record is not a mapping.
var ErrNotMapping = errors.New("expected a mapping")

// Format identifies a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	jsonMarker     = ".json"
	modifiedSuffix = "_modified"
)

// FormatForPath picks the encoding from the file extension. Anything that is
// not YAML is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the dataset at path.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	c, err := Decode(FormatForPath(path), data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return c, nil
}

// Decode parses data in the given format.
func Decode(format Format, data []byte) (*Collection, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

// Encode writes c to w in the given format.
func Encode(w io.Writer, format Format, c *Collection) error {
	if format == FormatYAML {
		return encodeYAML(w, c)
	}
	return encodeJSON(w, c)
}

// Save writes c to path atomically, encoded by the path's extension.
func Save(path string, c *Collection) error {
	format := FormatForPath(path)
	err := atomicfile.Write(path, 0o644, func(w io.Writer) error {
		return Encode(w, format, c)
	})
	if err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	return nil
}

// OutputPath derives where an annotated copy of input is written: the first
// ".json" becomes "_modified.json". Paths without ".json" get "_modified"
// before their extension, so the source is never overwritten.
func OutputPath(input string) string {
	if strings.Contains(input, jsonMarker) {
		return strings.Replace(input, jsonMarker, modifiedSuffix+jsonMarker, 1)
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + modifiedSuffix + ext
}
