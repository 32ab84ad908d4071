// Package encoder renders template exports as YAML or JSON documents.
package encoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sbilibin2017/prometheus2zabbix/internal/models"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for a format other than yaml or json.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is a document encoding.
type Format string

// ParseFormat parses a format name, case-insensitively. "yml" is accepted
// as yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of documents in format f.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "application/yaml"
}

// Encode writes export to w in format f.
func Encode(w io.Writer, export *models.Export, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(export); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(export); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}
