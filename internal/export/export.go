// Package export encodes designs to downloadable documents and writes them to a sink.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modgarage/customizer/internal/util"
	"github.com/modgarage/customizer/pkg/core"
	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Encode renders d in the given format and returns the document with its file extension.
// An empty format selects JSON.
func Encode(d core.Design, format string) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("encode json: %w", err)
		}
		return data, FormatJSON, nil
	case FormatYAML, "yml":
		data, err := yaml.Marshal(d)
		if err != nil {
			return nil, "", fmt.Errorf("encode yaml: %w", err)
		}
		return data, FormatYAML, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FileName returns the download name for d, e.g. "Fire_Dragon.json".
func FileName(d core.Design, ext string) string {
	return util.SanitizeFilename(d.Name) + "." + ext
}

// ContentType returns the MIME type for an extension returned by Encode.
func ContentType(ext string) string {
	if ext == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}
