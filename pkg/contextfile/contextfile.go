// Package contextfile decodes render contexts from JSON, YAML or Starlark
// sources, chosen by file extension.
package contextfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/neurodesk/yartl/pkg/starlark"
	"github.com/neurodesk/yartl/pkg/yartl"
	"gopkg.in/yaml.v3"
)

// Format is a context document format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatStarlark Format = "starlark"
)

// Formats lists the accepted formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatStarlark}

// DetectFormat maps a file name to its format.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".star", ".bzl":
		return FormatStarlark, nil
	}
	return "", fmt.Errorf("cannot tell context format of %q: use .json, .yaml, .yml or .star", name)
}

// Load decodes data using the format implied by name.
func Load(name string, data []byte) (yartl.Value, error) {
	f, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	return Decode(f, name, data)
}

// LoadFile reads and decodes a context file.
func LoadFile(path string) (yartl.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context: %w", err)
	}
	return Load(path, data)
}

// Decode decodes data in format f. name is only used in error messages and
// as the Starlark file name.
func Decode(f Format, name string, data []byte) (yartl.Value, error) {
	switch f {
	case FormatJSON:
		return yartl.ParseContext(data)
	case FormatYAML:
		return decodeYAML(name, data)
	case FormatStarlark:
		v, err := starlark.LoadContext(name, data)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", name, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown context format %q", f)
}

func decodeYAML(name string, data []byte) (yartl.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return yartl.NullValue{}, nil
		}
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding %s: expected a single YAML document", name)
	}
	return yartl.FromGo(raw), nil
}
