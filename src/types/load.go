package types

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the payload encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// DecodeBundle reads a statistics bundle.
func DecodeBundle(r io.Reader, f Format) (*Bundle, error) {
	var b Bundle
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&b); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml bundle: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&b); err != nil {
			return nil, fmt.Errorf("decode json bundle: %w", err)
		}
	}
	return &b, nil
}

// EncodeBundle writes a statistics bundle.
func EncodeBundle(w io.Writer, b *Bundle, f Format) error {
	if f == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode yaml bundle: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode json bundle: %w", err)
	}
	return nil
}

// LoadBundle reads a bundle file, choosing the decoder from its extension.
func LoadBundle(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeBundle(f, FormatForPath(path))
}

// SaveBundle writes a bundle file, choosing the encoder from its extension.
func SaveBundle(path string, b *Bundle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeBundle(f, b, FormatForPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
