// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for script files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported script format")

// Format identifies a script file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// File is the on-disk shape of a script.
type File struct {
	Turns []Turn `yaml:"turns" json:"turns" toml:"turns"`
	Chats []Chat `yaml:"chats,omitempty" json:"chats,omitempty" toml:"chats,omitempty"`
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads, decodes and validates a script file.
func LoadFile(path string) (*Script, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes data in the given format and validates it. All text is
// normalised to NFC so the typing animation steps over composed characters.
func Parse(data []byte, format Format) (*Script, error) {
	var f File
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	for i := range f.Turns {
		f.Turns[i].Speaker = norm.NFC.String(strings.TrimSpace(f.Turns[i].Speaker))
		f.Turns[i].Message = norm.NFC.String(f.Turns[i].Message)
		f.Turns[i].Code = norm.NFC.String(f.Turns[i].Code)
	}
	for i := range f.Chats {
		f.Chats[i].Name = norm.NFC.String(f.Chats[i].Name)
	}

	return New(f.Turns, f.Chats)
}

// Encode writes s in the given format.
func Encode(s *Script, format Format) ([]byte, error) {
	f := File{Turns: s.Turns(), Chats: s.Chats()}
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(f, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, fmt.Errorf("failed to encode TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
