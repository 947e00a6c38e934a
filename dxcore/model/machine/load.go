/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package machine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
)

// Format is the encoding of a key-sheet file.
type Format int

const (
	// FormatYAML is selected by the .yaml and .yml extensions.
	FormatYAML Format = iota
	// FormatJSON is selected by the .json extension.
	FormatJSON
)

// FormatOf picks the key-sheet format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return FormatYAML, &errors.ParseError{Type: "Format", Value: filepath.Ext(path)}
	}
}

// Decode parses and validates a key sheet held in memory.
func Decode(data []byte, f Format) (Configuration, error) {
	var cfg Configuration
	var err error
	switch f {
	case FormatJSON:
		err = model.FromJSON(data, &cfg)
	default:
		err = model.FromYAML(data, &cfg)
	}
	if err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// Encode validates cfg and renders it as a key sheet. The version field is
// always written.
func Encode(cfg Configuration, f Format) ([]byte, error) {
	if cfg.Version.IsZero() {
		cfg.Version = SchemaVersion
	}
	if f == FormatJSON {
		return model.ToJSON(cfg)
	}
	return model.ToYAML(cfg)
}

// LoadFile reads the key sheet at path. The format is chosen by extension.
// An empty document yields Default.
func LoadFile(path string) (Configuration, error) {
	f, err := FormatOf(path)
	if err != nil {
		return Configuration{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("read key sheet: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Default(), nil
	}
	cfg, err := Decode(data, f)
	if err != nil {
		return Configuration{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// SaveFile writes cfg to path, readable by the owner only since a key sheet
// holds the daily key.
func SaveFile(path string, cfg Configuration) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(cfg, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write key sheet: %w", err)
	}
	return nil
}
