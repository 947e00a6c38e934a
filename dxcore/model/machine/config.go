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

// Package machine defines the key sheet of an Enigma I: everything an
// operator sets before typing the first letter.
//
// A Configuration names the three rotors and their order, the reflector,
// the starting window letters, the plugboard cables and the stepping rule.
// It is created once, validated once, and then consumed read-only by
// dxcore/enigma, which copies the starting positions into its own mutable
// rotor state. Configurations round-trip through YAML and JSON key sheets:
//
//	version: 1.0.0
//	rotors: [I, II, III]
//	reflector: B
//	positions: AAA
//	plugboard: ML SU KJ NH YT GB VF RE DC
//	stepping: deferred
//
// Validation collects every violation at once so that an operator fixing a
// key sheet sees all of its problems in one run.
package machine

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/plugboard"
	"dirpx.dev/dxenigma/dxcore/model/semver"
	"dirpx.dev/dxenigma/dxcore/model/wiring"
	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the key-sheet format this package reads and writes.
var SchemaVersion = semver.Version{Major: 1}

// Configuration is a complete machine setting.
//
// The zero value is a valid configuration (rotors I-I-I, reflector A, AAA,
// no cables), but it is rarely what anyone wants; start from Default.
type Configuration struct {
	// Version is the key-sheet format version. Zero means SchemaVersion.
	Version semver.Version `json:"version,omitzero" yaml:"version,omitempty"`

	// Rotors is the rotor order, left to right.
	Rotors RotorOrder `json:"rotors" yaml:"rotors"`

	// Reflector is the reflector (UKW) in use.
	Reflector wiring.ReflectorID `json:"reflector" yaml:"reflector"`

	// Positions are the starting window letters, left to right.
	Positions Positions `json:"positions" yaml:"positions"`

	// Plugboard holds the plugboard cables.
	Plugboard plugboard.Plugboard `json:"plugboard,omitzero" yaml:"plugboard,omitempty"`

	// Stepping selects the stepping rule.
	Stepping Stepping `json:"stepping,omitzero" yaml:"stepping,omitempty"`
}

// Compile-time check that Configuration implements model.Model interface.
var _ model.Model = (*Configuration)(nil)

// Default returns the textbook setting: rotors I-II-III, reflector B,
// positions AAA, no plugboard cables, deferred stepping.
func Default() Configuration {
	return model.MustValidate(Configuration{
		Rotors:    RotorOrder{wiring.RotorI, wiring.RotorII, wiring.RotorIII},
		Reflector: wiring.ReflectorB,
	})
}

// Validate checks every field and reports all violations together.
//
// Each violation is a *errors.ConfigurationError (or wraps one); the
// aggregate is produced by an rxmerr collector.
func (c Configuration) Validate() error {
	col := rxmerr.NewCollector()

	if !c.Version.IsZero() {
		if err := c.Version.Validate(); err != nil {
			col.Append(err)
		} else if !c.Version.Compatible(SchemaVersion) {
			col.Append(&errors.ConfigurationError{
				Type:   "Configuration",
				Field:  "Version",
				Reason: "unsupported key-sheet version, this build reads " + SchemaVersion.String(),
				Value:  c.Version.String(),
			})
		}
	}
	if err := c.Rotors.Validate(); err != nil {
		col.Append(fmt.Errorf("rotors: %w", err))
	}
	if err := c.Reflector.Validate(); err != nil {
		col.Append(err)
	}
	if err := c.Positions.Validate(); err != nil {
		col.Append(err)
	}
	if err := c.Plugboard.Validate(); err != nil {
		col.Append(err)
	}
	if err := c.Stepping.Validate(); err != nil {
		col.Append(err)
	}

	return col.Err()
}

// TypeName returns "Configuration".
func (c Configuration) TypeName() string {
	return "Configuration"
}

// IsZero reports whether every field holds its zero value.
func (c Configuration) IsZero() bool {
	return c.Version.IsZero() &&
		c.Rotors.IsZero() &&
		c.Reflector.IsZero() &&
		c.Positions.IsZero() &&
		c.Plugboard.IsZero() &&
		c.Stepping.IsZero()
}

// String returns the full setting, including the daily key. Do not log it.
func (c Configuration) String() string {
	return fmt.Sprintf("Configuration{rotors:%s, reflector:%s, positions:%s, plugboard:%q, stepping:%s}",
		c.Rotors, c.Reflector, c.Positions, c.Plugboard.String(), c.Stepping)
}

// Redacted returns the setting with the start positions and plugboard
// cables hidden.
func (c Configuration) Redacted() string {
	return fmt.Sprintf("Configuration{rotors:%s, reflector:%s, positions:%s, plugboard:%s, stepping:%s}",
		c.Rotors.Redacted(), c.Reflector.Redacted(), c.Positions.Redacted(), c.Plugboard.Redacted(), c.Stepping.Redacted())
}

// MarshalJSON validates c and encodes it.
func (c Configuration) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type alias Configuration
	return json.Marshal((alias)(c))
}

// UnmarshalJSON decodes a key sheet. Fields absent from the document keep
// the values of Default; the result is validated.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	type alias Configuration
	decoded := alias(Default())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return &errors.UnmarshalError{Type: "Configuration", Data: data, Reason: err.Error(), Err: err}
	}
	if err := Configuration(decoded).Validate(); err != nil {
		return fmt.Errorf("unmarshaled Configuration is invalid: %w", err)
	}
	*c = Configuration(decoded)
	return nil
}

// MarshalYAML validates c and encodes it.
func (c Configuration) MarshalYAML() (any, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type alias Configuration
	return (alias)(c), nil
}

// UnmarshalYAML decodes a key sheet. Fields absent from the document keep
// the values of Default; the result is validated.
func (c *Configuration) UnmarshalYAML(node *yaml.Node) error {
	type alias Configuration
	decoded := alias(Default())
	if err := node.Decode(&decoded); err != nil {
		return &errors.UnmarshalError{Type: "Configuration", Reason: err.Error(), Err: err}
	}
	if err := Configuration(decoded).Validate(); err != nil {
		return fmt.Errorf("unmarshaled Configuration is invalid: %w", err)
	}
	*c = Configuration(decoded)
	return nil
}
