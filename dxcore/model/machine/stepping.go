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
	"encoding/json"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Stepping selects the rule that advances the rotor offsets on each
// keystroke.
//
// Both rules step the right rotor on every letter and carry into the middle
// rotor when the right rotor leaves its notch. They differ in how the middle
// rotor's own notch is handled:
//
//  1. SteppingDeferred (the default) steps the left and middle rotors when the
//     middle rotor sits at its notch, and additionally latches a pending
//     double step that advances the middle rotor once more at the start of
//     the next keystroke.
//
//  2. SteppingPawl models the three pawls of the wartime machine directly:
//     a middle rotor at its notch is pushed together with the left rotor,
//     and nothing is carried over to the next keystroke.
//
// Sequence from window ADU with rotors I-II-III, one letter per step:
//
//	deferred: ADV -> AEW -> BFX -> BGY
//	pawl:     ADV -> AEW -> BFX -> BFY
type Stepping int

const (
	// SteppingDeferred applies, per keystroke and in this order: a latched
	// double step from the previous keystroke; the notch check on the right
	// and middle rotors (middle at notch steps the left rotor and latches a
	// new double step; either notch steps the middle rotor); the right rotor
	// step.
	SteppingDeferred Stepping = iota

	// SteppingPawl is the historical pawl-and-ratchet rule with no state
	// carried between keystrokes.
	SteppingPawl
)

// Compile-time check that Stepping implements model.Model interface.
var _ model.Model = (*Stepping)(nil)

// String constants for Stepping values used in key sheets and CLI flags.
const (
	SteppingDeferredStr = "deferred"
	SteppingPawlStr     = "pawl"
)

// String returns "deferred", "pawl" or "unknown".
func (s Stepping) String() string {
	switch s {
	case SteppingDeferred:
		return SteppingDeferredStr
	case SteppingPawl:
		return SteppingPawlStr
	default:
		return "unknown"
	}
}

// ParseStepping converts a textual representation into a Stepping value.
// Surrounding whitespace is ignored and the match is case-insensitive:
//
//	"deferred", ""       -> SteppingDeferred
//	"pawl", "historical" -> SteppingPawl
func ParseStepping(str string) (Stepping, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case SteppingDeferredStr, "":
		return SteppingDeferred, nil
	case SteppingPawlStr, "historical":
		return SteppingPawl, nil
	default:
		return SteppingDeferred, &errors.ParseError{Type: "Stepping", Value: str}
	}
}

// Valid reports whether s is one of the defined constants.
func (s Stepping) Valid() bool {
	return s == SteppingDeferred || s == SteppingPawl
}

// MarshalJSON encodes s as its canonical string.
func (s Stepping) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Stepping", Value: int(s)}
	}
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts the string forms understood by ParseStepping or the
// numeric constants 0 and 1.
func (s *Stepping) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Stepping", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Stepping", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseStepping(str)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Stepping", Data: data, Reason: err.Error()}
	}
	if !Stepping(i).Valid() {
		return &errors.UnmarshalError{Type: "Stepping", Data: data, Reason: "invalid numeric value"}
	}
	*s = Stepping(i)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Stepping) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Stepping", Value: int(s)}
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stepping) UnmarshalText(text []byte) error {
	parsed, err := ParseStepping(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TypeName returns "Stepping".
func (s Stepping) TypeName() string {
	return "Stepping"
}

// Redacted returns the same string as String.
func (s Stepping) Redacted() string {
	return s.String()
}

// IsZero reports whether s is SteppingDeferred, the default rule.
func (s Stepping) IsZero() bool {
	return s == SteppingDeferred
}

// Validate returns a *errors.ConfigurationError for an undefined rule.
func (s Stepping) Validate() error {
	if !s.Valid() {
		return &errors.ConfigurationError{
			Type:   "Stepping",
			Reason: "must be deferred or pawl",
			Value:  int(s),
		}
	}
	return nil
}

// MarshalYAML encodes s as its canonical string.
func (s Stepping) MarshalYAML() (any, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Stepping", Value: int(s)}
	}
	return s.String(), nil
}

// UnmarshalYAML resolves a scalar through ParseStepping.
func (s *Stepping) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Stepping", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseStepping(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
