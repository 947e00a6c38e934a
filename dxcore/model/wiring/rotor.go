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

package wiring

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"gopkg.in/yaml.v3"
)

// RotorID identifies one of the five Enigma I rotors in the catalog.
//
// Each rotor combines a fixed wiring with a single turnover notch. The notch
// letter is the one showing in the window when the rotor is about to carry
// its left-hand neighbour, so the same rotor behaves differently depending
// on the slot it occupies:
//
//	right slot:  every keystroke steps it; leaving the notch steps the middle
//	middle slot: steps when the right rotor carries or when it sits at its
//	             own notch (the double step)
//	left slot:   steps only when the middle rotor carries; its notch is
//	             never consulted
//
// Example, rotor III (notch V) in the right slot:
//
//	window U -> V    nothing carried
//	window V -> W    middle rotor steps
//
// RotorID only knows which five rotors exist. Whether a key sheet may name
// the same rotor in more than one slot is decided by machine.RotorOrder.
//
// The zero value is RotorI, which is a valid rotor.
type RotorID int

const (
	// RotorI is rotor I, turnover at Q.
	RotorI RotorID = iota

	// RotorII is rotor II, turnover at E.
	RotorII

	// RotorIII is rotor III, turnover at V.
	RotorIII

	// RotorIV is rotor IV, turnover at J.
	RotorIV

	// RotorV is rotor V, turnover at Z.
	RotorV
)

// Compile-time check that RotorID implements model.Model interface.
var _ model.Model = (*RotorID)(nil)

// String constants for RotorID values. These are the roman numerals stamped
// on the physical rotors and the stable external representation in key
// sheets and CLI flags.
const (
	RotorIStr   = "I"
	RotorIIStr  = "II"
	RotorIIIStr = "III"
	RotorIVStr  = "IV"
	RotorVStr   = "V"
)

// RotorIDs lists every rotor in catalog order.
var RotorIDs = []RotorID{RotorI, RotorII, RotorIII, RotorIV, RotorV}

// ParseRotorID converts a rotor name into a RotorID.
//
// Roman numerals are accepted in any case ("iii", "III"), as are the arabic
// digits "1".."5" used by older key sheets that number rotors instead.
func ParseRotorID(s string) (RotorID, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case RotorIStr, "1":
		return RotorI, nil
	case RotorIIStr, "2":
		return RotorII, nil
	case RotorIIIStr, "3":
		return RotorIII, nil
	case RotorIVStr, "4":
		return RotorIV, nil
	case RotorVStr, "5":
		return RotorV, nil
	default:
		return RotorI, &errors.ParseError{Type: "RotorID", Value: s}
	}
}

// String returns the roman numeral of the rotor, or "unknown".
func (r RotorID) String() string {
	switch r {
	case RotorI:
		return RotorIStr
	case RotorII:
		return RotorIIStr
	case RotorIII:
		return RotorIIIStr
	case RotorIV:
		return RotorIVStr
	case RotorV:
		return RotorVStr
	default:
		return "unknown"
	}
}

// Valid reports whether r names a catalog rotor.
func (r RotorID) Valid() bool {
	return r >= RotorI && r <= RotorV
}

// TypeName returns "RotorID".
func (r RotorID) TypeName() string {
	return "RotorID"
}

// Redacted returns the same string as String. The rotor order alone is not
// enough to read traffic.
func (r RotorID) Redacted() string {
	return r.String()
}

// IsZero reports whether r is RotorI.
func (r RotorID) IsZero() bool {
	return r == RotorI
}

// Validate returns a *errors.ConfigurationError for an unknown rotor.
func (r RotorID) Validate() error {
	if !r.Valid() {
		return &errors.ConfigurationError{
			Type:   "RotorID",
			Reason: "must be one of I, II, III, IV, V",
			Value:  int(r),
		}
	}
	return nil
}

// MarshalJSON encodes r as its roman numeral.
func (r RotorID) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "RotorID", Value: int(r)}
	}
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON accepts a rotor name string, or a number 1..5 as printed in
// numbered key sheets.
func (r *RotorID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "RotorID", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &errors.UnmarshalError{Type: "RotorID", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseRotorID(s)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return &errors.UnmarshalError{Type: "RotorID", Data: data, Reason: err.Error()}
	}
	if n < 1 || n > len(RotorIDs) {
		return &errors.UnmarshalError{Type: "RotorID", Data: data, Reason: "invalid numeric value"}
	}
	*r = RotorID(n - 1)
	return nil
}

// MarshalYAML encodes r as its roman numeral.
func (r RotorID) MarshalYAML() (any, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "RotorID", Value: int(r)}
	}
	return r.String(), nil
}

// UnmarshalYAML resolves a scalar through ParseRotorID.
func (r *RotorID) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "RotorID", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseRotorID(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r RotorID) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "RotorID", Value: int(r)}
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RotorID) UnmarshalText(text []byte) error {
	parsed, err := ParseRotorID(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RotorWiring is a catalog rotor: its fixed wiring and its turnover notch.
//
// Notch is the window letter at which the rotor, when it steps, carries its
// left-hand neighbour along. Wiring is stated for window position A; a
// caller at offset k MUST shift the incoming letter by +k before the lookup
// and by -k after it:
//
//	out = Wiring.Forward(in + k) - k
//
// Values returned by LookupRotor are shared catalog entries. They are
// immutable and MAY be held by any number of machines at once.
type RotorWiring struct {
	ID     RotorID
	Wiring Permutation
	Notch  alphabet.Letter
}

// NewRotorWiring builds a rotor from its 26-letter wiring and notch letter.
// It fails with *errors.ConfigurationError if the wiring is not a bijection
// or the notch is not a letter.
func NewRotorWiring(id RotorID, wiring string, notch alphabet.Letter) (RotorWiring, error) {
	p, err := ParsePermutation(wiring)
	if err != nil {
		return RotorWiring{}, &errors.ConfigurationError{
			Type:   "Rotor",
			Field:  "Wiring",
			Reason: "rotor " + id.String() + ": " + err.Error(),
		}
	}
	if err := notch.Validate(); err != nil {
		return RotorWiring{}, &errors.ConfigurationError{
			Type:   "Rotor",
			Field:  "Notch",
			Reason: "rotor " + id.String() + " notch must be within A-Z",
			Value:  int(notch),
		}
	}
	return RotorWiring{ID: id, Wiring: p, Notch: notch}, nil
}

// LookupRotor returns the catalog entry for id.
func LookupRotor(id RotorID) (RotorWiring, error) {
	if err := id.Validate(); err != nil {
		return RotorWiring{}, err
	}
	return rotorCatalog[id], nil
}
