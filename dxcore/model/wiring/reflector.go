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
	"gopkg.in/yaml.v3"
)

// ReflectorID identifies one of the three Enigma I reflectors (UKW).
//
// A was in use before the war; B and C during it, B being by far the most
// common. Key sheets and flags SHOULD use the bare letter; the "UKW-" prefix
// seen on some surviving sheets is accepted on input and dropped on output:
//
//	"B", "b", "UKW-B", "ukw-b" -> ReflectorB
//
// The zero value is ReflectorA.
type ReflectorID int

const (
	ReflectorA ReflectorID = iota
	ReflectorB
	ReflectorC
)

// Compile-time check that ReflectorID implements model.Model interface.
var _ model.Model = (*ReflectorID)(nil)

// String constants for ReflectorID values.
const (
	ReflectorAStr = "A"
	ReflectorBStr = "B"
	ReflectorCStr = "C"
)

// ReflectorIDs lists every reflector in catalog order.
var ReflectorIDs = []ReflectorID{ReflectorA, ReflectorB, ReflectorC}

// ParseReflectorID converts "A", "B" or "C" (any case, with an optional
// "UKW-" prefix) into a ReflectorID.
func ParseReflectorID(s string) (ReflectorID, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.TrimPrefix(norm, "UKW-")
	switch norm {
	case ReflectorAStr:
		return ReflectorA, nil
	case ReflectorBStr:
		return ReflectorB, nil
	case ReflectorCStr:
		return ReflectorC, nil
	default:
		return ReflectorA, &errors.ParseError{Type: "ReflectorID", Value: s}
	}
}

// String returns the reflector letter, or "unknown".
func (r ReflectorID) String() string {
	switch r {
	case ReflectorA:
		return ReflectorAStr
	case ReflectorB:
		return ReflectorBStr
	case ReflectorC:
		return ReflectorCStr
	default:
		return "unknown"
	}
}

// Valid reports whether r names a catalog reflector.
func (r ReflectorID) Valid() bool {
	return r >= ReflectorA && r <= ReflectorC
}

// TypeName returns "ReflectorID".
func (r ReflectorID) TypeName() string {
	return "ReflectorID"
}

// Redacted returns the same string as String.
func (r ReflectorID) Redacted() string {
	return r.String()
}

// IsZero reports whether r is ReflectorA.
func (r ReflectorID) IsZero() bool {
	return r == ReflectorA
}

// Validate returns a *errors.ConfigurationError for an unknown reflector.
func (r ReflectorID) Validate() error {
	if !r.Valid() {
		return &errors.ConfigurationError{
			Type:   "ReflectorID",
			Reason: "must be one of A, B, C",
			Value:  int(r),
		}
	}
	return nil
}

// MarshalJSON encodes r as its letter.
func (r ReflectorID) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "ReflectorID", Value: int(r)}
	}
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON decodes a reflector name string.
func (r *ReflectorID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "ReflectorID", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseReflectorID(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML encodes r as its letter.
func (r ReflectorID) MarshalYAML() (any, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "ReflectorID", Value: int(r)}
	}
	return r.String(), nil
}

// UnmarshalYAML decodes a reflector name scalar.
func (r *ReflectorID) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "ReflectorID", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseReflectorID(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r ReflectorID) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "ReflectorID", Value: int(r)}
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *ReflectorID) UnmarshalText(text []byte) error {
	parsed, err := ParseReflectorID(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ReflectorWiring is a catalog reflector. Its wiring is always an
// involution, so the same table serves both directions.
//
// The reflector sends the signal back through the rotors along a different
// path. Two properties follow from its wiring and together make the machine
// self-reciprocal:
//
//  1. Involution: Forward(Forward(l)) == l, so enciphering the ciphertext
//     from the same start position restores the plaintext.
//
//  2. No fixed points: Forward(l) != l, so no letter ever enciphers to
//     itself.
//
// Example, reflector B: A is wired to Y and Y back to A.
//
//	Wiring.Forward(A) == Y
//	Wiring.Forward(Y) == A
//
// NewReflectorWiring MUST reject any table that breaks either property.
type ReflectorWiring struct {
	ID     ReflectorID
	Wiring Permutation
}

// NewReflectorWiring builds a reflector from its 26-letter wiring. It fails
// with *errors.ConfigurationError unless the wiring is a bijection and an
// involution.
func NewReflectorWiring(id ReflectorID, wiring string) (ReflectorWiring, error) {
	p, err := ParsePermutation(wiring)
	if err != nil {
		return ReflectorWiring{}, &errors.ConfigurationError{
			Type:   "Reflector",
			Field:  "Wiring",
			Reason: "reflector " + id.String() + ": " + err.Error(),
		}
	}
	if !p.IsInvolution() {
		return ReflectorWiring{}, &errors.ConfigurationError{
			Type:   "Reflector",
			Field:  "Wiring",
			Reason: "reflector " + id.String() + " must be an involution",
			Value:  wiring,
		}
	}
	return ReflectorWiring{ID: id, Wiring: p}, nil
}

// LookupReflector returns the catalog entry for id.
func LookupReflector(id ReflectorID) (ReflectorWiring, error) {
	if err := id.Validate(); err != nil {
		return ReflectorWiring{}, err
	}
	return reflectorCatalog[id], nil
}
