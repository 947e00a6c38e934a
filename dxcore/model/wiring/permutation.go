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

// Package wiring holds the fixed cross-wiring of the Enigma I rotors and
// reflectors.
//
// A wiring is a Permutation: a bijection over the 26-letter alphabet, stored
// together with its precomputed inverse so that both the forward pass (entry
// wheel towards the reflector) and the backward pass (reflector towards the
// entry wheel) are single array lookups. Rotor and reflector wirings are
// built once, at package initialisation, into an immutable catalog addressed
// by RotorID and ReflectorID.
//
// Tables are written in the customary 26-letter form, where the letter at
// index i is the contact that the i-th alphabet letter is wired to. Rotor I,
// for example, is
//
//	ABCDEFGHIJKLMNOPQRSTUVWXYZ
//	EKMFLGDQVZNTOWYHXUSPAIBRCJ
//
// so a signal entering at A leaves at E on the forward pass, and a signal
// entering at E on the backward pass leaves at A.
//
// Construction validates every table: a rotor wiring MUST be a bijection and
// a reflector wiring MUST additionally be an involution without fixed
// points. A table that fails either check is reported as
// *errors.ConfigurationError and never reaches the catalog, so code that
// obtains wirings through LookupRotor and LookupReflector MAY rely on these
// properties without checking them again.
//
// The wirings describe the rotor at ring setting A and window position A.
// Rotation is not modelled here: dxcore/enigma shifts the signal by the
// rotor offset before and after each lookup.
package wiring

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"gopkg.in/yaml.v3"
)

// Permutation is a bijection over the alphabet together with its inverse.
//
// Forward and Inverse are total over valid letters and undo each other:
//
//	p.Inverse(p.Forward(l)) == l
//	p.Forward(p.Inverse(l)) == l
//
// Both are plain table lookups and SHOULD be the only way the cipher path
// touches a wiring. Passing a letter outside [0, alphabet.Size) is a
// programming error and panics.
//
// The zero value is not a bijection (every letter maps to A) and fails
// Validate; obtain permutations from ParsePermutation. A Permutation is
// immutable once built and safe for concurrent use.
type Permutation struct {
	forward [alphabet.Size]alphabet.Letter
	inverse [alphabet.Size]alphabet.Letter
}

// Compile-time check that Permutation implements model.Model interface.
var _ model.Model = (*Permutation)(nil)

// ParsePermutation builds a Permutation from its 26-letter textual form,
// where the letter at index i is the image of the i-th alphabet letter.
//
// Input is case-insensitive. The result is a *errors.ConfigurationError if
// the text is not exactly 26 letters or if any letter is missing or
// repeated.
func ParsePermutation(s string) (Permutation, error) {
	var p Permutation
	if len(s) != alphabet.Size {
		return Permutation{}, &errors.ConfigurationError{
			Type:   "Permutation",
			Reason: "must contain exactly 26 letters",
			Value:  len(s),
		}
	}
	for i := 0; i < alphabet.Size; i++ {
		l, ok := alphabet.FromByte(s[i])
		if !ok {
			return Permutation{}, &errors.ConfigurationError{
				Type:   "Permutation",
				Reason: "must contain only letters A-Z",
				Value:  string(s[i]),
			}
		}
		p.forward[i] = l
	}
	if err := p.fillInverse(); err != nil {
		return Permutation{}, err
	}
	return p, nil
}

// fillInverse derives the inverse table and fails if forward is not a
// bijection.
func (p *Permutation) fillInverse() error {
	var seen [alphabet.Size]bool
	for i, out := range p.forward {
		if !out.Valid() {
			return &errors.ConfigurationError{
				Type:   "Permutation",
				Reason: "must contain only letters A-Z",
				Value:  int(out),
			}
		}
		if seen[out] {
			return &errors.ConfigurationError{
				Type:   "Permutation",
				Reason: "must be a bijection: letter appears more than once",
				Value:  out.String(),
			}
		}
		seen[out] = true
		p.inverse[out] = alphabet.Letter(i)
	}
	return nil
}

// Forward returns the image of l.
func (p Permutation) Forward(l alphabet.Letter) alphabet.Letter {
	return p.forward[l]
}

// Inverse returns the letter whose image is l.
func (p Permutation) Inverse(l alphabet.Letter) alphabet.Letter {
	return p.inverse[l]
}

// IsInvolution reports whether applying p twice is the identity.
func (p Permutation) IsInvolution() bool {
	for i, out := range p.forward {
		if p.forward[out] != alphabet.Letter(i) {
			return false
		}
	}
	return true
}

// String returns the 26-letter textual form.
func (p Permutation) String() string {
	var b strings.Builder
	b.Grow(alphabet.Size)
	for _, out := range p.forward {
		b.WriteByte(out.Byte())
	}
	return b.String()
}

// Redacted returns the same string as String; wirings are public catalog
// data, not key material.
func (p Permutation) Redacted() string {
	return p.String()
}

// TypeName returns "Permutation".
func (p Permutation) TypeName() string {
	return "Permutation"
}

// IsZero reports whether p is the zero value.
func (p Permutation) IsZero() bool {
	return p == Permutation{}
}

// Validate checks that p is a bijection whose inverse table is consistent.
func (p Permutation) Validate() error {
	check := Permutation{forward: p.forward}
	if err := check.fillInverse(); err != nil {
		return err
	}
	if check.inverse != p.inverse {
		return &errors.ConfigurationError{
			Type:   "Permutation",
			Field:  "Inverse",
			Reason: "does not match the forward table",
		}
	}
	return nil
}

// MarshalJSON encodes p as its 26-letter string.
func (p Permutation) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a 26-letter string.
func (p *Permutation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Permutation", Data: data, Reason: err.Error()}
	}
	parsed, err := ParsePermutation(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes p as its 26-letter string.
func (p Permutation) MarshalYAML() (any, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.String(), nil
}

// UnmarshalYAML decodes a 26-letter string.
func (p *Permutation) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Permutation", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParsePermutation(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
