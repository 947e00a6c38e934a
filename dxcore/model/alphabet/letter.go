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

// Package alphabet defines the 26-letter alphabet every Enigma component is
// indexed by.
//
// All permutations in dxenigma are tables over indices 0..25 in the fixed
// order A..Z. Letter is that index with a name: it converts to and from ASCII
// in O(1), and modular arithmetic on letters (rotor offsets) is done with Add.
package alphabet

import (
	"encoding/json"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Size is the number of letters in the alphabet.
const Size = 26

// Letters is the alphabet in index order.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Letter is an alphabet index in [0, Size). The zero value is A.
type Letter int

// Compile-time check that Letter implements model.Model interface.
var _ model.Model = (*Letter)(nil)

// FromByte converts an ASCII letter (either case) into a Letter.
//
// The second result is false for any byte outside A-Z and a-z.
func FromByte(b byte) (Letter, bool) {
	switch {
	case b >= 'A' && b <= 'Z':
		return Letter(b - 'A'), true
	case b >= 'a' && b <= 'z':
		return Letter(b - 'a'), true
	default:
		return 0, false
	}
}

// ParseLetter parses a single ASCII letter, case-insensitively.
//
// Anything other than exactly one letter yields a *errors.ParseError.
func ParseLetter(s string) (Letter, error) {
	if len(s) != 1 {
		return 0, &errors.ParseError{Type: "Letter", Value: s}
	}
	l, ok := FromByte(s[0])
	if !ok {
		return 0, &errors.ParseError{Type: "Letter", Value: s}
	}
	return l, nil
}

// Add returns l shifted by n positions, wrapping modulo Size. n may be
// negative.
func (l Letter) Add(n int) Letter {
	return Letter(mod(int(l) + n))
}

// Byte returns the uppercase ASCII form of l. It returns '?' for an invalid
// Letter.
func (l Letter) Byte() byte {
	if !l.Valid() {
		return '?'
	}
	return Letters[l]
}

// String returns the uppercase letter, or "?" if l is invalid.
func (l Letter) String() string {
	return string(l.Byte())
}

// Valid reports whether l is within [0, Size).
func (l Letter) Valid() bool {
	return l >= 0 && l < Size
}

// TypeName returns "Letter".
func (l Letter) TypeName() string {
	return "Letter"
}

// Redacted returns the same string as String.
//
// A single letter carries no key material on its own; types that aggregate
// letters into key settings redact at their own level.
func (l Letter) Redacted() string {
	return l.String()
}

// IsZero reports whether l is A, the zero value. A is a valid letter.
func (l Letter) IsZero() bool {
	return l == 0
}

// Validate returns a *errors.ConfigurationError if l is outside the alphabet.
func (l Letter) Validate() error {
	if !l.Valid() {
		return &errors.ConfigurationError{
			Type:   "Letter",
			Reason: "must be within A-Z",
			Value:  int(l),
		}
	}
	return nil
}

// MarshalJSON encodes l as a one-letter JSON string.
func (l Letter) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return nil, &errors.MarshalError{Type: "Letter", Value: int(l)}
	}
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON decodes a one-letter JSON string.
func (l *Letter) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Letter", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseLetter(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML encodes l as a one-letter string.
func (l Letter) MarshalYAML() (any, error) {
	if !l.Valid() {
		return nil, &errors.MarshalError{Type: "Letter", Value: int(l)}
	}
	return l.String(), nil
}

// UnmarshalYAML decodes a one-letter string.
func (l *Letter) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Letter", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseLetter(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Letter) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, &errors.MarshalError{Type: "Letter", Value: int(l)}
	}
	return []byte{l.Byte()}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Letter) UnmarshalText(text []byte) error {
	parsed, err := ParseLetter(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func mod(n int) int {
	n %= Size
	if n < 0 {
		n += Size
	}
	return n
}
