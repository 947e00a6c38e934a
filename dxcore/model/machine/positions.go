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

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"gopkg.in/yaml.v3"
)

// Slots is the number of rotor slots in an Enigma I.
const Slots = 3

// Slot indices, left to right as seen by the operator.
const (
	Left   = 0
	Middle = 1
	Right  = 2
)

// Positions holds the three window letters, left to right. It is both the
// starting position in a key sheet (Grundstellung) and the running state
// reported by a machine.
//
// The zero value is AAA.
type Positions [Slots]alphabet.Letter

// Compile-time check that Positions implements model.Model interface.
var _ model.Model = (*Positions)(nil)

// ParsePositions parses three letters such as "AAA" or "qev".
func ParsePositions(s string) (Positions, error) {
	var p Positions
	if len(s) != Slots {
		return p, &errors.ParseError{Type: "Positions", Value: s}
	}
	for i := 0; i < Slots; i++ {
		l, ok := alphabet.FromByte(s[i])
		if !ok {
			return Positions{}, &errors.ParseError{Type: "Positions", Value: s}
		}
		p[i] = l
	}
	return p, nil
}

// String returns the three window letters, for example "ADU".
func (p Positions) String() string {
	return string([]byte{p[Left].Byte(), p[Middle].Byte(), p[Right].Byte()})
}

// Redacted hides the letters: the start position is part of the daily key.
func (p Positions) Redacted() string {
	return "***"
}

// TypeName returns "Positions".
func (p Positions) TypeName() string {
	return "Positions"
}

// IsZero reports whether p is AAA.
func (p Positions) IsZero() bool {
	return p == Positions{}
}

// Validate checks that every slot holds a letter.
func (p Positions) Validate() error {
	for i, l := range p {
		if !l.Valid() {
			return &errors.ConfigurationError{
				Type:   "Positions",
				Field:  slotName(i),
				Reason: "must be a letter A-Z",
				Value:  int(l),
			}
		}
	}
	return nil
}

// MarshalJSON encodes p as a three-letter string.
func (p Positions) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a three-letter string.
func (p *Positions) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Positions", Data: data, Reason: err.Error()}
	}
	parsed, err := ParsePositions(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes p as a three-letter string.
func (p Positions) MarshalYAML() (any, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.String(), nil
}

// UnmarshalYAML decodes a three-letter scalar.
func (p *Positions) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Positions", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParsePositions(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func slotName(i int) string {
	switch i {
	case Left:
		return "Left"
	case Middle:
		return "Middle"
	case Right:
		return "Right"
	default:
		return "Slot"
	}
}
