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
	"strconv"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/wiring"
	"gopkg.in/yaml.v3"
)

// RotorOrder is the Walzenlage: which catalog rotor sits in each slot, left
// to right.
//
// The same rotor may appear in more than one slot. A physical machine could
// not do that, but nothing in the cipher breaks, so it is accepted as is.
type RotorOrder [Slots]wiring.RotorID

// Compile-time check that RotorOrder implements model.Model interface.
var _ model.Model = (*RotorOrder)(nil)

// ParseRotorOrder parses three rotor names separated by spaces, commas or
// hyphens ("I II III", "IV,V,I", "II-IV-V"), or three digits run together as
// in numbered key sheets ("321").
func ParseRotorOrder(s string) (RotorOrder, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '-' || r == '\t'
	})
	if len(fields) == 1 && len(fields[0]) == Slots && isDigits(fields[0]) {
		fields = strings.Split(fields[0], "")
	}
	return rotorOrderFromNames(fields, s)
}

func rotorOrderFromNames(names []string, raw string) (RotorOrder, error) {
	var o RotorOrder
	if len(names) != Slots {
		return o, &errors.ConfigurationError{
			Type:   "RotorOrder",
			Reason: "exactly " + strconv.Itoa(Slots) + " rotors are required",
			Value:  raw,
		}
	}
	for i, name := range names {
		id, err := wiring.ParseRotorID(name)
		if err != nil {
			return RotorOrder{}, err
		}
		o[i] = id
	}
	return o, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String returns the rotor names joined by hyphens, for example "I-II-III".
func (o RotorOrder) String() string {
	return o[Left].String() + "-" + o[Middle].String() + "-" + o[Right].String()
}

// Redacted returns the same string as String.
func (o RotorOrder) Redacted() string {
	return o.String()
}

// TypeName returns "RotorOrder".
func (o RotorOrder) TypeName() string {
	return "RotorOrder"
}

// IsZero reports whether every slot holds rotor I.
func (o RotorOrder) IsZero() bool {
	return o == RotorOrder{}
}

// Validate reports every slot that does not hold a catalog rotor.
func (o RotorOrder) Validate() error {
	return model.ValidateAll(o[:])
}

// MarshalJSON encodes o as a list of rotor names.
func (o RotorOrder) MarshalJSON() ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(o[:])
}

// UnmarshalJSON accepts a list of rotor names or numbers (["I","II","III"],
// [1,2,3]) or a single string understood by ParseRotorOrder.
func (o *RotorOrder) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseRotorOrder(s)
		if err != nil {
			return err
		}
		*o = parsed
		return nil
	}

	var ids []wiring.RotorID
	if err := json.Unmarshal(data, &ids); err != nil {
		return &errors.UnmarshalError{Type: "RotorOrder", Data: data, Reason: err.Error()}
	}
	if len(ids) != Slots {
		return &errors.ConfigurationError{
			Type:   "RotorOrder",
			Reason: "exactly " + strconv.Itoa(Slots) + " rotors are required",
			Value:  len(ids),
		}
	}
	copy(o[:], ids)
	return nil
}

// MarshalYAML encodes o as a flow sequence of rotor names.
func (o RotorOrder) MarshalYAML() (any, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, id := range o {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: id.String()})
	}
	return node, nil
}

// UnmarshalYAML accepts a sequence of rotor names or a scalar understood by
// ParseRotorOrder.
func (o *RotorOrder) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		names := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			names = append(names, item.Value)
		}
		parsed, err := rotorOrderFromNames(names, strings.Join(names, " "))
		if err != nil {
			return err
		}
		*o = parsed
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "RotorOrder", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseRotorOrder(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
