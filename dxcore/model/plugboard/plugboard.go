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

// Package plugboard models the Enigma plugboard (Steckerbrett).
//
// The plugboard is a set of at most 13 cables, each swapping two letters.
// Letters without a cable pass through unchanged. Because every cable is a
// swap and no letter carries two cables, the plugboard is an involution:
// Apply(Apply(x)) == x for every letter x, which is what lets the same
// machine both encipher and decipher.
//
// The signal crosses the plugboard twice per keystroke, once on the way in
// and once on the way out. With the cables "AB CD":
//
//	Apply(A) == B
//	Apply(B) == A
//	Apply(E) == E    no cable
//
// The textual form used in key sheets and on the command line is a
// space-separated list of two-letter tokens:
//
//	AB CD EF
//
// Tokens are case-insensitive and any run of whitespace separates them. The
// empty string is the empty plugboard. Rendering always uses upper case,
// single spaces and the order in which the cables were given, so a key
// sheet that was parsed and written back reads the same as the operator's
// copy.
//
// A plugboard MUST satisfy three rules, and New rejects any violation with a
// *errors.ConfigurationError whose Field is "Pairs":
//
//   - at most MaxPairs cables;
//   - no cable from a letter to itself;
//   - no letter on more than one cable.
//
// Historically ten cables were the norm. Any count from zero to thirteen is
// accepted.
package plugboard

import (
	"encoding/json"
	"strconv"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"gopkg.in/yaml.v3"
)

// MaxPairs is the number of cables a plugboard can hold: 13 pairs use up
// all 26 letters.
const MaxPairs = alphabet.Size / 2

// Pair is one plugboard cable connecting two distinct letters.
//
// A pair is unordered for the cipher: "AB" and "BA" wire the same swap.
// The order is kept only so that String reproduces the operator's spelling.
// A Pair built by hand MAY be invalid; it is checked when passed to New.
type Pair struct {
	A alphabet.Letter
	B alphabet.Letter
}

// ParsePair parses a two-letter token such as "AB" (case-insensitive).
//
// A token that is not exactly two distinct letters is a
// *errors.ConfigurationError.
func ParsePair(s string) (Pair, error) {
	if len(s) != 2 {
		return Pair{}, &errors.ConfigurationError{
			Type:   "Plugboard",
			Field:  "Pairs",
			Reason: "each connection must be a pair of letters",
			Value:  s,
		}
	}
	a, okA := alphabet.FromByte(s[0])
	b, okB := alphabet.FromByte(s[1])
	if !okA || !okB {
		return Pair{}, &errors.ConfigurationError{
			Type:   "Plugboard",
			Field:  "Pairs",
			Reason: "each connection must be a pair of letters",
			Value:  s,
		}
	}
	p := Pair{A: a, B: b}
	if err := p.validate(); err != nil {
		return Pair{}, err
	}
	return p, nil
}

// String returns the two-letter form of p.
func (p Pair) String() string {
	return p.A.String() + p.B.String()
}

func (p Pair) validate() error {
	if !p.A.Valid() || !p.B.Valid() {
		return &errors.ConfigurationError{
			Type:   "Plugboard",
			Field:  "Pairs",
			Reason: "each connection must be a pair of letters",
			Value:  p.String(),
		}
	}
	if p.A == p.B {
		return &errors.ConfigurationError{
			Type:   "Plugboard",
			Field:  "Pairs",
			Reason: "a letter cannot be connected to itself",
			Value:  p.String(),
		}
	}
	return nil
}

// Plugboard is a validated set of cables.
//
// Lookups go through a 26-entry partner table, so Apply costs the same with
// zero cables or thirteen. Callers SHOULD obtain a Plugboard from New or
// Parse; both guarantee the invariants listed in the package documentation,
// and Validate re-checks them for values that travelled through
// serialization.
//
// Example:
//
//	pb, err := plugboard.Parse("ml su kj")
//	// pb.String() == "ML SU KJ"
//	// pb.Apply(alphabet.Letter('M' - 'A')) == alphabet.Letter('L' - 'A')
//	// pb.Redacted() == "Plugboard{pairs:3}"
//
// The zero value is an empty plugboard, which maps every letter to itself.
// A Plugboard is immutable once built and safe for concurrent use.
type Plugboard struct {
	pairs []Pair

	// partner[l] is the letter connected to l, plus one; 0 means no cable,
	// so that the zero value is the identity.
	partner [alphabet.Size]int8
}

// Compile-time check that Plugboard implements model.Model interface.
var _ model.Model = (*Plugboard)(nil)

// New builds a plugboard from pairs.
//
// It fails with a *errors.ConfigurationError if more than MaxPairs pairs are
// given, if any pair connects a letter to itself, or if any letter appears in
// more than one pair. Zero pairs is valid and yields the identity.
func New(pairs ...Pair) (Plugboard, error) {
	if len(pairs) > MaxPairs {
		return Plugboard{}, &errors.ConfigurationError{
			Type:   "Plugboard",
			Field:  "Pairs",
			Reason: "maximum plugboard connections is " + strconv.Itoa(MaxPairs),
			Value:  len(pairs),
		}
	}

	pb := Plugboard{pairs: make([]Pair, 0, len(pairs))}
	for _, p := range pairs {
		if err := p.validate(); err != nil {
			return Plugboard{}, err
		}
		for _, l := range [2]alphabet.Letter{p.A, p.B} {
			if pb.partner[l] != 0 {
				return Plugboard{}, &errors.ConfigurationError{
					Type:   "Plugboard",
					Field:  "Pairs",
					Reason: "a letter cannot connect to more than one letter",
					Value:  l.String(),
				}
			}
		}
		pb.partner[p.A] = int8(p.B) + 1
		pb.partner[p.B] = int8(p.A) + 1
		pb.pairs = append(pb.pairs, p)
	}
	return pb, nil
}

// Parse builds a plugboard from its textual form, a whitespace-separated list
// of two-letter tokens ("AB CD"). Empty or blank input is the empty
// plugboard.
func Parse(s string) (Plugboard, error) {
	tokens := strings.Fields(s)
	if len(tokens) > MaxPairs {
		return Plugboard{}, &errors.ConfigurationError{
			Type:   "Plugboard",
			Field:  "Pairs",
			Reason: "maximum plugboard connections is " + strconv.Itoa(MaxPairs),
			Value:  len(tokens),
		}
	}
	pairs := make([]Pair, 0, len(tokens))
	for _, tok := range tokens {
		p, err := ParsePair(tok)
		if err != nil {
			return Plugboard{}, err
		}
		pairs = append(pairs, p)
	}
	return New(pairs...)
}

// Apply returns the letter connected to l, or l itself if it has no cable.
// l MUST be a valid letter; Apply panics on anything outside the alphabet.
func (pb Plugboard) Apply(l alphabet.Letter) alphabet.Letter {
	if p := pb.partner[l]; p != 0 {
		return alphabet.Letter(p - 1)
	}
	return l
}

// Pairs returns a copy of the cables in the order they were given.
func (pb Plugboard) Pairs() []Pair {
	out := make([]Pair, len(pb.pairs))
	copy(out, pb.pairs)
	return out
}

// Len returns the number of cables.
func (pb Plugboard) Len() int {
	return len(pb.pairs)
}

// String returns the textual form, for example "AB CD".
func (pb Plugboard) String() string {
	parts := make([]string, len(pb.pairs))
	for i, p := range pb.pairs {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

// Redacted hides the cables, which are part of the daily key, and reports
// only how many there are.
func (pb Plugboard) Redacted() string {
	return "Plugboard{pairs:" + strconv.Itoa(len(pb.pairs)) + "}"
}

// TypeName returns "Plugboard".
func (pb Plugboard) TypeName() string {
	return "Plugboard"
}

// IsZero reports whether pb has no cables.
func (pb Plugboard) IsZero() bool {
	return len(pb.pairs) == 0
}

// Validate re-checks the plugboard invariants. Plugboards obtained from New
// or Parse are always valid; the zero value is valid.
func (pb Plugboard) Validate() error {
	rebuilt, err := New(pb.pairs...)
	if err != nil {
		return err
	}
	if rebuilt.partner != pb.partner {
		return &errors.ConfigurationError{
			Type:   "Plugboard",
			Reason: "connection table does not match its pairs",
		}
	}
	return nil
}

// MarshalJSON encodes pb as its textual form.
func (pb Plugboard) MarshalJSON() ([]byte, error) {
	if err := pb.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(pb.String())
}

// UnmarshalJSON accepts either the textual form ("AB CD") or a list of
// two-letter tokens (["AB", "CD"]).
func (pb *Plugboard) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var tokens []string
		if errList := json.Unmarshal(data, &tokens); errList != nil {
			return &errors.UnmarshalError{Type: "Plugboard", Data: data, Reason: err.Error()}
		}
		s = strings.Join(tokens, " ")
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*pb = parsed
	return nil
}

// MarshalYAML encodes pb as its textual form.
func (pb Plugboard) MarshalYAML() (any, error) {
	if err := pb.Validate(); err != nil {
		return nil, err
	}
	return pb.String(), nil
}

// UnmarshalYAML accepts either a scalar ("AB CD") or a sequence of
// two-letter tokens.
func (pb *Plugboard) UnmarshalYAML(node *yaml.Node) error {
	var s string
	switch node.Kind {
	case yaml.SequenceNode:
		var tokens []string
		if err := node.Decode(&tokens); err != nil {
			return &errors.UnmarshalError{Type: "Plugboard", Reason: err.Error()}
		}
		s = strings.Join(tokens, " ")
	default:
		if err := node.Decode(&s); err != nil {
			return &errors.UnmarshalError{Type: "Plugboard", Data: []byte(node.Value), Reason: err.Error()}
		}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*pb = parsed
	return nil
}
