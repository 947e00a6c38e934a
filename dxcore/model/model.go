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

// Package model defines the contract that every dxenigma configuration value
// type implements.
//
// Letters, rotor and reflector identifiers, stepping rules, plugboards and
// whole machine configurations all travel the same way: they are parsed from
// operator input (CLI flags, YAML or JSON key sheets), validated once, and
// then consumed read-only by the machine. The Model interface captures that
// lifecycle so that generic helpers (ValidateAll, FromYAML, ToJSON, ...) can
// treat every value uniformly.
//
// Model types are immutable values. Concurrent reads are safe; the only
// mutating methods are the Unmarshal* methods, which require exclusive access
// to the receiver.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all contracts required for dxenigma
// value types: validation, JSON and YAML serialization, safe logging, type
// identification, and zero-value detection.
//
// Example implementation:
//
//	type Window struct {
//	    Letter alphabet.Letter
//	}
//
//	func (w Window) Validate() error { return w.Letter.Validate() }
//	func (w Window) TypeName() string { return "Window" }
//	func (w Window) IsZero() bool { return w.Letter.IsZero() }
//	func (w Window) Redacted() string { return "Window{[REDACTED]}" }
//	func (w Window) String() string { return "Window{" + w.Letter.String() + "}" }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ Model = (*Window)(nil)  // Compile-time check
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Checkable is the subset of Model needed by the generic helpers in this
// package. Model value types satisfy it without taking their address, which
// Model itself does not allow because the Unmarshal* methods have pointer
// receivers.
type Checkable interface {
	Validatable
	Identifiable
}

// Validatable defines the contract for types that validate their own state.
//
// Validate MUST check every invariant of the value and return nil if and only
// if the value is safe to hand to the machine. It MUST be fast, deterministic
// and free of side effects (no logging, no I/O), and it MUST NOT mutate the
// receiver. Failures SHOULD be reported as *errors.ConfigurationError so that
// callers can recognise them with errors.As.
//
// Callers SHOULD invoke Validate at every boundary where operator input
// enters the system: after unmarshaling a key sheet, after parsing CLI
// flags, and before constructing a machine.
type Validatable interface {
	// Validate checks that the instance satisfies all invariants.
	Validate() error
}

// Serializable defines the contract for types that round-trip through JSON
// and YAML.
//
// Marshal methods MUST refuse to emit invalid values; unmarshal methods MUST
// validate what they decoded and return the validation error instead of
// silently accepting a broken key sheet. The usual implementation delegates
// to a local alias type to avoid infinite recursion:
//
//	func (w *Window) UnmarshalYAML(node *yaml.Node) error {
//	    type alias Window
//	    if err := node.Decode((*alias)(w)); err != nil {
//	        return &errors.UnmarshalError{Type: "Window", Reason: err.Error()}
//	    }
//	    return w.Validate()
//	}
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that provide safe string
// representations for logging.
//
// An Enigma configuration is a secret: the rotor start positions and the
// plugboard make up the daily key. Redacted MUST hide such fields while
// keeping enough shape to correlate log lines (for example, the rotor order
// or the number of plugboard pairs). String MAY reveal everything and MUST
// NOT be used for production logging.
type Loggable interface {
	// Redacted returns a representation that is safe to log.
	Redacted() string

	// String returns a complete, human-readable representation that may
	// include key material.
	String() string
}

// Identifiable defines the contract for types that can name themselves.
//
// TypeName MUST return a constant CamelCase name without package prefix
// (for example, "RotorID" or "Configuration"). It is used in error messages
// and structured logs.
type Identifiable interface {
	// TypeName returns the canonical name of this model type.
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// hold their zero value.
//
// For several dxenigma types the zero value is meaningful and valid (the
// letter A, rotor I, an empty plugboard); IsZero reports the zero value, not
// invalidity.
type ZeroCheckable interface {
	// IsZero reports whether this instance is its type's zero value.
	IsZero() bool
}
