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

// Package errors provides the error types shared by every dxenigma package.
//
// The machine has exactly one externally observable failure mode: an invalid
// configuration. Everything else (parsing textual settings, encoding and
// decoding configuration files) is a boundary concern that eventually turns
// into the same answer for the operator: "this key sheet cannot be used".
// The types below keep those failures distinguishable for callers while
// giving them stable, human-readable messages.
//
// # Error Types
//
//   - ParseError
//     Returned when a textual value (a letter, a rotor or reflector name, a
//     stepping rule, a plugboard token) cannot be interpreted.
//
//   - MarshalError
//     Returned when an invalid enum-like value is about to be serialized.
//
//   - UnmarshalError
//     Returned when JSON or YAML input cannot be decoded into a model type.
//
//   - ConfigurationError
//     Returned when a machine setting violates an invariant: plugboard pair
//     limits, reused plugboard letters, non-bijective wirings, reflectors
//     that are not involutions, unknown catalog identifiers, unsupported
//     configuration schema versions.
//
// All types are plain value carriers; match them with errors.As.
//
//	var cfgErr *errors.ConfigurationError
//	if stderrors.As(err, &cfgErr) {
//	    fmt.Println("bad key sheet field:", cfgErr.Field)
//	}
package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
)

// ParseError is returned when parsing a string into a strongly typed value
// fails.
//
// Type identifies the logical type being parsed (for example, "Letter",
// "RotorID", "PlugboardPair") and Value contains the exact string that could
// not be interpreted.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "RotorID").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxenigma: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "dxenigma: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails because it is
// outside the set of valid constants.
//
// In practice a MarshalError indicates a programming error, such as a
// RotorID produced by an unchecked numeric cast.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxenigma: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "dxenigma: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Data holds the raw payload and is deliberately left out of Error(): a
// configuration payload carries the daily key (positions and plugboard), so
// callers decide for themselves whether it may be logged.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string

	// Err is the underlying error, if any. It is reachable through
	// errors.Is and errors.As, so a ConfigurationError raised by a nested
	// field survives the wrapping.
	Err error
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxenigma: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "dxenigma: cannot unmarshal " + e.Type + ": " + e.Reason
}

// Unwrap returns the underlying error, or nil.
func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// ConfigurationError is returned when a machine setting violates one of the
// invariants the cipher relies on.
//
// A ConfigurationError is unrecoverable for the run that produced it: the
// machine refuses to encode anything until the configuration is fixed, so no
// partial output is ever produced from an invalid key sheet.
//
// # Example
//
//	if len(pairs) > MaxPairs {
//	    return &errors.ConfigurationError{
//	        Type:   "Plugboard",
//	        Field:  "Pairs",
//	        Reason: "at most 13 pairs are allowed",
//	        Value:  len(pairs),
//	    }
//	}
type ConfigurationError struct {
	// Type is the logical name of the component being configured.
	Type string

	// Field is the name of the offending field.
	// May be empty if the error applies to the entire component.
	Field string

	// Reason is a short, human-readable explanation of why the setting is
	// rejected.
	Reason string

	// Value optionally contains the offending value.
	Value any
}

// Error implements the error interface for ConfigurationError.
//
// The error message format is:
//
//	"dxenigma: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxenigma: invalid {Type}: {Reason}" (when Field is empty)
//
// When Value is set it is appended as " (got {Value})".
func (e *ConfigurationError) Error() string {
	msg := "dxenigma: invalid " + e.Type
	if e.Field != "" {
		msg += "." + e.Field
	}
	msg += ": " + e.Reason
	if e.Value != nil {
		msg += fmt.Sprintf(" (got %v)", e.Value)
	}
	return msg
}

// IsConfigurationError reports whether err, or any error it wraps, is a
// *ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return stderrors.As(err, &target)
}
