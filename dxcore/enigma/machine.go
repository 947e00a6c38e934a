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

// Package enigma runs an Enigma I: three stepping rotors, a reflector and a
// plugboard, driven one keystroke at a time.
//
// A Machine is built from a validated machine.Configuration. For every
// letter it applies the plugboard, steps the rotors, passes the signal right
// to left through the rotors, bounces it off the reflector, passes it back
// left to right, and applies the plugboard again. Spaces pass through
// untouched and do not step the rotors. Because the reflector is an
// involution without fixed points, enciphering the ciphertext from the same
// start position yields the plaintext:
//
//	cfg := machine.Default()
//	ct, _ := enigma.Encode("AAAAA", cfg) // "BDZGO"
//	pt, _ := enigma.Encode(ct, cfg)     // "AAAAA"
//
// A Machine holds mutable rotor state and is not safe for concurrent use.
// The package-level Encode builds a fresh Machine per call and may be used
// from any number of goroutines.
package enigma

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"dirpx.dev/dxenigma/dxcore/model/machine"
	"dirpx.dev/dxenigma/dxcore/model/plugboard"
	"dirpx.dev/dxenigma/dxcore/model/wiring"
)

// Machine is a configured Enigma I.
type Machine struct {
	cfg       machine.Configuration
	rotors    [machine.Slots]*Rotor
	reflector wiring.ReflectorWiring
	plugboard plugboard.Plugboard
	stepper   stepper

	logger    *slog.Logger
	observers []Observer
}

// New validates cfg and mounts its rotors at the configured start
// positions. A configuration problem is returned before any state is built.
func New(cfg machine.Configuration, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		cfg:       cfg,
		plugboard: cfg.Plugboard,
		stepper:   stepper{rule: cfg.Stepping},
		logger:    discardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	for slot, id := range cfg.Rotors {
		w, err := wiring.LookupRotor(id)
		if err != nil {
			return nil, err
		}
		m.rotors[slot] = NewRotor(w, cfg.Positions[slot])
	}
	refl, err := wiring.LookupReflector(cfg.Reflector)
	if err != nil {
		return nil, err
	}
	m.reflector = refl

	m.logger.Info("machine ready", "config", model.SafeString(cfg, false))
	return m, nil
}

// Encode builds a Machine from cfg and enciphers text with it.
func Encode(text string, cfg machine.Configuration, opts ...Option) (string, error) {
	m, err := New(cfg, opts...)
	if err != nil {
		return "", err
	}
	return m.Encode(text)
}

// Configuration returns the configuration the machine was built from.
func (m *Machine) Configuration() machine.Configuration {
	return m.cfg
}

// Positions returns the letters currently in the rotor windows.
func (m *Machine) Positions() machine.Positions {
	return positionsOf(&m.rotors)
}

// Reset returns the rotors to the configured start positions and drops any
// latched double step.
func (m *Machine) Reset() {
	for slot, r := range m.rotors {
		r.Set(m.cfg.Positions[slot])
	}
	m.stepper.reset()
	m.logger.Info("machine reset")
}

// Encode enciphers text, which must consist of the letters A-Z and spaces
// only. The result has the same length; spaces stay where they are.
//
// Any other character yields a *errors.ParseError before a single rotor
// moves. Encipherment and decipherment are the same operation.
func (m *Machine) Encode(text string) (string, error) {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != ' ' && (c < 'A' || c > 'Z') {
			return "", fmt.Errorf("offset %d: %w", i, &errors.ParseError{Type: "Character", Value: string(rune(c))})
		}
	}

	var out strings.Builder
	out.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ' ' {
			out.WriteByte(' ')
			continue
		}
		l, _ := alphabet.FromByte(c)
		out.WriteByte(m.EncodeLetter(l).Byte())
	}
	return out.String(), nil
}

// EncodeLetter steps the rotors and enciphers a single letter.
//
// l must be a valid letter (see alphabet.Letter.Valid). EncodeLetter panics
// on anything else, and does so before the rotors move. Callers holding
// untrusted input should go through Encode or alphabet.FromByte, which
// report errors instead.
func (m *Machine) EncodeLetter(l alphabet.Letter) alphabet.Letter {
	if !l.Valid() {
		panic(fmt.Sprintf("enigma: EncodeLetter: letter %d out of range [0, %d)", int(l), alphabet.Size))
	}
	l = m.plugboard.Apply(l)
	ev := m.stepper.step(&m.rotors)
	l = m.signal(l)
	l = m.plugboard.Apply(l)

	m.trace(ev)
	for _, o := range m.observers {
		o.OnStep(ev)
	}
	return l
}

// signal runs l through the rotors, the reflector and back.
func (m *Machine) signal(l alphabet.Letter) alphabet.Letter {
	for slot := machine.Right; slot >= machine.Left; slot-- {
		l = m.rotors[slot].Forward(l)
	}
	l = m.reflector.Wiring.Forward(l)
	for slot := machine.Left; slot <= machine.Right; slot++ {
		l = m.rotors[slot].Backward(l)
	}
	return l
}

func (m *Machine) trace(ev StepEvent) {
	if !m.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	m.logger.Debug("keystroke",
		"positions", ev.After.String(),
		"left", ev.Steps[machine.Left],
		"middle", ev.Steps[machine.Middle],
		"right", ev.Steps[machine.Right])
	if ev.Stepped(machine.Left) {
		m.logger.Debug("left rotor rotated", "double_step", ev.DoubleStep)
	}
}
