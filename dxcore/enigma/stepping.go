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

package enigma

import (
	"dirpx.dev/dxenigma/dxcore/model/machine"
)

// StepEvent describes what one keystroke did to the rotors.
type StepEvent struct {
	// Before and After are the window letters around the step.
	Before, After machine.Positions

	// Steps counts how far each slot advanced, left to right. The middle
	// slot can advance twice in one keystroke under the deferred rule.
	Steps [machine.Slots]int

	// DoubleStep is set when the middle rotor moved because of its own
	// notch, carrying the left rotor with it.
	DoubleStep bool

	// Latched is set when a double step carried over from the previous
	// keystroke was applied. Only the deferred rule latches.
	Latched bool
}

// Stepped reports whether the rotor in slot moved.
func (e StepEvent) Stepped(slot int) bool {
	return e.Steps[slot] > 0
}

// stepper advances three rotors according to a stepping rule.
type stepper struct {
	rule    machine.Stepping
	pending bool
}

func (s *stepper) reset() {
	s.pending = false
}

func (s *stepper) step(rotors *[machine.Slots]*Rotor) StepEvent {
	mid, right := rotors[machine.Middle], rotors[machine.Right]

	ev := StepEvent{Before: positionsOf(rotors)}
	advance := func(slot int) {
		rotors[slot].Advance()
		ev.Steps[slot]++
	}

	switch s.rule {
	case machine.SteppingPawl:
		switch {
		case mid.AtNotch():
			advance(machine.Left)
			advance(machine.Middle)
			ev.DoubleStep = true
		case right.AtNotch():
			advance(machine.Middle)
		}

	default:
		if s.pending {
			advance(machine.Middle)
			s.pending = false
			ev.Latched = true
		}
		rightAtNotch := right.AtNotch()
		midAtNotch := mid.AtNotch()
		if rightAtNotch || midAtNotch {
			if midAtNotch {
				advance(machine.Left)
				s.pending = true
				ev.DoubleStep = true
			}
			advance(machine.Middle)
		}
	}
	advance(machine.Right)

	ev.After = positionsOf(rotors)
	return ev
}

func positionsOf(rotors *[machine.Slots]*Rotor) machine.Positions {
	var p machine.Positions
	for i, r := range rotors {
		p[i] = r.Offset()
	}
	return p
}
