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
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"dirpx.dev/dxenigma/dxcore/model/wiring"
)

// Rotor is a catalog wheel mounted in a machine. Its offset is the letter
// shown in the window and is the only state that changes while typing.
//
// At offset k the contact at wheel position 0 is wiring index k, so a signal
// entering at position i leaves at Forward((i+k) mod 26) - k.
type Rotor struct {
	wiring wiring.RotorWiring
	offset alphabet.Letter
}

// NewRotor mounts w with the given window letter.
func NewRotor(w wiring.RotorWiring, start alphabet.Letter) *Rotor {
	return &Rotor{wiring: w, offset: start}
}

// ID returns the catalog identifier of the wheel.
func (r *Rotor) ID() wiring.RotorID {
	return r.wiring.ID
}

// Offset returns the letter currently in the window.
func (r *Rotor) Offset() alphabet.Letter {
	return r.offset
}

// Notch returns the window letter at which this rotor carries.
func (r *Rotor) Notch() alphabet.Letter {
	return r.wiring.Notch
}

// AtNotch reports whether the window shows the notch letter.
func (r *Rotor) AtNotch() bool {
	return r.offset == r.wiring.Notch
}

// Advance turns the rotor by one position.
func (r *Rotor) Advance() {
	r.offset = r.offset.Add(1)
}

// Set puts the rotor at window letter l.
func (r *Rotor) Set(l alphabet.Letter) {
	r.offset = l
}

// Forward passes a signal from the entry side towards the reflector.
func (r *Rotor) Forward(l alphabet.Letter) alphabet.Letter {
	k := int(r.offset)
	return r.wiring.Wiring.Forward(l.Add(k)).Add(-k)
}

// Backward passes a signal from the reflector side back to the entry side.
func (r *Rotor) Backward(l alphabet.Letter) alphabet.Letter {
	k := int(r.offset)
	return r.wiring.Wiring.Inverse(l.Add(k)).Add(-k)
}
