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

package wiring

import (
	"fmt"

	"dirpx.dev/dxenigma/dxcore/model/alphabet"
)

// Enigma I wirings (1930), as listed by the Crypto Museum.
const (
	rotorIWiring   = "EKMFLGDQVZNTOWYHXUSPAIBRCJ"
	rotorIIWiring  = "AJDKSIRUXBLHWTMCQGZNPYFVOE"
	rotorIIIWiring = "BDFHJLCPRTXVZNYEIWGAKMUSQO"
	rotorIVWiring  = "ESOVPZJAYQUIRHXLNFTGKDCMWB"
	rotorVWiring   = "VZBRGITYUPSDNHLXAWMJQOFECK"

	reflectorAWiring = "EJMZALYXVBWFCRQUONTSPIKHGD"
	reflectorBWiring = "YRUHQSLDPXNGOKMIEBFZCWVJAT"
	reflectorCWiring = "FVPJIAOYEDRZXWGCTKUQSBNMHL"
)

// Catalogs are written once here and never mutated.
var (
	rotorCatalog = [...]RotorWiring{
		RotorI:   mustRotor(RotorI, rotorIWiring, 'Q'),
		RotorII:  mustRotor(RotorII, rotorIIWiring, 'E'),
		RotorIII: mustRotor(RotorIII, rotorIIIWiring, 'V'),
		RotorIV:  mustRotor(RotorIV, rotorIVWiring, 'J'),
		RotorV:   mustRotor(RotorV, rotorVWiring, 'Z'),
	}

	reflectorCatalog = [...]ReflectorWiring{
		ReflectorA: mustReflector(ReflectorA, reflectorAWiring),
		ReflectorB: mustReflector(ReflectorB, reflectorBWiring),
		ReflectorC: mustReflector(ReflectorC, reflectorCWiring),
	}
)

func mustRotor(id RotorID, wiring string, notch byte) RotorWiring {
	n, ok := alphabet.FromByte(notch)
	if !ok {
		panic(fmt.Sprintf("wiring: rotor %s has invalid notch %q", id, notch))
	}
	r, err := NewRotorWiring(id, wiring, n)
	if err != nil {
		panic(fmt.Sprintf("wiring: corrupt built-in table: %v", err))
	}
	return r
}

func mustReflector(id ReflectorID, wiring string) ReflectorWiring {
	r, err := NewReflectorWiring(id, wiring)
	if err != nil {
		panic(fmt.Sprintf("wiring: corrupt built-in table: %v", err))
	}
	return r
}
