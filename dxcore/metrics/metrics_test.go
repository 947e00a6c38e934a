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

package metrics

import (
	"testing"

	"dirpx.dev/dxenigma/dxcore/enigma"
	"dirpx.dev/dxenigma/dxcore/model/machine"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_CountsKeystrokes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	cfg := machine.Default()
	cfg.Positions, _ = machine.ParsePositions("ADU")

	m, err := enigma.New(cfg, enigma.WithObserver(rec))
	if err != nil {
		t.Fatalf("enigma.New() error = %v", err)
	}
	// ADU -> ADV -> AEW -> BFX -> BGY
	if _, err := m.Encode("AA AA"); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"keystrokes", rec.keystrokes, 4},
		{"double steps", rec.doubleSteps, 1},
		{"left", rec.rotorSteps.WithLabelValues("left"), 1},
		{"middle", rec.rotorSteps.WithLabelValues("middle"), 3},
		{"right", rec.rotorSteps.WithLabelValues("right"), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	snap, err := Gather(reg)
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if snap.Keystrokes != 4 || snap.DoubleSteps != 1 {
		t.Errorf("Gather() = %+v, want 4 keystrokes and 1 double step", snap)
	}
	if snap.RotorSteps["middle"] != 3 || snap.RotorSteps["right"] != 4 || snap.RotorSteps["left"] != 1 {
		t.Errorf("Gather().RotorSteps = %v", snap.RotorSteps)
	}
}

func TestRecorder_SlotsExposedBeforeUse(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewRecorder(reg); err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	n, err := testutil.GatherAndCount(reg, "dxenigma_rotor_steps_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if n != machine.Slots {
		t.Errorf("rotor_steps_total series = %d, want %d", n, machine.Slots)
	}
}

func TestNewRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewRecorder(reg); err != nil {
		t.Fatalf("first NewRecorder() error = %v", err)
	}
	if _, err := NewRecorder(reg); err == nil {
		t.Error("second NewRecorder() on the same registry should fail")
	}
}

func TestRecorder_SharedAcrossMachines(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := enigma.Encode("HELLO", machine.Default(), enigma.WithObserver(rec)); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
	}
	if got := testutil.ToFloat64(rec.keystrokes); got != 15 {
		t.Errorf("keystrokes = %v, want 15", got)
	}
}
