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

// Package metrics counts machine activity with Prometheus collectors.
//
// A Recorder is an enigma.Observer: attach it with enigma.WithObserver and
// it counts keystrokes, rotor movements per slot and double steps. Several
// machines may share one Recorder; the counters are safe for concurrent use.
package metrics

import (
	"fmt"

	"dirpx.dev/dxenigma/dxcore/enigma"
	"dirpx.dev/dxenigma/dxcore/model/machine"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dxenigma"

var slotLabels = [machine.Slots]string{"left", "middle", "right"}

// Recorder holds the machine counters.
type Recorder struct {
	keystrokes  prometheus.Counter
	rotorSteps  *prometheus.CounterVec
	doubleSteps prometheus.Counter
}

// Compile-time check that Recorder implements enigma.Observer.
var _ enigma.Observer = (*Recorder)(nil)

// NewRecorder creates the counters and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		keystrokes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keystrokes_total",
			Help:      "Letters enciphered.",
		}),
		rotorSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rotor_steps_total",
			Help:      "Rotor advances, by slot.",
		}, []string{"rotor"}),
		doubleSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "double_steps_total",
			Help:      "Keystrokes on which the middle rotor stepped on its own notch.",
		}),
	}

	for _, c := range []prometheus.Collector{r.keystrokes, r.rotorSteps, r.doubleSteps} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register machine metrics: %w", err)
		}
	}
	// Expose every slot from the start, even before it first moves.
	for _, l := range slotLabels {
		r.rotorSteps.WithLabelValues(l)
	}
	return r, nil
}

// OnStep counts one keystroke.
func (r *Recorder) OnStep(ev enigma.StepEvent) {
	r.keystrokes.Inc()
	for slot, n := range ev.Steps {
		if n > 0 {
			r.rotorSteps.WithLabelValues(slotLabels[slot]).Add(float64(n))
		}
	}
	if ev.DoubleStep {
		r.doubleSteps.Inc()
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Keystrokes  float64
	RotorSteps  map[string]float64
	DoubleSteps float64
}

// Gather reads the current counter values through g, normally the registry
// a Recorder was registered with.
func Gather(g prometheus.Gatherer) (Snapshot, error) {
	families, err := g.Gather()
	if err != nil {
		return Snapshot{}, fmt.Errorf("gather machine metrics: %w", err)
	}

	s := Snapshot{RotorSteps: make(map[string]float64, machine.Slots)}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			switch mf.GetName() {
			case namespace + "_keystrokes_total":
				s.Keystrokes = v
			case namespace + "_double_steps_total":
				s.DoubleSteps = v
			case namespace + "_rotor_steps_total":
				for _, lp := range m.GetLabel() {
					if lp.GetName() == "rotor" {
						s.RotorSteps[lp.GetValue()] = v
					}
				}
			}
		}
	}
	return s, nil
}
