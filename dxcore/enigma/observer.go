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
	"io"
	"log/slog"
)

// Observer receives one StepEvent per enciphered letter. Observers run
// synchronously on the goroutine that drives the machine and must not call
// back into it.
type Observer interface {
	OnStep(StepEvent)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(StepEvent)

// OnStep calls f(ev).
func (f ObserverFunc) OnStep(ev StepEvent) {
	f(ev)
}

// Option customises a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for construction, reset and per-keystroke
// trace records. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithObserver registers an observer. It may be given more than once.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
