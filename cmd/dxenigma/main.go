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

// Command dxenigma enciphers text on a simulated Enigma I.
//
// The text is taken from the arguments, or from standard input when there
// are none, and sanitised first: accents are stripped, letters upper-cased,
// and anything but A-Z and spaces dropped. The machine starts from the
// default setting (I-II-III, reflector B, AAA, no plugboard) or from a key
// sheet given with -config; individual flags override either.
//
//	dxenigma -rotors "II IV V" -reflector C -positions QEV \
//	    -plugboard "ML SU KJ NH YT GB VF RE DC" the quick brown fox
//
// Exit status is 0 on success, 1 when the text cannot be read or
// enciphered, and 2 for bad flags or an invalid key sheet.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"dirpx.dev/dxenigma/dxcore/enigma"
	"dirpx.dev/dxenigma/dxcore/metrics"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/machine"
	"dirpx.dev/dxenigma/dxcore/model/plugboard"
	"dirpx.dev/dxenigma/dxcore/model/wiring"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	config    string
	save      string
	rotors    string
	reflector string
	positions string
	plugboard string
	stepping  string
	verbose   bool
	metrics   bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dxenigma", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.config, "config", "", "key sheet to load (.yaml, .yml or .json)")
	fs.StringVar(&opts.save, "save", "", "write the effective key sheet to this file and exit")
	fs.StringVar(&opts.rotors, "rotors", "", `rotor order, left to right, e.g. "I II III" or "321"`)
	fs.StringVar(&opts.reflector, "reflector", "", "reflector: A, B or C")
	fs.StringVar(&opts.positions, "positions", "", "start positions, left to right, e.g. AAA")
	fs.StringVar(&opts.plugboard, "plugboard", "", `plugboard pairs, e.g. "AB CD"`)
	fs.StringVar(&opts.stepping, "stepping", "", "stepping rule: deferred or pawl")
	fs.BoolVar(&opts.verbose, "v", false, "trace every keystroke on stderr")
	fs.BoolVar(&opts.metrics, "metrics", false, "print machine counters on stderr when done")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	cfg, err := configure(opts, fs)
	if err != nil {
		logger.Error("invalid machine setting", "error", err)
		return exitUsage
	}
	logger.Debug("machine setting", "config", model.SafeString(cfg, opts.verbose))

	if opts.save != "" {
		if err := machine.SaveFile(opts.save, cfg); err != nil {
			logger.Error("cannot save key sheet", "path", opts.save, "error", err)
			return exitFailed
		}
		logger.Info("key sheet saved", "path", opts.save)
		return exitOK
	}

	text, err := input(fs.Args(), stdin)
	if err != nil {
		logger.Error("cannot read input", "error", err)
		return exitFailed
	}

	machineOpts := []enigma.Option{enigma.WithLogger(logger)}
	var reg *prometheus.Registry
	if opts.metrics {
		reg = prometheus.NewRegistry()
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			logger.Error("cannot set up metrics", "error", err)
			return exitFailed
		}
		machineOpts = append(machineOpts, enigma.WithObserver(rec))
	}

	out, err := enigma.Encode(enigma.Sanitize(text), cfg, machineOpts...)
	if err != nil {
		logger.Error("encipher failed", "error", err)
		return exitFailed
	}
	fmt.Fprintln(stdout, out)

	if reg != nil {
		if err := printMetrics(stderr, reg); err != nil {
			logger.Error("cannot read metrics", "error", err)
			return exitFailed
		}
	}
	return exitOK
}

// configure starts from the key sheet (or the default setting) and applies
// every flag that was given explicitly.
func configure(opts options, fs *flag.FlagSet) (machine.Configuration, error) {
	cfg := machine.Default()
	if opts.config != "" {
		loaded, err := machine.LoadFile(opts.config)
		if err != nil {
			return machine.Configuration{}, err
		}
		cfg = loaded
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "rotors":
			cfg.Rotors, err = machine.ParseRotorOrder(opts.rotors)
		case "reflector":
			cfg.Reflector, err = wiring.ParseReflectorID(opts.reflector)
		case "positions":
			cfg.Positions, err = machine.ParsePositions(opts.positions)
		case "plugboard":
			cfg.Plugboard, err = plugboard.Parse(opts.plugboard)
		case "stepping":
			cfg.Stepping, err = machine.ParseStepping(opts.stepping)
		}
		if err != nil {
			err = fmt.Errorf("-%s: %w", f.Name, err)
		}
	})
	if err != nil {
		return machine.Configuration{}, err
	}
	if err := cfg.Validate(); err != nil {
		return machine.Configuration{}, err
	}
	return cfg, nil
}

func input(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(string(data)), " "), nil
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	snap, err := metrics.Gather(g)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "keystrokes: %.0f\n", snap.Keystrokes)
	fmt.Fprintf(w, "double steps: %.0f\n", snap.DoubleSteps)

	slots := make([]string, 0, len(snap.RotorSteps))
	for slot := range snap.RotorSteps {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	for _, slot := range slots {
		fmt.Fprintf(w, "%s rotor steps: %.0f\n", slot, snap.RotorSteps[slot])
	}
	return nil
}
