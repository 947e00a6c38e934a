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

package machine

import (
	"encoding/json"
	"strings"
	"testing"

	"dirpx.dev/dxenigma/dxcore/model/plugboard"
	"dirpx.dev/dxenigma/dxcore/model/semver"
	"dirpx.dev/dxenigma/dxcore/model/wiring"
	"gopkg.in/yaml.v3"
)

func keySheet(t *testing.T) Configuration {
	t.Helper()
	pb, err := plugboard.Parse("ML SU KJ NH YT GB VF RE DC")
	if err != nil {
		t.Fatalf("plugboard.Parse() error = %v", err)
	}
	pos, err := ParsePositions("QEV")
	if err != nil {
		t.Fatalf("ParsePositions() error = %v", err)
	}
	return Configuration{
		Rotors:    RotorOrder{wiring.RotorII, wiring.RotorIV, wiring.RotorV},
		Reflector: wiring.ReflectorC,
		Positions: pos,
		Plugboard: pb,
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.Rotors.String(); got != "I-II-III" {
		t.Errorf("Rotors = %s, want I-II-III", got)
	}
	if cfg.Reflector != wiring.ReflectorB {
		t.Errorf("Reflector = %v, want B", cfg.Reflector)
	}
	if cfg.Positions.String() != "AAA" {
		t.Errorf("Positions = %v, want AAA", cfg.Positions)
	}
	if !cfg.Plugboard.IsZero() {
		t.Errorf("Plugboard = %q, want no cables", cfg.Plugboard.String())
	}
	if cfg.Stepping != SteppingDeferred {
		t.Errorf("Stepping = %v, want deferred", cfg.Stepping)
	}
}

func TestConfiguration_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Configuration)
		wantErr  bool
		contains []string
	}{
		{
			name:   "key sheet",
			mutate: func(*Configuration) {},
		},
		{
			name:   "current version",
			mutate: func(c *Configuration) { c.Version = SchemaVersion },
		},
		{
			name:     "future major version",
			mutate:   func(c *Configuration) { c.Version = semver.Version{Major: 2} },
			wantErr:  true,
			contains: []string{"Version"},
		},
		{
			name:     "newer minor version",
			mutate:   func(c *Configuration) { c.Version = semver.Version{Major: 1, Minor: 3} },
			wantErr:  true,
			contains: []string{"unsupported"},
		},
		{
			name:     "unknown rotor",
			mutate:   func(c *Configuration) { c.Rotors[Middle] = wiring.RotorID(12) },
			wantErr:  true,
			contains: []string{"rotors"},
		},
		{
			name:     "unknown reflector",
			mutate:   func(c *Configuration) { c.Reflector = wiring.ReflectorID(9) },
			wantErr:  true,
			contains: []string{"ReflectorID"},
		},
		{
			name:     "bad stepping",
			mutate:   func(c *Configuration) { c.Stepping = Stepping(4) },
			wantErr:  true,
			contains: []string{"Stepping"},
		},
		{
			name: "every violation reported",
			mutate: func(c *Configuration) {
				c.Reflector = wiring.ReflectorID(9)
				c.Stepping = Stepping(4)
				c.Positions[Left] = 40
			},
			wantErr:  true,
			contains: []string{"ReflectorID", "Stepping", "Positions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := keySheet(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, s := range tt.contains {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("Validate() error = %q, want it to mention %q", err, s)
				}
			}
		})
	}
}

func TestConfiguration_Redacted(t *testing.T) {
	cfg := keySheet(t)

	red := cfg.Redacted()
	for _, secret := range []string{"QEV", "ML SU"} {
		if strings.Contains(red, secret) {
			t.Errorf("Redacted() = %q leaks %q", red, secret)
		}
	}
	if !strings.Contains(red, "II-IV-V") || !strings.Contains(red, "pairs:9") {
		t.Errorf("Redacted() = %q, want rotor order and pair count", red)
	}

	full := cfg.String()
	if !strings.Contains(full, "QEV") || !strings.Contains(full, "ML SU") {
		t.Errorf("String() = %q, want positions and plugboard", full)
	}
}

func TestConfiguration_JSON(t *testing.T) {
	cfg := keySheet(t)

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"rotors":["II","IV","V"],"reflector":"C","positions":"QEV","plugboard":"ML SU KJ NH YT GB VF RE DC"}`
	if string(data) != want {
		t.Errorf("json.Marshal() =\n%s\nwant\n%s", data, want)
	}

	var decoded Configuration
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded.String() != cfg.String() {
		t.Errorf("round trip = %s, want %s", decoded, cfg)
	}
}

func TestConfiguration_UnmarshalJSON_Defaults(t *testing.T) {
	var cfg Configuration
	if err := json.Unmarshal([]byte(`{"positions":"ADU","stepping":"pawl"}`), &cfg); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if cfg.Rotors.String() != "I-II-III" || cfg.Reflector != wiring.ReflectorB {
		t.Errorf("missing fields should keep defaults, got %s", cfg)
	}
	if cfg.Positions.String() != "ADU" || cfg.Stepping != SteppingPawl {
		t.Errorf("present fields not applied, got %s", cfg)
	}
}

func TestConfiguration_UnmarshalJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not an object", `[1,2,3]`},
		{"bad plugboard", `{"plugboard":"AB BC"}`},
		{"bad positions", `{"positions":"A"}`},
		{"two rotors", `{"rotors":["I","II"]}`},
		{"future version", `{"version":"2.0.0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Configuration
			if err := json.Unmarshal([]byte(tt.input), &cfg); err == nil {
				t.Errorf("json.Unmarshal(%s) = nil, want error", tt.input)
			}
		})
	}
}

func TestConfiguration_YAML(t *testing.T) {
	doc := `
version: 1.0.0
rotors: [II, IV, V]
reflector: UKW-C
positions: qev
plugboard: ML SU KJ NH YT GB VF RE DC
`
	var cfg Configuration
	if err := yaml.Unmarshal([]byte(doc), &cfg); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	want := keySheet(t)
	want.Version = SchemaVersion
	if cfg.String() != want.String() || cfg.Version != want.Version {
		t.Errorf("yaml.Unmarshal() = %s, want %s", cfg, want)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	for _, line := range []string{"version: 1.0.0", "rotors: [II, IV, V]", "reflector: C", "positions: QEV"} {
		if !strings.Contains(string(out), line) {
			t.Errorf("yaml.Marshal() output missing %q:\n%s", line, out)
		}
	}
	if strings.Contains(string(out), "stepping") {
		t.Errorf("yaml.Marshal() should omit the default stepping rule:\n%s", out)
	}

	var bad Configuration
	if err := yaml.Unmarshal([]byte("reflector: D\n"), &bad); err == nil {
		t.Error("yaml.Unmarshal() should reject reflector D")
	}
}

func TestConfiguration_MarshalInvalid(t *testing.T) {
	cfg := Default()
	cfg.Stepping = Stepping(8)

	_, err := json.Marshal(cfg)
	if err == nil {
		t.Fatal("json.Marshal() should refuse an invalid configuration")
	}
	if _, err := yaml.Marshal(cfg); err == nil {
		t.Error("yaml.Marshal() should refuse an invalid configuration")
	}
}
