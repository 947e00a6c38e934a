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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantCode int
		wantOut  string
	}{
		{
			name:    "default setting",
			args:    []string{"AAAAA"},
			wantOut: "BDZGO\n",
		},
		{
			name:    "arguments are sanitised and joined",
			args:    []string{"Hello,", "world!"},
			wantOut: "ILBDA AMTAZ\n",
		},
		{
			name:    "stdin",
			stdin:   "hello\nworld\n",
			wantOut: "ILBDA AMTAZ\n",
		},
		{
			name: "full key sheet from flags",
			args: []string{
				"-rotors", "II IV V", "-reflector", "C", "-positions", "QEV",
				"-plugboard", "ML SU KJ NH YT GB VF RE DC",
				"the quick brown fox jumps over the lazy dog",
			},
			wantOut: "HFU EJFHE GVAGS DNB QYUAY JNNS BUV DBLC RGW\n",
		},
		{
			name:    "pawl stepping",
			args:    []string{"-positions", "ADU", "-stepping", "pawl", "AAAA"},
			wantOut: "EQIB\n",
		},
		{
			name:    "deferred stepping",
			args:    []string{"-positions", "ADU", "AAAA"},
			wantOut: "EQIC\n",
		},
		{
			name:     "bad rotor",
			args:     []string{"-rotors", "I II IX", "AAA"},
			wantCode: exitUsage,
		},
		{
			name:     "reused plug",
			args:     []string{"-plugboard", "AB BC", "AAA"},
			wantCode: exitUsage,
		},
		{
			name:     "unknown flag",
			args:     []string{"-ring", "AAA"},
			wantCode: exitUsage,
		},
		{
			name:     "missing key sheet",
			args:     []string{"-config", "/nonexistent/sheet.yaml", "AAA"},
			wantCode: exitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("run() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if tt.wantCode == exitOK && stdout.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantOut)
			}
		})
	}
}

func TestRun_ConfigFileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	sheet := "rotors: [II, IV, V]\nreflector: C\npositions: QEV\nplugboard: ML SU KJ NH YT GB VF RE DC\n"
	if err := os.WriteFile(path, []byte(sheet), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", path, "THEQUICKBROWNFOX"}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("run() = %d\nstderr: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "HFUEJFHEGVAGSDNB\n" {
		t.Errorf("stdout = %q, want HFUEJFHEGVAGSDNB", got)
	}

	stdout.Reset()
	if code := run([]string{"-config", path, "-plugboard", "", "-reflector", "B", "-rotors", "I II III", "-positions", "AAA", "AAAAA"}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("run() = %d\nstderr: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "BDZGO\n" {
		t.Errorf("stdout with overrides = %q, want BDZGO", got)
	}
}

func TestRun_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.json")

	var stdout, stderr bytes.Buffer
	args := []string{"-save", path, "-rotors", "II IV V", "-reflector", "C", "-positions", "QEV", "-plugboard", "ML SU KJ NH YT GB VF RE DC"}
	if code := run(args, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("run(-save) = %d\nstderr: %s", code, stderr.String())
	}

	stdout.Reset()
	if code := run([]string{"-config", path, "THEQUICKBROWNFOX"}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("run(-config) = %d\nstderr: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "HFUEJFHEGVAGSDNB\n" {
		t.Errorf("stdout = %q, want HFUEJFHEGVAGSDNB", got)
	}
}

func TestRun_VerboseAndMetrics(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-v", "-metrics", "-positions", "ADU", "AAAA"}, strings.NewReader(""), &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d\nstderr: %s", code, stderr.String())
	}

	logs := stderr.String()
	for _, want := range []string{
		"run=",
		"msg=keystroke",
		`msg="left rotor rotated"`,
		"keystrokes: 4",
		"double steps: 1",
		"middle rotor steps: 3",
	} {
		if !strings.Contains(logs, want) {
			t.Errorf("stderr missing %q:\n%s", want, logs)
		}
	}
}
