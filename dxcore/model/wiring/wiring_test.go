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
	"encoding/json"
	stderrors "errors"
	"testing"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"gopkg.in/yaml.v3"
)

func TestParsePermutation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"identity", alphabet.Letters, false},
		{"rotor III", rotorIIIWiring, false},
		{"lowercase", "bdfhjlcprtxvznyeiwgakmusqo", false},

		{"too short", "ABC", true},
		{"too long", alphabet.Letters + "A", true},
		{"repeated letter", "AACDEFGHIJKLMNOPQRSTUVWXYZ", true},
		{"digit", "0BCDEFGHIJKLMNOPQRSTUVWXYZ", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePermutation(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePermutation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var cfgErr *errors.ConfigurationError
				if !stderrors.As(err, &cfgErr) {
					t.Errorf("ParsePermutation() error = %T, want *errors.ConfigurationError", err)
				}
			}
		})
	}
}

func TestPermutation_InverseRoundTrip(t *testing.T) {
	for _, id := range RotorIDs {
		r, err := LookupRotor(id)
		if err != nil {
			t.Fatalf("LookupRotor(%s) error = %v", id, err)
		}
		for i := 0; i < alphabet.Size; i++ {
			l := alphabet.Letter(i)
			if got := r.Wiring.Inverse(r.Wiring.Forward(l)); got != l {
				t.Errorf("rotor %s: Inverse(Forward(%s)) = %s", id, l, got)
			}
		}
	}
}

func TestPermutation_KnownInverse(t *testing.T) {
	// Inverse tables of rotors I and III as printed on wiring charts.
	tests := []struct {
		id   RotorID
		want string
	}{
		{RotorI, "UWYGADFPVZBECKMTHXSLRINQOJ"},
		{RotorIII, "TAGBPCSDQEUFVNZHYIXJWLRKOM"},
		{RotorV, "QCYLXWENFTZOSMVJUDKGIARPHB"},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			r, _ := LookupRotor(tt.id)
			got := make([]byte, alphabet.Size)
			for i := range got {
				got[i] = r.Wiring.Inverse(alphabet.Letter(i)).Byte()
			}
			if string(got) != tt.want {
				t.Errorf("inverse = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPermutation_Validate(t *testing.T) {
	var zero Permutation
	if !zero.IsZero() {
		t.Error("zero Permutation should report IsZero")
	}
	if err := zero.Validate(); err == nil {
		t.Error("zero Permutation should fail Validate")
	}

	p, err := ParsePermutation(rotorIWiring)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if p.String() != rotorIWiring || p.Redacted() != rotorIWiring {
		t.Errorf("String() = %s", p.String())
	}
}

func TestPermutation_Serialization(t *testing.T) {
	p, _ := ParsePermutation(reflectorBWiring)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var fromJSON Permutation
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if fromJSON != p {
		t.Errorf("JSON decoded %s, want %s", fromJSON, p)
	}

	var fromYAML Permutation
	if err := yaml.Unmarshal([]byte(reflectorCWiring), &fromYAML); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if fromYAML.String() != reflectorCWiring {
		t.Errorf("YAML decoded %s", fromYAML)
	}

	if _, err := json.Marshal(Permutation{}); err == nil {
		t.Error("json.Marshal() of zero Permutation should fail")
	}
}

func TestReflectors_AreInvolutions(t *testing.T) {
	for _, id := range ReflectorIDs {
		r, err := LookupReflector(id)
		if err != nil {
			t.Fatalf("LookupReflector(%s) error = %v", id, err)
		}
		if !r.Wiring.IsInvolution() {
			t.Errorf("reflector %s is not an involution", id)
		}
		for i := 0; i < alphabet.Size; i++ {
			l := alphabet.Letter(i)
			if r.Wiring.Forward(r.Wiring.Forward(l)) != l {
				t.Errorf("reflector %s: F(F(%s)) != %s", id, l, l)
			}
		}
	}
}

func TestNewReflectorWiring_RejectsNonInvolution(t *testing.T) {
	// A bijection, but not an involution.
	_, err := NewReflectorWiring(ReflectorB, rotorIWiring)
	if err == nil {
		t.Fatal("NewReflectorWiring() should reject a non-involutive wiring")
	}
	if !errors.IsConfigurationError(err) {
		t.Errorf("error = %T, want *errors.ConfigurationError", err)
	}

	if _, err := NewReflectorWiring(ReflectorB, "YRUHQSLDPX"); err == nil {
		t.Error("NewReflectorWiring() should reject a short wiring")
	}
}

func TestNewRotorWiring(t *testing.T) {
	r, err := NewRotorWiring(RotorIII, rotorIIIWiring, 21)
	if err != nil {
		t.Fatalf("NewRotorWiring() error = %v", err)
	}
	if r.Notch.String() != "V" {
		t.Errorf("Notch = %s, want V", r.Notch)
	}

	if _, err := NewRotorWiring(RotorIII, "BDFHJLCPRTXVZNYEIWGAKMUSQQ", 21); !errors.IsConfigurationError(err) {
		t.Errorf("non-bijective wiring error = %v, want ConfigurationError", err)
	}
	if _, err := NewRotorWiring(RotorIII, rotorIIIWiring, 26); !errors.IsConfigurationError(err) {
		t.Errorf("bad notch error = %v, want ConfigurationError", err)
	}
}

func TestCatalog_Notches(t *testing.T) {
	want := map[RotorID]string{
		RotorI:   "Q",
		RotorII:  "E",
		RotorIII: "V",
		RotorIV:  "J",
		RotorV:   "Z",
	}
	for id, notch := range want {
		r, err := LookupRotor(id)
		if err != nil {
			t.Fatalf("LookupRotor(%s) error = %v", id, err)
		}
		if r.ID != id {
			t.Errorf("LookupRotor(%s).ID = %s", id, r.ID)
		}
		if r.Notch.String() != notch {
			t.Errorf("rotor %s notch = %s, want %s", id, r.Notch, notch)
		}
	}

	if _, err := LookupRotor(RotorID(5)); err == nil {
		t.Error("LookupRotor(5) should fail")
	}
	if _, err := LookupReflector(ReflectorID(-1)); err == nil {
		t.Error("LookupReflector(-1) should fail")
	}
}

func TestParseRotorID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RotorID
		wantErr bool
	}{
		{"I", "I", RotorI, false},
		{"ii lowercase", "ii", RotorII, false},
		{"III", "III", RotorIII, false},
		{"IV", "IV", RotorIV, false},
		{"V", "V", RotorV, false},
		{"digit 3", "3", RotorIII, false},
		{"padded", " IV ", RotorIV, false},

		{"VI", "VI", RotorI, true},
		{"zero", "0", RotorI, true},
		{"empty", "", RotorI, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRotorID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRotorID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRotorID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotorID_String(t *testing.T) {
	tests := []struct {
		id   RotorID
		want string
	}{
		{RotorI, "I"},
		{RotorII, "II"},
		{RotorIII, "III"},
		{RotorIV, "IV"},
		{RotorV, "V"},
		{RotorID(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.id.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRotorID_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RotorID
		wantErr bool
	}{
		{"string", `"IV"`, RotorIV, false},
		{"number", `2`, RotorII, false},
		{"number zero", `0`, RotorI, true},
		{"number too large", `6`, RotorI, true},
		{"unknown string", `"X"`, RotorI, true},
		{"bool", `true`, RotorI, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RotorID
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Errorf("json.Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("json.Unmarshal() = %v, want %v", got, tt.want)
			}
		})
	}

	data, err := json.Marshal(RotorIII)
	if err != nil || string(data) != `"III"` {
		t.Errorf("json.Marshal(RotorIII) = %s, %v", data, err)
	}
	if _, err := json.Marshal(RotorID(7)); err == nil {
		t.Error("json.Marshal() of invalid RotorID should fail")
	}
}

func TestRotorID_YAML(t *testing.T) {
	var ids []RotorID
	if err := yaml.Unmarshal([]byte("[I, II, III]"), &ids); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if len(ids) != 3 || ids[0] != RotorI || ids[1] != RotorII || ids[2] != RotorIII {
		t.Errorf("yaml.Unmarshal() = %v", ids)
	}

	data, err := yaml.Marshal([]RotorID{RotorV, RotorIV})
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if string(data) != "- V\n- IV\n" {
		t.Errorf("yaml.Marshal() = %q", data)
	}
}

func TestParseReflectorID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ReflectorID
		wantErr bool
	}{
		{"A", "A", ReflectorA, false},
		{"b lowercase", "b", ReflectorB, false},
		{"UKW-C", "UKW-C", ReflectorC, false},
		{"ukw-b", "ukw-b", ReflectorB, false},

		{"D", "D", ReflectorA, true},
		{"empty", "", ReflectorA, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReflectorID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseReflectorID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseReflectorID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReflectorID_Serialization(t *testing.T) {
	data, err := json.Marshal(ReflectorC)
	if err != nil || string(data) != `"C"` {
		t.Errorf("json.Marshal(ReflectorC) = %s, %v", data, err)
	}

	var r ReflectorID
	if err := json.Unmarshal([]byte(`"B"`), &r); err != nil || r != ReflectorB {
		t.Errorf("json.Unmarshal() = %v, %v", r, err)
	}
	if err := yaml.Unmarshal([]byte("C"), &r); err != nil || r != ReflectorC {
		t.Errorf("yaml.Unmarshal() = %v, %v", r, err)
	}
	if err := ReflectorID(3).Validate(); err == nil {
		t.Error("Validate() of ReflectorID(3) should fail")
	}
	if got := ReflectorID(3).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}
