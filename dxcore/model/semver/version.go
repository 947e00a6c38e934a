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

// Package semver versions the dxenigma key-sheet format.
//
// Every key sheet (a YAML or JSON machine configuration) may declare which
// revision of the format it was written for. The machine accepts any sheet
// whose major version matches the one it understands; minor and patch
// revisions only ever add optional fields.
//
// Parsing and precedence follow Semantic Versioning 2.0.0 via
// github.com/blang/semver/v4.
package semver

import (
	"encoding/json"
	"fmt"
	"strings"

	dxerrors "dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	bsemver "github.com/blang/semver/v4"

	"gopkg.in/yaml.v3"
)

// Version is a SemVer 2.0.0 version: Major.Minor.Patch[-Prerelease][+Metadata].
//
// The zero value is 0.0.0. In a key sheet it means "no version declared",
// which the machine treats as the current format.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Metadata   string
}

// Compile-time check that Version implements model.Model interface.
var _ model.Model = (*Version)(nil)

// ParseVersion parses a SemVer string. A leading "v" is tolerated.
//
//	ParseVersion("1.0.0")         -> Version{Major: 1}
//	ParseVersion("v1.2.0-rc.1")   -> Version{1, 2, 0, "rc.1", ""}
func ParseVersion(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")

	bv, err := bsemver.Parse(s)
	if err != nil {
		return Version{}, &dxerrors.ParseError{Type: "Version", Value: s}
	}
	return fromBlangSemver(bv), nil
}

// String returns the canonical textual form.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Metadata != "" {
		s += "+" + v.Metadata
	}
	return s
}

func (v Version) toBlangSemver() (bsemver.Version, error) {
	return bsemver.Parse(v.String())
}

func fromBlangSemver(bv bsemver.Version) Version {
	var prerelease string
	if len(bv.Pre) > 0 {
		parts := make([]string, len(bv.Pre))
		for i, p := range bv.Pre {
			parts[i] = p.String()
		}
		prerelease = strings.Join(parts, ".")
	}

	return Version{
		Major:      int(bv.Major),
		Minor:      int(bv.Minor),
		Patch:      int(bv.Patch),
		Prerelease: prerelease,
		Metadata:   strings.Join(bv.Build, "."),
	}
}

// Validate checks that all components are non-negative and that the
// prerelease and metadata identifiers are well-formed.
func (v Version) Validate() error {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return &dxerrors.ConfigurationError{
			Type:   "Version",
			Reason: "components must be non-negative",
			Value:  v.String(),
		}
	}
	if _, err := v.toBlangSemver(); err != nil {
		return &dxerrors.ConfigurationError{
			Type:   "Version",
			Reason: err.Error(),
			Value:  v.String(),
		}
	}
	return nil
}

// TypeName returns "Version".
func (v Version) TypeName() string {
	return "Version"
}

// Redacted returns the same string as String.
func (v Version) Redacted() string {
	return v.String()
}

// IsZero reports whether v is 0.0.0 with no prerelease or metadata.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Compare returns -1, 0 or +1 depending on SemVer precedence. Build
// metadata is ignored.
func (v Version) Compare(other Version) int {
	bv, errV := v.toBlangSemver()
	bo, errO := other.toBlangSemver()
	if errV != nil || errO != nil {
		return compareCore(v, other)
	}
	return bv.Compare(bo)
}

func compareCore(a, b Version) int {
	for _, d := range [3]int{a.Major - b.Major, a.Minor - b.Minor, a.Patch - b.Patch} {
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
	}
	return 0
}

// Less reports whether v has lower precedence than other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal reports whether v and other have the same precedence.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Compatible reports whether a document written for v can be read by a
// reader that implements supported: same major version, and not newer than
// supported.
func (v Version) Compatible(supported Version) bool {
	return v.Major == supported.Major && !supported.Less(v)
}

// MarshalJSON encodes v as a string.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a version string.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes v as a string.
func (v Version) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML decodes a version scalar.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
