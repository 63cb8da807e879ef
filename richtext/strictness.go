package richtext

import (
	"fmt"
	"strings"
)

// Strictness controls how toData treats markup that stored RichText does
// not allow.
//
// Strict removes disallowed elements and attributes and also attributes with
// invalid values. Loose only removes what the schema does not know at all.
// Legacy keeps everything the editor produced, as older integrations did.
//
// Unlike string-typed modes such as fontmapper.Mode, Strictness is ordered:
// a higher value accepts more. Its text form is used in JSON and YAML.
type Strictness int

const (
	strictnessUnset Strictness = iota
	StrictnessStrict
	StrictnessLoose
	StrictnessLegacy
)

var strictnessNames = map[Strictness]string{
	StrictnessStrict: "strict",
	StrictnessLoose:  "loose",
	StrictnessLegacy: "legacy",
}

// Strictnesses lists all valid modes, strictest first.
func Strictnesses() []Strictness {
	return []Strictness{StrictnessStrict, StrictnessLoose, StrictnessLegacy}
}

func (s Strictness) String() string {
	if name, ok := strictnessNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strictness(%d)", int(s))
}

// Valid reports whether s is one of the defined modes.
func (s Strictness) Valid() bool {
	_, ok := strictnessNames[s]
	return ok
}

// ParseStrictness resolves a mode by name, ignoring case.
func ParseStrictness(name string) (Strictness, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for strictness, candidate := range strictnessNames {
		if candidate == normalized {
			return strictness, nil
		}
	}
	return strictnessUnset, fmt.Errorf("invalid strictness %q: must be one of strict, loose, legacy", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strictness) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid strictness %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strictness) UnmarshalText(text []byte) error {
	parsed, err := ParseStrictness(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
