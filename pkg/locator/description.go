package locator

import "gopkg.in/yaml.v3"

// Description is a caller-supplied, possibly platform-varying
// specification of which on-screen element an action targets. It is a
// tagged union with two cases: a plain string (optionally prefixed with
// a `#` or `~` sigil) or a structured per-platform descriptor. A third
// case carries an already-resolved Selector for advanced callers.
type Description struct {
	kind       descKind
	str        string
	structured Structured
	selector   Selector
}

type descKind int

const (
	kindString descKind = iota
	kindStructured
	kindSelector
)

// Structured is the map form of a locator description. Platform keys are
// checked first and short-circuit everything else for the active
// platform; of the remaining keys at most one is honored, in the fixed
// priority order ID > Label > Text > Type > Traits.
type Structured struct {
	Android *Description `yaml:"android"`
	IOS     *Description `yaml:"ios"`
	ID      string       `yaml:"id"`
	Label   string       `yaml:"label"`
	Text    string       `yaml:"text"`
	Type    string       `yaml:"type"`
	Traits  []string     `yaml:"traits"`

	// passthrough holds an unrecognized mapping captured verbatim from
	// YAML. It resolves to a ByRaw selector.
	passthrough map[string]interface{}
}

// FromString returns the string form of a description.
func FromString(s string) Description {
	return Description{kind: kindString, str: s}
}

// FromStruct returns the structured form of a description.
func FromStruct(s Structured) Description {
	return Description{kind: kindStructured, structured: s}
}

// FromSelector wraps an already-resolved selector. Resolve returns it
// unchanged.
func FromSelector(sel Selector) Description {
	return Description{kind: kindSelector, selector: sel}
}

// PerPlatform is shorthand for a description with only platform keys,
// each a plain string.
func PerPlatform(ios, android string) Description {
	iosDesc := FromString(ios)
	androidDesc := FromString(android)
	return FromStruct(Structured{IOS: &iosDesc, Android: &androidDesc})
}

// IsZero reports whether the description was never set.
func (d Description) IsZero() bool {
	return d.kind == kindString && d.str == ""
}

// UnmarshalYAML allows a Description to be written as a scalar or a
// mapping in scenario files.
func (d *Description) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.kind = kindString
		d.str = node.Value
		return nil
	}

	var s Structured
	if err := node.Decode(&s); err != nil {
		return err
	}

	if s.isEmpty() {
		// No recognized key: keep the raw mapping for pass-through.
		var raw map[string]interface{}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		s.passthrough = raw
	}

	d.kind = kindStructured
	d.structured = s
	return nil
}

// Transform returns a copy of the description with fn applied to every
// string value it carries, including nested platform branches. The
// tagged case and key layout are preserved. Used for variable expansion
// in scenario files; pass-through payloads are left untouched.
func (d Description) Transform(fn func(string) string) Description {
	switch d.kind {
	case kindString:
		return FromString(fn(d.str))
	case kindStructured:
		s := d.structured
		if s.Android != nil {
			sub := s.Android.Transform(fn)
			s.Android = &sub
		}
		if s.IOS != nil {
			sub := s.IOS.Transform(fn)
			s.IOS = &sub
		}
		s.ID = fn(s.ID)
		s.Label = fn(s.Label)
		s.Text = fn(s.Text)
		s.Type = fn(s.Type)
		if len(s.Traits) > 0 {
			traits := make([]string, len(s.Traits))
			for i, tr := range s.Traits {
				traits[i] = fn(tr)
			}
			s.Traits = traits
		}
		return FromStruct(s)
	default:
		return d
	}
}

// rawValue reconstructs the caller-supplied payload for pass-through
// resolution. A captured YAML mapping travels verbatim; otherwise the
// set platform branches are rebuilt into a map, so a description whose
// only branch targets the other platform stays lossless.
func (s Structured) rawValue() interface{} {
	if s.passthrough != nil {
		return s.passthrough
	}
	raw := make(map[string]interface{})
	if s.Android != nil {
		raw["android"] = s.Android.rawValue()
	}
	if s.IOS != nil {
		raw["ios"] = s.IOS.rawValue()
	}
	return raw
}

func (d Description) rawValue() interface{} {
	switch d.kind {
	case kindString:
		return d.str
	case kindStructured:
		return d.structured.rawValue()
	default:
		return d.selector
	}
}

func (s Structured) isEmpty() bool {
	return s.Android == nil &&
		s.IOS == nil &&
		s.ID == "" &&
		s.Label == "" &&
		s.Text == "" &&
		s.Type == "" &&
		len(s.Traits) == 0
}
