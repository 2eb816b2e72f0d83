// Package locator resolves element locator descriptions into concrete
// backend selectors.
package locator

import (
	"fmt"
	"strings"
)

// Platform identifies a mobile platform as reported by the device connection.
type Platform string

// Platform values.
const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Strategy identifies how a selector addresses elements.
type Strategy string

// Strategy values.
const (
	ByID     Strategy = "id"     // Test/resource identifier
	ByLabel  Strategy = "label"  // Accessibility label
	ByText   Strategy = "text"   // Visible text
	ByType   Strategy = "type"   // Element kind/class
	ByTraits Strategy = "traits" // Accessibility trait set
	ByRaw    Strategy = "raw"    // Pre-resolved value, passed through unchanged
)

// Mode is the default addressing mode applied to plain strings without a
// sigil. Action methods resolve with ModeText; element-oriented methods
// resolve with ModeType.
type Mode string

// Mode values.
const (
	ModeText Mode = "text"
	ModeType Mode = "type"
)

// Selector is a concrete, backend-understood selector value.
// Pure data structure - the backend decides how to match it.
type Selector struct {
	Strategy Strategy
	Value    string
	Traits   []string    // Set only for ByTraits
	Raw      interface{} // Set only for ByRaw pass-through
	Within   *Selector   // Context scope: match only descendants of Within
}

// ID returns a selector addressing elements by test identifier.
func ID(value string) Selector {
	return Selector{Strategy: ByID, Value: value}
}

// Label returns a selector addressing elements by accessibility label.
func Label(value string) Selector {
	return Selector{Strategy: ByLabel, Value: value}
}

// Text returns a selector addressing elements by visible text.
func Text(value string) Selector {
	return Selector{Strategy: ByText, Value: value}
}

// Type returns a selector addressing elements by element kind.
func Type(value string) Selector {
	return Selector{Strategy: ByType, Value: value}
}

// TraitSet returns a selector addressing elements by accessibility traits.
func TraitSet(traits ...string) Selector {
	return Selector{Strategy: ByTraits, Traits: traits}
}

// Raw returns a pass-through selector carrying an already-resolved
// backend value.
func Raw(value interface{}) Selector {
	return Selector{Strategy: ByRaw, Raw: value}
}

// DescendantOf returns a copy of s scoped to descendants of ctx.
// Composition is one-directional: ctx is the outer scope, s the inner
// match. Selectors are never merged.
func (s Selector) DescendantOf(ctx Selector) Selector {
	scoped := s
	scoped.Within = &ctx
	return scoped
}

// Describe returns a human-readable description for logs.
func (s Selector) Describe() string {
	var desc string
	switch s.Strategy {
	case ByID:
		desc = "#" + s.Value
	case ByLabel:
		desc = "~" + s.Value
	case ByText:
		desc = fmt.Sprintf("text=%q", s.Value)
	case ByType:
		desc = "type=" + s.Value
	case ByTraits:
		desc = "traits=" + strings.Join(s.Traits, ",")
	case ByRaw:
		desc = fmt.Sprintf("raw(%v)", s.Raw)
	default:
		desc = string(s.Strategy)
	}
	if s.Within != nil {
		return s.Within.Describe() + " > " + desc
	}
	return desc
}
