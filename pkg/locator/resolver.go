package locator

import "strings"

// Resolver maps locator descriptions to concrete selectors. It is a pure
// value: resolution performs no I/O, keeps no state, and is a total,
// deterministic function of (description, mode, platform). The platform
// argument must be freshly queried from the live device connection by
// the caller on every call, never cached.
type Resolver struct{}

// Resolve produces the selector for a description under the given
// default mode and the currently active platform.
//
// String form: a leading '#' selects by identifier, a leading '~' by
// accessibility label; otherwise the whole string is matched by visible
// text (ModeText) or element kind (ModeType).
//
// Structured form: a platform key matching the active platform recurses
// on its sub-description and short-circuits every other key. Otherwise
// the first present key of ID, Label, Text, Type, Traits wins, in that
// order. A structured description with no recognized key passes through
// unchanged as a raw selector; resolution never fails.
func (Resolver) Resolve(d Description, mode Mode, platform Platform) Selector {
	switch d.kind {
	case kindSelector:
		return d.selector
	case kindStructured:
		return Resolver{}.resolveStructured(d.structured, mode, platform)
	default:
		return resolveString(d.str, mode)
	}
}

// ResolveScoped resolves primary under mode and, when ctx is non-zero,
// scopes it to descendants of the resolved context. The context is
// always resolved with ModeType; the primary's mode does not propagate.
func (r Resolver) ResolveScoped(primary Description, mode Mode, ctx Description, platform Platform) Selector {
	sel := r.Resolve(primary, mode, platform)
	if ctx.IsZero() {
		return sel
	}
	return sel.DescendantOf(r.Resolve(ctx, ModeType, platform))
}

func (r Resolver) resolveStructured(s Structured, mode Mode, platform Platform) Selector {
	if s.Android != nil && platform == PlatformAndroid {
		return r.Resolve(*s.Android, mode, platform)
	}
	if s.IOS != nil && platform == PlatformIOS {
		return r.Resolve(*s.IOS, mode, platform)
	}

	switch {
	case s.ID != "":
		return ID(s.ID)
	case s.Label != "":
		return Label(s.Label)
	case s.Text != "":
		return Text(s.Text)
	case s.Type != "":
		return Type(s.Type)
	case len(s.Traits) > 0:
		return TraitSet(s.Traits...)
	}

	// Escape hatch: no recognized key for this platform means the
	// description passes through unchanged.
	return Raw(s.rawValue())
}

func resolveString(s string, mode Mode) Selector {
	switch {
	case strings.HasPrefix(s, "#"):
		return ID(s[1:])
	case strings.HasPrefix(s, "~"):
		return Label(s[1:])
	case mode == ModeText:
		return Text(s)
	default:
		return Type(s)
	}
}
