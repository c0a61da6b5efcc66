// Package theme models the light/dark UI preference and its cookie-backed storage.
package theme

// Theme is the two-valued UI colour preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is used whenever no valid preference is available.
const Default = Light

// IsTheme reports whether v names a supported theme. Matching is exact.
func IsTheme(v string) bool {
	switch Theme(v) {
	case Light, Dark:
		return true
	default:
		return false
	}
}

// Parse converts v into a Theme.
func Parse(v string) (Theme, bool) {
	if !IsTheme(v) {
		return "", false
	}
	return Theme(v), true
}

// Valid reports whether t is one of the supported themes.
func (t Theme) Valid() bool {
	return IsTheme(string(t))
}

// Opposite returns the theme a toggle switches to. Anything other than Light
// toggles to Light.
func (t Theme) Opposite() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

func (t Theme) String() string {
	return string(t)
}

// Resolve returns candidate when it names a theme and prev otherwise, so that
// unknown submissions leave the current preference untouched.
func Resolve(prev Theme, candidate string) Theme {
	if next, ok := Parse(candidate); ok {
		return next
	}
	return prev
}

// OrDefault returns t when valid and fallback otherwise. An invalid fallback
// yields Default.
func OrDefault(t, fallback Theme) Theme {
	if t.Valid() {
		return t
	}
	if fallback.Valid() {
		return fallback
	}
	return Default
}
