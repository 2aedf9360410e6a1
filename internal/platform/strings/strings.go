// Package strings provides tiny string helpers shared across the platform
package strings

// IfEmpty returns def when xs is empty, xs otherwise
func IfEmpty(xs, def []string) []string {
	if len(xs) == 0 {
		return def
	}
	return xs
}

// MustString panics with label when s is empty
func MustString(s, label string) string {
	if s == "" {
		panic("empty " + label)
	}
	return s
}

// MustPrefix requires a leading slash route prefix or empty string
func MustPrefix(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '/' {
		panic("route prefix must begin with /: " + p)
	}
	return p
}
