package wizkid

import "strings"

// Filter combines a free-text query with an optional role selector. The
// two conditions are ANDed; an empty filter matches everything.
type Filter struct {
	Query string
	Role  Role
}

// Matches reports whether the wizkid survives the filter. The text match
// is a case-insensitive substring test against name or email; the role
// match, when set, requires exact equality. Fired wizkids are never
// filtered out by status.
func (f Filter) Matches(w Wizkid) bool {
	if f.Role != "" && w.Role() != f.Role {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(w.Name()), q) ||
		strings.Contains(strings.ToLower(w.Email()), q)
}

// Apply keeps the relative order of survivors; the input is not modified.
func (f Filter) Apply(list []Wizkid) []Wizkid {
	out := make([]Wizkid, 0, len(list))
	for _, w := range list {
		if f.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}
