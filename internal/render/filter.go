package render

import "strings"

// SeverityFilter decides whether a warning line seen outside any task block
// is worth keeping in filtered output. Ansible prints a fair amount of
// pre-play noise (host pattern notices and the like) that would drown a
// filtered view; genuine errors must still surface. Matching is best-effort
// substring work, so both lists are configurable.
type SeverityFilter struct {
	Allow []string // keep the line if any of these appears
	Deny  []string // drop the line if any of these appears, even on allow match
}

// DefaultSeverityFilter returns the built-in keyword lists.
func DefaultSeverityFilter() SeverityFilter {
	return SeverityFilter{
		Allow: []string{"error", "fatal", "failed", "unreachable", "deprecat", "critical"},
		Deny:  []string{"host pattern"},
	}
}

// Keep reports whether a stripped warning line passes the filter.
func (f SeverityFilter) Keep(stripped string) bool {
	s := strings.ToLower(stripped)
	for _, kw := range f.Deny {
		if kw != "" && strings.Contains(s, strings.ToLower(kw)) {
			return false
		}
	}
	for _, kw := range f.Allow {
		if kw != "" && strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
