package combine

import "sort"

// URLMap maps a player's display name to the site-relative path of the player's profile page.
// It belongs to a single combine year.
//
// Two players sharing a display name in the same year cannot be told apart by name alone.
// The last path seen wins, but the name is remembered so callers can flag the ambiguity.
type URLMap struct {
	Year      int
	paths     map[string]string
	ambiguous map[string]int
}

// NewURLMap creates an empty map for the given year
func NewURLMap(year int) *URLMap {
	return &URLMap{
		Year:      year,
		paths:     make(map[string]string),
		ambiguous: make(map[string]int),
	}
}

// Set records the profile path for a name
func (m *URLMap) Set(name, path string) {
	if _, exists := m.paths[name]; exists {
		if m.ambiguous[name] == 0 {
			m.ambiguous[name] = 1
		}
		m.ambiguous[name]++
	}
	m.paths[name] = path
}

// Get returns the profile path for a name
func (m *URLMap) Get(name string) (string, bool) {
	path, ok := m.paths[name]
	return path, ok
}

// IsAmbiguous reports whether more than one row carried this name
func (m *URLMap) IsAmbiguous(name string) bool {
	return m.ambiguous[name] > 0
}

// Ambiguous returns the sorted names seen more than once
func (m *URLMap) Ambiguous() []string {
	names := make([]string, 0, len(m.ambiguous))
	for name := range m.ambiguous {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct names
func (m *URLMap) Len() int {
	return len(m.paths)
}
