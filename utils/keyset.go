package utils

import "strings"

// KeySet tracks keys that were already seen. Keys are compared
// case-insensitively with surrounding whitespace removed.
type KeySet struct {
	seen map[string]struct{}
}

// NewKeySet creates an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[string]struct{})}
}

func normaliseKey(parts []string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(norm, "\x1f")
}

// Add returns true if the key was newly added, false if already present.
// Multiple parts form a composite key.
func (s *KeySet) Add(parts ...string) bool {
	k := normaliseKey(parts)
	if _, exists := s.seen[k]; exists {
		return false
	}
	s.seen[k] = struct{}{}
	return true
}

// Contains reports whether the key has already been added.
func (s *KeySet) Contains(parts ...string) bool {
	_, exists := s.seen[normaliseKey(parts)]
	return exists
}

// Size returns the number of unique keys tracked.
func (s *KeySet) Size() int {
	return len(s.seen)
}
