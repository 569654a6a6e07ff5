// Package role describes the role a user picked from their recommendations.
package role

import (
	"strconv"
	"strings"
)

// DefaultRank is used when a rank is missing or invalid.
const DefaultRank = 1

// Selection is the role carried from Results into the deep dive and on to
// the external assessment. It lives only for the session.
type Selection struct {
	ID             string
	Name           string
	PersonaContext string
	// Rank is the 1-based position of the role among the recommendations.
	Rank int
}

// Valid reports whether the selection names a role.
func (s Selection) Valid() bool {
	return strings.TrimSpace(s.ID) != "" && strings.TrimSpace(s.Name) != ""
}

// Normalize returns s with Rank defaulted when it is not a positive integer.
func (s Selection) Normalize() Selection {
	if s.Rank < 1 {
		s.Rank = DefaultRank
	}
	return s
}

// ParseRank parses a rank parameter. Empty, non-integer and values below 1
// all yield DefaultRank. The whole string must be an integer: "3abc" is a
// parse failure, not 3.
func ParseRank(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return DefaultRank
	}
	return n
}
