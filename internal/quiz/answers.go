// Package quiz collects psychology quiz answers and serializes them for the
// profile store.
package quiz

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
)

// Answer is either a single token or a set of tokens (multi-select).
type Answer struct {
	values []string
	multi  bool
}

// Single creates a single-token answer.
func Single(v string) Answer {
	return Answer{values: []string{v}}
}

// Multi creates a multi-select answer. An empty set is allowed.
func Multi(vs ...string) Answer {
	return Answer{values: slices.Clone(vs), multi: true}
}

// IsMulti reports whether the answer came from a multi-select question.
func (a Answer) IsMulti() bool { return a.multi }

// Value returns the single token, or the first token of a multi answer.
func (a Answer) Value() string {
	if len(a.values) == 0 {
		return ""
	}
	return a.values[0]
}

// Values returns a copy of all tokens.
func (a Answer) Values() []string {
	return slices.Clone(a.values)
}

// Equal compares kind and tokens. Multi answers are sets: token order and
// repeats do not matter.
func (a Answer) Equal(b Answer) bool {
	if a.multi != b.multi {
		return false
	}
	if !a.multi {
		return a.Value() == b.Value()
	}
	return slices.Equal(tokenSet(a.values), tokenSet(b.values))
}

func tokenSet(vs []string) []string {
	set := slices.Clone(vs)
	slices.Sort(set)
	return slices.Compact(set)
}

func (a Answer) String() string {
	if a.multi {
		return fmt.Sprintf("%q", a.values)
	}
	return a.Value()
}

// MarshalJSON encodes a single answer as a string and a multi answer as an
// array of strings.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		vs := a.values
		if vs == nil {
			vs = []string{}
		}
		return json.Marshal(vs)
	}
	return json.Marshal(a.Value())
}

// UnmarshalJSON accepts a string or an array of strings.
func (a *Answer) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = Single(s)
		return nil
	}
	var vs []string
	if err := json.Unmarshal(b, &vs); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings: %w", err)
	}
	*a = Multi(vs...)
	return nil
}

// Answers maps question index to answer.
type Answers map[int]Answer

// Indexes returns the answered question indexes in ascending order.
func (a Answers) Indexes() []int {
	idx := make([]int, 0, len(a))
	for i := range a {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Equal reports whether both maps hold the same answers for the same indexes.
func (a Answers) Equal(b Answers) bool {
	if len(a) != len(b) {
		return false
	}
	for i, av := range a {
		bv, ok := b[i]
		if !ok || !av.Equal(bv) {
			return false
		}
	}
	return true
}

// Clone returns a copy of a.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	for i, v := range a {
		out[i] = Answer{values: slices.Clone(v.values), multi: v.multi}
	}
	return out
}
