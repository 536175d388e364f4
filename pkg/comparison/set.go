package comparison

import (
	"github.com/agentstation/toolcompare/pkg/tools"
)

// Set is an ordered list of tool summaries, unique by ID.
// Methods never modify the receiver; mutating helpers return a new Set.
type Set []tools.Tool

// Len returns the number of tools in the set.
func (s Set) Len() int {
	return len(s)
}

// Contains reports whether a tool with id is in the set.
func (s Set) Contains(id string) bool {
	return s.Index(id) >= 0
}

// Index returns the position of id in the set, or -1.
func (s Set) Index(id string) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}

// IDs returns the tool identifiers in order.
func (s Set) IDs() []string {
	ids := make([]string, len(s))
	for i := range s {
		ids[i] = s[i].ID
	}
	return ids
}

// With returns a copy of s with tool appended. If the ID is already present s is copied unchanged.
func (s Set) With(tool tools.Tool) Set {
	out := s.Clone()
	if out.Contains(tool.ID) {
		return out
	}
	return append(out, tool.Clone())
}

// Without returns a copy of s with id removed.
func (s Set) Without(id string) Set {
	out := make(Set, 0, len(s))
	for i := range s {
		if s[i].ID != id {
			out = append(out, s[i].Clone())
		}
	}
	return out
}

// Clone returns a deep copy of s. A nil set clones to an empty, non-nil set.
func (s Set) Clone() Set {
	out := make(Set, len(s), len(s)+1)
	for i := range s {
		out[i] = s[i].Clone()
	}
	return out
}

// Normalize drops entries without an ID, duplicates after the first occurrence,
// and anything beyond max. It returns the cleaned set and how many entries were dropped.
func Normalize(s Set, max int) (Set, int) {
	out := make(Set, 0, len(s))
	seen := make(map[string]struct{}, len(s))
	for i := range s {
		id := tools.NormalizeID(s[i].ID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		if max > 0 && len(out) >= max {
			continue
		}
		seen[id] = struct{}{}
		tool := s[i].Clone()
		tool.ID = id
		out = append(out, tool)
	}
	return out, len(s) - len(out)
}
