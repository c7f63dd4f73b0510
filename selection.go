package partial

import (
	"sort"
	"strings"
)

// Selection is the parsed form of a field selector. Each node maps the
// field names selected at one nesting level to their sub-selections.
// An empty Selection (no entries, no wildcard) imposes no filtering at
// all; Matches reports true for every path against it.
//
// A Selection is immutable once Parse returns and is safe for concurrent
// Matches calls.
type Selection struct {
	entries  map[string]*Selection
	folded   map[string]*Selection
	wildcard bool
}

// IsEmpty reports whether the selection imposes no filtering.
func (s *Selection) IsEmpty() bool {
	return s == nil || len(s.entries) == 0 && !s.wildcard
}

// Wildcard reports whether a bare * was selected at this level.
func (s *Selection) Wildcard() bool {
	return s != nil && s.wildcard
}

// Len returns the number of field names selected at this level.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entry returns the sub-selection of a field selected at this level.
// The lookup is always case-sensitive; Matches applies case folding.
func (s *Selection) Entry(name string) (*Selection, bool) {
	if s == nil {
		return nil, false
	}
	sub, ok := s.entries[name]
	return sub, ok
}

// add returns the sub-selection for name, creating it on first use.
// Selecting the same name again yields the existing node, which is how
// repeated selectors (including desugared slash chains) merge.
func (s *Selection) add(name string) *Selection {
	if s.entries == nil {
		s.entries = make(map[string]*Selection)
	}
	sub := s.entries[name]
	if sub == nil {
		sub = &Selection{}
		s.entries[name] = sub
	}
	return sub
}

// merge unions t into s, field name by field name, OR-ing wildcards.
func (s *Selection) merge(t *Selection) {
	if t == nil {
		return
	}
	s.wildcard = s.wildcard || t.wildcard
	for name, sub := range t.entries {
		s.add(name).merge(sub)
	}
}

// seal builds the case-folded lookup index for the whole tree. The parser
// calls it once on the finished root; stored keys keep their original
// case. Sibling names that fold to the same key are unioned in the index
// only, so case-insensitive matching sees both sub-selections.
func (s *Selection) seal() {
	if len(s.entries) == 0 {
		return
	}
	s.folded = make(map[string]*Selection, len(s.entries))
	for _, name := range s.names() {
		sub := s.entries[name]
		sub.seal()
		key := strings.ToLower(name)
		if prev, ok := s.folded[key]; ok {
			union := &Selection{}
			union.merge(prev)
			union.merge(sub)
			union.seal()
			s.folded[key] = union
		} else {
			s.folded[key] = sub
		}
	}
}

// lookup finds the sub-selection for a path segment name. Case-insensitive
// lookups go through the folded index so they stay O(1).
func (s *Selection) lookup(name string, ignoreCase bool) (*Selection, bool) {
	if ignoreCase {
		sub, ok := s.folded[strings.ToLower(name)]
		return sub, ok
	}
	sub, ok := s.entries[name]
	return sub, ok
}

func (s *Selection) names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the selection in selector syntax, with the wildcard
// first and field names in sorted order. Parsing the result yields a
// tree equal to s.
func (s *Selection) String() string {
	if s == nil {
		return ""
	}
	var sb strings.Builder
	s.write(&sb)
	return sb.String()
}

func (s *Selection) write(sb *strings.Builder) {
	first := true
	if s.wildcard {
		sb.WriteByte('*')
		first = false
	}
	for _, name := range s.names() {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(name)
		if sub := s.entries[name]; !sub.IsEmpty() {
			sb.WriteByte('(')
			sub.write(sb)
			sb.WriteByte(')')
		}
	}
}
