package partial

// Matches reports whether the property at path is selected. It walks the
// path left to right while descending into the selection:
//
//   - an empty selection at any level selects the rest of the path,
//   - a found segment descends into its sub-selection; finding the last
//     segment selects the property, whole, regardless of restrictions
//     below it,
//   - an unknown segment is admitted only by a wildcard at that level,
//   - array-element segments never consume a selector level.
//
// A wildcard next to explicit siblings default-includes anything the
// siblings do not name; the siblings keep their own sub-selections.
//
// Matches is a pure read-only query: it never fails and any number of
// goroutines may call it on the same Selection.
func (s *Selection) Matches(path []PathSegment, ignoreCase bool) bool {
	node := s
	matched := false
	for _, seg := range path {
		if seg.element {
			continue
		}
		if node.IsEmpty() {
			return true
		}
		sub, ok := node.lookup(seg.name, ignoreCase)
		if !ok {
			return node.wildcard
		}
		node, matched = sub, true
	}
	if matched {
		return true
	}
	// The path had no field segments: only a selection with no
	// restrictions, or a wildcarded one, admits it.
	return node.IsEmpty() || node.wildcard
}
