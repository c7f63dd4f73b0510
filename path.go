package partial

import "strconv"

// PathSegment is one step of a candidate property path: either an object
// field or an array element. Array elements are transparent to matching;
// they exist so hosts can hand over full paths and report them in
// diagnostics.
type PathSegment struct {
	name    string
	element bool
}

// Field returns a path segment for an object property.
func Field(name string) PathSegment {
	return PathSegment{name: name}
}

// Element returns a path segment for an array index.
func Element(i int) PathSegment {
	return PathSegment{name: strconv.Itoa(i), element: true}
}

// IsElement reports whether the segment is an array index.
func (p PathSegment) IsElement() bool {
	return p.element
}

// Name returns the field name, or the decimal index of an array element.
func (p PathSegment) Name() string {
	return p.name
}

func (p PathSegment) String() string {
	if p.element {
		return "[" + p.name + "]"
	}
	return p.name
}
