package partial_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-partial/partial"
)

func path(segments ...partial.PathSegment) []partial.PathSegment {
	return segments
}

func fields(names ...string) []partial.PathSegment {
	segments := make([]partial.PathSegment, len(names))
	for i, name := range names {
		segments[i] = partial.Field(name)
	}
	return segments
}

func TestSelectionMatches(t *testing.T) {
	testCases := []struct {
		selector   string
		path       []partial.PathSegment
		ignoreCase bool
		expected   bool
	}{
		// An empty selector selects everything.
		{selector: "", path: fields(), expected: true},
		{selector: "", path: fields("a"), expected: true},
		{selector: "", path: fields("a", "b", "c"), expected: true},
		{selector: "   ", path: fields("anything"), expected: true},

		// Plain sibling fields.
		{selector: "a,b", path: fields("a"), expected: true},
		{selector: "a,b", path: fields("b"), expected: true},
		{selector: "a,b", path: fields("c"), expected: false},

		// Selecting a field selects it whole.
		{selector: "a", path: fields("a", "x"), expected: true},
		{selector: "a", path: fields("a", "x", "y"), expected: true},

		// Sub-selections restrict descendants.
		{selector: "a(b,c)", path: fields("a"), expected: true},
		{selector: "a(b,c)", path: fields("a", "b"), expected: true},
		{selector: "a(b,c)", path: fields("a", "c"), expected: true},
		{selector: "a(b,c)", path: fields("a", "d"), expected: false},
		{selector: "a(b,c)", path: fields("b"), expected: false},

		// Slash chains desugar to nested groups; ancestors match as
		// containers on the way to the leaf.
		{selector: "a/b/c", path: fields("a"), expected: true},
		{selector: "a/b/c", path: fields("a", "b"), expected: true},
		{selector: "a/b/c", path: fields("a", "b", "c"), expected: true},
		{selector: "a/b/c", path: fields("a", "b", "c", "d"), expected: true},
		{selector: "a/b/c", path: fields("a", "x"), expected: false},
		{selector: "a/b/c", path: fields("a", "b", "x"), expected: false},

		// Merged selections admit both branches, in either order.
		{selector: "a(b),a(c)", path: fields("a", "b"), expected: true},
		{selector: "a(b),a(c)", path: fields("a", "c"), expected: true},
		{selector: "a(c),a(b)", path: fields("a", "b"), expected: true},
		{selector: "a(c),a(b)", path: fields("a", "c"), expected: true},
		{selector: "a(b),a(c)", path: fields("a", "d"), expected: false},

		// Wildcards admit anything not otherwise restricted.
		{selector: "*", path: fields("anything"), expected: true},
		{selector: "*", path: fields("x", "y", "z"), expected: true},
		{selector: "a(*)", path: fields("a", "anything"), expected: true},
		{selector: "a(*)", path: fields("b"), expected: false},
		{selector: "a,*", path: fields("a"), expected: true},
		{selector: "a,*", path: fields("b"), expected: true},
		{selector: "a(b),*", path: fields("a", "c"), expected: false},
		{selector: "a(b),*", path: fields("c", "d"), expected: true},
		{selector: "*,a(b)", path: fields("a", "b"), expected: true},

		// Case sensitivity.
		{selector: "Name", path: fields("name"), expected: false},
		{selector: "Name", path: fields("name"), ignoreCase: true, expected: true},
		{selector: "name", path: fields("NAME"), ignoreCase: true, expected: true},
		{selector: "a(Inner)", path: fields("A", "inner"), ignoreCase: true, expected: true},

		// Array elements are transparent.
		{selector: "a(b)", path: path(partial.Field("a"), partial.Element(0), partial.Field("b")), expected: true},
		{selector: "a(b)", path: path(partial.Field("a"), partial.Element(3), partial.Field("x")), expected: false},
		{selector: "a", path: path(partial.Field("a"), partial.Element(0)), expected: true},
		{selector: "a(b)", path: path(partial.Element(0), partial.Field("a"), partial.Element(1), partial.Field("b")), expected: true},

		// Paths without field segments follow the root selection.
		{selector: "a", path: fields(), expected: false},
		{selector: "*", path: fields(), expected: true},
		{selector: "a", path: path(partial.Element(0)), expected: false},
		{selector: "", path: path(partial.Element(0)), expected: true},
	}
	for _, tc := range testCases {
		name := fmt.Sprintf("%s=%v", tc.selector, tc.path)
		t.Run(name, func(t *testing.T) {
			s, err := partial.Parse(tc.selector)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, s.Matches(tc.path, tc.ignoreCase))
		})
	}
}

func TestSelectionMatchesConcurrent(t *testing.T) {
	s, err := partial.Parse("a(b(c),d),e,*")
	require.NoError(t, err)
	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			ok := true
			for j := 0; j < 1000; j++ {
				ok = ok &&
					s.Matches(fields("a", "b", "c"), false) &&
					s.Matches(fields("e"), true) &&
					!s.Matches(fields("a", "x"), false)
			}
			done <- ok
		}()
	}
	for i := 0; i < 8; i++ {
		assert.True(t, <-done)
	}
}

func TestPathSegmentString(t *testing.T) {
	assert.Equal(t, "title", partial.Field("title").String())
	assert.Equal(t, "[3]", partial.Element(3).String())
	assert.Equal(t, "3", partial.Element(3).Name())
	assert.True(t, partial.Element(0).IsElement())
	assert.False(t, partial.Field("a").IsElement())

	segments := path(partial.Field("items"), partial.Element(0), partial.Field("id"))
	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = seg.String()
	}
	assert.Equal(t, "items/[0]/id", strings.Join(parts, "/"))
}
