package partial

import "unicode/utf8"

// Parse converts a selector string into a Selection tree. An empty or
// whitespace-only string yields the empty selection, which selects
// everything. Syntax errors are reported as *ParseError carrying the
// byte offset of the first violation; no partial tree is returned.
//
// The grammar:
//
//	selection := group | ""
//	group     := item ("," item)*
//	item      := fieldname subgroup? | fieldname "/" item | "*"
//	subgroup  := "(" group ")"
//
// Field names are any run of characters other than ",", "(", ")", "/",
// and whitespace. Whitespace around names and punctuation is ignored.
// Selecting the same field name twice at one level merges the two
// sub-selections; a slash chain a/b/c desugars into a(b(c)) and merges
// the same way.
func Parse(src string) (*Selection, error) {
	return parseDepth(src, 0)
}

// parseDepth is Parse with an optional bound on nesting depth; zero
// means unbounded. Filters configured with MaxDepth parse through it.
func parseDepth(src string, maxDepth int) (*Selection, error) {
	p := &parser{source: []byte(src), maxDepth: maxDepth}
	s := &Selection{}
	p.skipSpaces()
	if p.offset == len(p.source) {
		return s, nil
	}
	if err := p.parseGroup(s, 1); err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.offset < len(p.source) {
		return nil, p.errUnexpected()
	}
	s.seal()
	return s, nil
}

// parser scans a selector string in a single left-to-right pass.
type parser struct {
	source   []byte
	offset   int
	maxDepth int
}

// group := item ("," item)*
func (p *parser) parseGroup(s *Selection, depth int) error {
	for {
		if err := p.parseItem(s, depth); err != nil {
			return err
		}
		p.skipSpaces()
		if !p.accept(',') {
			return nil
		}
	}
}

// item := "*" | fieldname subgroup? | fieldname "/" item
func (p *parser) parseItem(s *Selection, depth int) error {
	p.skipSpaces()
	if p.accept('*') {
		s.wildcard = true
		return nil
	}
	name, err := p.scanField()
	if err != nil {
		return err
	}
	sub := s.add(name)
	p.skipSpaces()
	if c, ok := p.peek(); ok && (c == '/' || c == '(') {
		if p.maxDepth > 0 && depth >= p.maxDepth {
			return &ParseError{Offset: p.offset, msg: "selector nesting too deep"}
		}
	}
	switch {
	case p.accept('/'):
		return p.parseItem(sub, depth+1)
	case p.accept('('):
		if err := p.parseGroup(sub, depth+1); err != nil {
			return err
		}
		p.skipSpaces()
		if !p.accept(')') {
			return p.errUnexpected()
		}
	}
	return nil
}

func (p *parser) scanField() (string, error) {
	start := p.offset
	for p.offset < len(p.source) && !isPunct(p.source[p.offset]) && !isSpace(p.source[p.offset]) {
		p.offset++
	}
	if p.offset == start {
		return "", p.errUnexpected()
	}
	return string(p.source[start:p.offset]), nil
}

func (p *parser) peek() (byte, bool) {
	if p.offset < len(p.source) {
		return p.source[p.offset], true
	}
	return 0, false
}

func (p *parser) accept(c byte) bool {
	if p.offset < len(p.source) && p.source[p.offset] == c {
		p.offset++
		return true
	}
	return false
}

func (p *parser) skipSpaces() {
	for p.offset < len(p.source) && isSpace(p.source[p.offset]) {
		p.offset++
	}
}

func (p *parser) errUnexpected() *ParseError {
	if p.offset >= len(p.source) {
		return &ParseError{Offset: p.offset, msg: "unexpected EOF"}
	}
	r, _ := utf8.DecodeRune(p.source[p.offset:])
	token := string(r)
	return &ParseError{Offset: p.offset, Token: token, msg: "unexpected token " + `"` + token + `"`}
}

func isPunct(c byte) bool {
	return c == ',' || c == '(' || c == ')' || c == '/' || c == '*'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
