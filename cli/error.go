package cli

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/go-partial/partial"
)

type selectorParseError struct {
	selector string
	err      *partial.ParseError
}

func (err *selectorParseError) Error() string {
	offset := err.err.Offset
	if offset > len(err.selector) {
		offset = len(err.selector)
	}
	column := runewidth.StringWidth(err.selector[:offset])
	return fmt.Sprintf("invalid selector\n    %s\n    %*c  %s",
		err.selector, column+1, '^', err.err)
}
