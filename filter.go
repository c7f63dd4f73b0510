// Package partial selects a caller-chosen subset of fields when
// serializing an API response. A compact selector string like
// "a,b(c,d),e/f" is parsed once per request into a Selection tree, which
// then answers one inclusion query per candidate property path emitted
// while walking the object graph being serialized.
package partial

// Filter binds a parsed selection to the host-supplied matching and
// encoding configuration. Build one per request with New; it is
// immutable afterwards and all of its methods are safe for concurrent
// use.
type Filter struct {
	sel        *Selection
	ignoreCase bool
	timeFormat string
	err        error
}

// Option configures a Filter.
type Option func(*config)

type config struct {
	ignoreCase   bool
	ignoreErrors bool
	maxDepth     int
	timeFormat   string
	err          error
}

// IgnoreCase makes field name matching case-insensitive.
func IgnoreCase() Option {
	return func(c *config) {
		c.ignoreCase = true
	}
}

// IgnoreErrors degrades selector syntax errors to "select everything"
// instead of failing New. The swallowed error stays available via Err
// so hosts can still log it.
func IgnoreErrors() Option {
	return func(c *config) {
		c.ignoreErrors = true
	}
}

// MaxDepth bounds the nesting depth of the selector, guarding against
// adversarial inputs blowing up the recursive descent. n must be at
// least 1; New reports a *ConfigError otherwise.
func MaxDepth(n int) Option {
	return func(c *config) {
		if n < 1 {
			c.err = &ConfigError{Option: "MaxDepth", Reason: "must be at least 1"}
			return
		}
		c.maxDepth = n
	}
}

// TimeFormat sets the strftime layout Marshal uses for time values.
// By default times are encoded as Unix seconds.
func TimeFormat(format string) Option {
	return func(c *config) {
		if format == "" {
			c.err = &ConfigError{Option: "TimeFormat", Reason: "empty format"}
			return
		}
		c.timeFormat = format
	}
}

// New parses selector and returns a Filter for it. A syntax error in the
// selector is returned as a *ParseError unless IgnoreErrors is given; an
// invalid option is returned as a *ConfigError before any parsing.
func New(selector string, opts ...Option) (*Filter, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.err != nil {
		return nil, c.err
	}
	sel, err := parseDepth(selector, c.maxDepth)
	if err != nil {
		if !c.ignoreErrors {
			return nil, err
		}
		sel = &Selection{}
	}
	return &Filter{
		sel:        sel,
		ignoreCase: c.ignoreCase,
		timeFormat: c.timeFormat,
		err:        err,
	}, nil
}

// Selection returns the parsed selection tree.
func (f *Filter) Selection() *Selection {
	return f.sel
}

// Pass reports whether the filter performs no filtering at all, either
// because no selector was supplied or because a syntax error was
// swallowed by IgnoreErrors. Hosts may use it to skip per-property
// Matches calls entirely.
func (f *Filter) Pass() bool {
	return f.sel.IsEmpty()
}

// Err returns the selector syntax error swallowed by IgnoreErrors, or
// nil.
func (f *Filter) Err() error {
	return f.err
}

// Matches reports whether the property at path is included. It is the
// predicate a serialization walk calls once per candidate property.
func (f *Filter) Matches(path ...PathSegment) bool {
	return f.sel.Matches(path, f.ignoreCase)
}
