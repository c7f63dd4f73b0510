package partial

// ParseError reports the first syntax violation in a selector string.
// It is expected user input, never a fault: Parse returns it as an
// ordinary error value and builds no partial tree.
type ParseError struct {
	// Offset is the byte offset of the violation in the selector string.
	Offset int
	// Token is the offending token, empty at end of input.
	Token string
	msg   string
}

func (err *ParseError) Error() string {
	return err.msg
}

// ConfigError reports an invalid option value passed to New. Unlike a
// ParseError it signals a programming error in the host, so New fails
// fast with it before parsing anything.
type ConfigError struct {
	Option string
	Reason string
}

func (err *ConfigError) Error() string {
	return "invalid configuration: " + err.Option + ": " + err.Reason
}
