package value

import "fmt"

// ParseError reports text that could not be converted to a simple kind.
type ParseError struct {
	Path   string  // location path, e.g. "/SimpleTypes/Byte"
	Value  *string // nil when the node had no text
	Kind   Kind
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Unable to parse the value %s in the '%s' element as a %s: %s",
		Token(e.Value), e.Path, e.Kind.Label(), e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Token renders text the way parse errors quote it: <null> for no text,
// otherwise single quoted.
func Token(text *string) string {
	if text == nil {
		return "<null>"
	}
	return "'" + *text + "'"
}
