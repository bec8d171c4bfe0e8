package parse

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/signadot/objdoc/format"
)

var ErrParse = errors.New("parse error")

// SyntaxError reports malformed input. Line is 0 when the underlying
// reader does not track lines.
type SyntaxError struct {
	Format format.Format
	Line   int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s syntax error on line %d: %s", e.Format, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s syntax error: %s", e.Format, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (e *SyntaxError) Is(target error) bool { return target == ErrParse }
