package deserialize

import (
	"errors"
	"fmt"

	"github.com/signadot/objdoc/ir"
)

// ErrUnmatchedNode matches *UnmatchedNodeError.
var ErrUnmatchedNode = errors.New("unmatched node")

// UnmarshalError represents a structural error during deserialization
type UnmarshalError struct {
	Path    string // location path, e.g. "/Order/Lines"
	Message string
	Err     error
}

func (e *UnmarshalError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("unmarshal error: %s", msg)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// UnmatchedNodeError reports document content with no corresponding field.
type UnmatchedNodeError struct {
	Path string
	Name string
	Kind ir.Kind
}

func (e *UnmatchedNodeError) Error() string {
	return fmt.Sprintf("The %s '%s' in '%s' does not match any field.", e.Kind, e.Name, e.Path)
}

func (e *UnmatchedNodeError) Is(target error) bool {
	return target == ErrUnmatchedNode
}
