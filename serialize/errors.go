package serialize

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNullRoot matches *NullRootError.
	ErrNullRoot = errors.New("cannot serialize a null reference")
	// ErrNodeRewritten is returned when a node writer renames a node or
	// changes its kind.
	ErrNodeRewritten = errors.New("node writer changed node name or kind")
)

// NullRootError is returned when the value to serialize is nil.
type NullRootError struct {
	Type reflect.Type
}

func (e *NullRootError) Error() string {
	if e.Type == nil {
		return "Cannot serialize a null reference."
	}
	return fmt.Sprintf("Cannot serialize a null reference of type %s.", e.Type)
}

func (e *NullRootError) Is(target error) bool {
	return target == ErrNullRoot
}

// MarshalError represents an error during serialization
type MarshalError struct {
	Path    string // location path, e.g. "/Order/Lines"
	Message string
	Err     error
}

func (e *MarshalError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("marshal error: %s", msg)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}
