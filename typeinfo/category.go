package typeinfo

import (
	"reflect"

	"github.com/signadot/objdoc/value"
)

type CategoryKind int

const (
	Simple CategoryKind = iota
	Nullable
	Enumerable
	Dictionary
	Complex
	Dynamic
	Passthrough
)

func (k CategoryKind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Nullable:
		return "nullable"
	case Enumerable:
		return "enumerable"
	case Dictionary:
		return "dictionary"
	case Complex:
		return "complex"
	case Dynamic:
		return "dynamic"
	case Passthrough:
		return "passthrough"
	default:
		return "<unknown category>"
	}
}

// Category is the classification of one type. Only the fields relevant to
// Kind are set.
type Category struct {
	Kind CategoryKind
	Type reflect.Type

	// Simple
	Value value.Kind

	// Nullable
	Inner *Category

	// Enumerable: Item. Dictionary: Key and Item.
	Key  reflect.Type
	Item reflect.Type

	// Complex
	Fields   []Field
	RootName string
}

// Base strips any Nullable wrappers.
func (c *Category) Base() *Category {
	for c.Kind == Nullable {
		c = c.Inner
	}
	return c
}

func (c *Category) IsSimple() bool {
	return c.Base().Kind == Simple
}
