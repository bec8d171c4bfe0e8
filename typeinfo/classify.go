package typeinfo

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/signadot/objdoc/ir"
	"github.com/signadot/objdoc/value"
)

var (
	nodePtrType = reflect.TypeFor[*ir.Node]()
	nodeType    = reflect.TypeFor[ir.Node]()
)

// Classifier memoizes type classification. The zero value is not usable;
// use NewClassifier.
type Classifier struct {
	exclude map[reflect.Type]bool
	cache   sync.Map // reflect.Type -> *Category
}

// NewClassifier returns a classifier which treats the given types as opaque:
// their internals are never walked and struct fields of those types are
// skipped.
func NewClassifier(excluded ...reflect.Type) *Classifier {
	c := &Classifier{exclude: map[reflect.Type]bool{}}
	for _, t := range excluded {
		c.exclude[t] = true
	}
	return c
}

func (c *Classifier) excluded(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return c.exclude[t]
}

func (c *Classifier) simpleKind(t reflect.Type) (value.Kind, bool) {
	return value.KindOf(t)
}

// Classify returns the category of t.
func (c *Classifier) Classify(t reflect.Type) (*Category, error) {
	if cat, ok := c.cache.Load(t); ok {
		return cat.(*Category), nil
	}
	cat, err := c.classify(t)
	if err != nil {
		return nil, err
	}
	actual, _ := c.cache.LoadOrStore(t, cat)
	return actual.(*Category), nil
}

func (c *Classifier) classify(t reflect.Type) (*Category, error) {
	if t == nodePtrType || t == nodeType {
		return &Category{Kind: Passthrough, Type: t}, nil
	}
	if k, ok := c.simpleKind(t); ok {
		return &Category{Kind: Simple, Type: t, Value: k}, nil
	}
	switch t.Kind() {
	case reflect.Pointer:
		inner, err := c.Classify(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Category{Kind: Nullable, Type: t, Inner: inner}, nil
	case reflect.Map:
		return &Category{Kind: Dictionary, Type: t, Key: t.Key(), Item: t.Elem()}, nil
	case reflect.Slice, reflect.Array:
		return &Category{Kind: Enumerable, Type: t, Item: t.Elem()}, nil
	case reflect.Interface:
		return &Category{Kind: Dynamic, Type: t}, nil
	case reflect.Struct:
		if c.exclude[t] {
			return &Category{Kind: Complex, Type: t}, nil
		}
		fields, root, err := c.structFields(t)
		if err != nil {
			return nil, err
		}
		return &Category{Kind: Complex, Type: t, Fields: fields, RootName: root}, nil
	}
	return nil, fmt.Errorf("unsupported type %s", t)
}
