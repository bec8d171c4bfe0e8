// Package ancestry implements the persistent chain of enclosing values used
// for cycle detection and location paths during a traversal.
package ancestry

import (
	"reflect"
	"strings"
	"unsafe"
)

// Identity is the reference identity of a value. Values without one (structs
// held by value, scalars, nil references) have the zero Identity.
type Identity struct {
	typ reflect.Type
	ptr unsafe.Pointer
	len int
}

func (id Identity) IsZero() bool {
	return id.ptr == nil
}

// IdentityOf returns the identity of v: the address of what a pointer points
// to, the backing store of a map, or the backing array and length of a slice.
// An addressable struct or array has the identity of a pointer to it.
func IdentityOf(v reflect.Value) Identity {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Identity{}
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return Identity{}
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		if v.IsNil() {
			return Identity{}
		}
		return Identity{typ: v.Type(), ptr: v.UnsafePointer()}
	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return Identity{}
		}
		return Identity{typ: v.Type(), ptr: v.UnsafePointer(), len: v.Len()}
	case reflect.Struct, reflect.Array:
		if v.CanAddr() {
			return Identity{typ: reflect.PointerTo(v.Type()), ptr: v.Addr().UnsafePointer()}
		}
	}
	return Identity{}
}

// Chain is an immutable linked list from the current position back to the
// root. Push never modifies its receiver so sibling branches can share a
// common prefix. The nil *Chain is the empty chain.
type Chain struct {
	id     Identity
	name   string
	parent *Chain
	depth  int
}

// Root starts a chain for the root value.
func Root(v reflect.Value, name string) *Chain {
	return (*Chain)(nil).Push(v, name)
}

// Push returns a new chain with v appended under name.
func (c *Chain) Push(v reflect.Value, name string) *Chain {
	return c.PushIdentity(IdentityOf(v), name)
}

// PushIdentity is Push for a precomputed identity.
func (c *Chain) PushIdentity(id Identity, name string) *Chain {
	return &Chain{id: id, name: name, parent: c, depth: c.Depth() + 1}
}

// Contains reports whether v, by reference identity, is already on the
// chain. Values with no identity are never contained.
func (c *Chain) Contains(v reflect.Value) bool {
	return c.ContainsIdentity(IdentityOf(v))
}

func (c *Chain) ContainsIdentity(id Identity) bool {
	if id.IsZero() {
		return false
	}
	for x := c; x != nil; x = x.parent {
		if x.id == id {
			return true
		}
	}
	return false
}

// IsRoot reports whether c holds only the root.
func (c *Chain) IsRoot() bool {
	return c != nil && c.parent == nil
}

func (c *Chain) Depth() int {
	if c == nil {
		return 0
	}
	return c.depth
}

// Name is the name of the innermost entry.
func (c *Chain) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

func (c *Chain) Parent() *Chain {
	if c == nil {
		return nil
	}
	return c.parent
}

// Path returns the '/'-joined names from the root, e.g. "/Order/Lines/Line".
func (c *Chain) Path() string {
	names := make([]string, c.Depth())
	i := len(names)
	for x := c; x != nil; x = x.parent {
		i--
		names[i] = x.name
	}
	if len(names) == 0 {
		return "/"
	}
	return "/" + strings.Join(names, "/")
}
