// Package deserialize rebuilds Go values from ir node trees.
//
// Children are matched to struct fields by local name, in document order.
// The first failure aborts the call and the destination is left untouched.
package deserialize

import (
	"reflect"

	"github.com/signadot/objdoc/debug"
	"github.com/signadot/objdoc/ir"
	"github.com/signadot/objdoc/options"
	"github.com/signadot/objdoc/typeinfo"
	"github.com/signadot/objdoc/value"
)

const (
	keyName   = "Key"
	valueName = "Value"
)

var nodePtrType = reflect.TypeFor[*ir.Node]()

// Deserializer is safe for concurrent use.
type Deserializer struct {
	opts *options.Options
}

// New returns a deserializer using opts, or the defaults if opts is nil.
func New(opts *options.Options) *Deserializer {
	if opts == nil {
		opts = options.New()
	}
	return &Deserializer{opts: opts}
}

// Deserialize is shorthand for New(options.New(opts...)).Deserialize(node, v).
func Deserialize(node *ir.Node, v any, opts ...options.Option) error {
	return New(options.New(opts...)).Deserialize(node, v)
}

func (d *Deserializer) Options() *options.Options { return d.opts }

// Deserialize fills the value v points to from node. v must be a non-nil
// pointer. On failure *v is not modified.
func (d *Deserializer) Deserialize(node *ir.Node, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &UnmarshalError{Message: "destination must be a non-nil pointer, got " + typeString(rv)}
	}
	if node == nil {
		return &UnmarshalError{Message: "nil node"}
	}
	tmp := reflect.New(rv.Type().Elem())
	t := &traversal{opts: d.opts}
	if err := t.visit(node, tmp.Elem(), "/"+node.LocalName()); err != nil {
		return err
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}

// Into is Deserialize with the destination type as a type parameter.
func Into[T any](d *Deserializer, node *ir.Node) (T, error) {
	var res T
	err := d.Deserialize(node, &res)
	return res, err
}

func typeString(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}

type traversal struct {
	opts *options.Options
}

func (t *traversal) classify(typ reflect.Type, path string) (*typeinfo.Category, error) {
	cat, err := t.opts.Classifier().Classify(typ)
	if err != nil {
		return nil, &UnmarshalError{Path: path, Message: "cannot classify " + typ.String(), Err: err}
	}
	return cat, nil
}

// visit decodes node into the settable value dst.
func (t *traversal) visit(node *ir.Node, dst reflect.Value, path string) error {
	cat, err := t.classify(dst.Type(), path)
	if err != nil {
		return err
	}
	switch cat.Kind {
	case typeinfo.Simple:
		for _, part := range append(append([]*ir.Node(nil), node.Attributes...), node.Children...) {
			if err := t.unmatched(part, ir.JoinPath(path, part.LocalName())); err != nil {
				return err
			}
		}
		val, err := t.opts.Parser().Parse(path, node.Text, dst.Type(), cat.Value)
		if err != nil {
			return err
		}
		dst.Set(val)
		return nil
	case typeinfo.Nullable:
		if isNullFor(node, cat.Inner) {
			if debug.Deserialize() {
				debug.Logf("%s is null\n", path)
			}
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		p := reflect.New(dst.Type().Elem())
		if err := t.visit(node, p.Elem(), path); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	case typeinfo.Passthrough:
		clone := node.Clone()
		clone.Parent = nil
		if dst.Type() == nodePtrType {
			dst.Set(reflect.ValueOf(clone))
		} else {
			dst.Set(reflect.ValueOf(clone).Elem())
		}
		return nil
	case typeinfo.Dynamic:
		if node.IsNull() {
			return nil
		}
		if !nodePtrType.AssignableTo(dst.Type()) {
			return &UnmarshalError{Path: path, Message: "cannot resolve a concrete type for " + dst.Type().String()}
		}
		clone := node.Clone()
		clone.Parent = nil
		dst.Set(reflect.ValueOf(clone))
		return nil
	case typeinfo.Enumerable:
		return t.enumerable(node, dst, cat, path)
	case typeinfo.Dictionary:
		return t.dictionary(node, dst, cat, path)
	case typeinfo.Complex:
		return t.complex(node, dst, cat, path)
	}
	return &UnmarshalError{Path: path, Message: "unsupported category " + cat.Kind.String()}
}

// isNullFor reports whether node means "no value" for a pointer whose
// target has category inner.
func isNullFor(node *ir.Node, inner *typeinfo.Category) bool {
	if node.Format.IsJSON() && node.Type == ir.NullType {
		return true
	}
	b := inner.Base()
	if b.Kind != typeinfo.Simple {
		return node.IsNull()
	}
	if len(node.Children) != 0 {
		return false
	}
	if node.Text == nil {
		return true
	}
	return *node.Text == "" && b.Value != value.StringKind
}

func (t *traversal) unmatched(n *ir.Node, path string) error {
	if t.opts.IgnoreUnmatchedNodes {
		if debug.Deserialize() {
			debug.Logf("ignoring unmatched %s %s\n", n.Kind, path)
		}
		return nil
	}
	return &UnmatchedNodeError{Path: path, Name: n.LocalName(), Kind: n.Kind}
}

func (t *traversal) enumerable(node *ir.Node, dst reflect.Value, cat *typeinfo.Category, path string) error {
	if node.IsNull() {
		return nil
	}
	if dst.Kind() == reflect.Array {
		for i, child := range node.Children {
			childPath := ir.JoinPath(path, child.LocalName())
			if i >= dst.Len() {
				if err := t.unmatched(child, childPath); err != nil {
					return err
				}
				continue
			}
			if err := t.visit(child, dst.Index(i), childPath); err != nil {
				return err
			}
		}
		return nil
	}
	res := reflect.MakeSlice(dst.Type(), 0, len(node.Children))
	for _, child := range node.Children {
		item := reflect.New(cat.Item).Elem()
		if err := t.visit(child, item, ir.JoinPath(path, child.LocalName())); err != nil {
			return err
		}
		res = reflect.Append(res, item)
	}
	dst.Set(res)
	return nil
}

func (t *traversal) dictionary(node *ir.Node, dst reflect.Value, cat *typeinfo.Category, path string) error {
	if node.IsNull() {
		return nil
	}
	res := reflect.MakeMapWithSize(dst.Type(), len(node.Children))
	for _, pair := range node.Children {
		pairPath := ir.JoinPath(path, pair.LocalName())
		var keyNode, valNode *ir.Node
		for _, part := range append(append([]*ir.Node(nil), pair.Attributes...), pair.Children...) {
			switch part.LocalName() {
			case keyName:
				keyNode = part
			case valueName:
				valNode = part
			default:
				if err := t.unmatched(part, ir.JoinPath(pairPath, part.LocalName())); err != nil {
					return err
				}
			}
		}
		if keyNode == nil {
			return &UnmarshalError{Path: pairPath, Message: "dictionary entry has no " + keyName}
		}
		k := reflect.New(cat.Key).Elem()
		if err := t.visit(keyNode, k, ir.JoinPath(pairPath, keyName)); err != nil {
			return err
		}
		v := reflect.New(cat.Item).Elem()
		if valNode != nil {
			if err := t.visit(valNode, v, ir.JoinPath(pairPath, valueName)); err != nil {
				return err
			}
		}
		res.SetMapIndex(k, v)
	}
	dst.Set(res)
	return nil
}

func (t *traversal) complex(node *ir.Node, dst reflect.Value, cat *typeinfo.Category, path string) error {
	if node.Format.IsJSON() {
		switch node.Type {
		case ir.NullType:
			return nil
		case ir.ObjectType:
		default:
			return &UnmarshalError{Path: path, Message: "expected an object for " + dst.Type().String() + ", found " + node.Type.String()}
		}
	}
	byName := make(map[string]*typeinfo.Field, len(cat.Fields))
	for i := range cat.Fields {
		byName[cat.Fields[i].Name] = &cat.Fields[i]
	}
	visitPart := func(part *ir.Node) error {
		partPath := ir.JoinPath(path, part.LocalName())
		f := byName[part.LocalName()]
		if f == nil {
			return t.unmatched(part, partPath)
		}
		return t.visit(part, f.Settable(dst), partPath)
	}
	for _, a := range node.Attributes {
		if err := visitPart(a); err != nil {
			return err
		}
	}
	for _, c := range node.Children {
		if err := visitPart(c); err != nil {
			return err
		}
	}
	return nil
}
