// Package serialize converts Go values into ir node trees.
//
// The traversal is driven by typeinfo categories. Simple values become value
// nodes, collections and maps become containers of items and key/value pairs,
// and structs become containers of their fields. A field whose value is, by
// reference, one of its own ancestors is omitted so cyclic graphs terminate.
package serialize

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/signadot/objdoc/ancestry"
	"github.com/signadot/objdoc/debug"
	"github.com/signadot/objdoc/format"
	"github.com/signadot/objdoc/ir"
	"github.com/signadot/objdoc/options"
	"github.com/signadot/objdoc/typeinfo"
	"github.com/signadot/objdoc/value"
)

const (
	jsonRootName = "root"
	jsonItemName = "item"
	keyName      = "Key"
	valueName    = "Value"
)

// Serializer is safe for concurrent use.
type Serializer struct {
	opts *options.Options
}

// New returns a serializer using opts, or the defaults if opts is nil.
func New(opts *options.Options) *Serializer {
	if opts == nil {
		opts = options.New()
	}
	return &Serializer{opts: opts}
}

// Serialize is shorthand for New(options.New(opts...)).Serialize(v, f).
func Serialize(v any, f format.Format, opts ...options.Option) (*ir.Node, error) {
	return New(options.New(opts...)).Serialize(v, f)
}

func (s *Serializer) Options() *options.Options { return s.opts }

// Serialize converts v into a node tree in format f.
func (s *Serializer) Serialize(v any, f format.Format) (*ir.Node, error) {
	if v == nil {
		return nil, &NullRootError{}
	}
	rv := reflect.ValueOf(v)
	if isNil(rv) {
		return nil, &NullRootError{Type: rv.Type()}
	}
	t := &traversal{
		opts:   s.opts,
		format: f,
		naming: s.opts.Naming(),
	}
	return t.visit(rv, rv.Type(), nil, site{root: true})
}

type traversal struct {
	opts   *options.Options
	format format.Format
	naming typeinfo.Naming
}

// site describes where a value sits relative to its parent.
type site struct {
	root     bool
	field    *typeinfo.Field
	item     bool
	itemName string
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func (t *traversal) classify(typ reflect.Type, path string) (*typeinfo.Category, error) {
	cat, err := t.opts.Classifier().Classify(typ)
	if err != nil {
		return nil, &MarshalError{Path: path, Message: "cannot classify " + typ.String(), Err: err}
	}
	return cat, nil
}

// visit produces the node for v. declared is the static type at the site;
// parent is the chain of enclosing values.
func (t *traversal) visit(v reflect.Value, declared reflect.Type, parent *ancestry.Chain, st site) (*ir.Node, error) {
	typ := declared
	if v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
		typ = v.Type()
	}
	cat, err := t.classify(typ, parent.Path())
	if err != nil {
		return nil, err
	}
	name := t.name(typ, cat, st)
	chain := parent.Push(v, name)
	path := chain.Path()

	if vw := t.opts.ValueWriters[typ]; vw != nil {
		return t.writeValue(vw, v, chain, st, name)
	}

	base := cat
	null := false
deref:
	for {
		switch base.Kind {
		case typeinfo.Nullable:
			if v.IsNil() {
				null = true
				break deref
			}
			v = v.Elem()
			base = base.Inner
		case typeinfo.Dynamic:
			if v.IsNil() {
				null = true
				break deref
			}
			v = v.Elem()
			if base, err = t.classify(v.Type(), path); err != nil {
				return nil, err
			}
		default:
			break deref
		}
	}
	switch {
	case null:
		if b := base.Base(); b.Kind == typeinfo.Simple {
			base = b
		}
	case base.Kind == typeinfo.Enumerable, base.Kind == typeinfo.Dictionary, base.Kind == typeinfo.Passthrough:
		null = isNil(v)
	}

	if !null && base.Type != typ {
		if vw := t.opts.ValueWriters[base.Type]; vw != nil {
			return t.writeValue(vw, v, chain, st, name)
		}
	}

	var node *ir.Node
	switch {
	case base.Kind == typeinfo.Simple:
		node, err = t.simple(v, base, null, st, name, path)
	case null:
		node = ir.NewNull(t.format, name)
	case base.Kind == typeinfo.Passthrough:
		node = t.passthrough(v, name)
	case base.Kind == typeinfo.Enumerable:
		node, err = t.enumerable(v, base, chain, st, name)
	case base.Kind == typeinfo.Dictionary:
		node, err = t.dictionary(v, base, chain, st, name)
	case base.Kind == typeinfo.Complex:
		node, err = t.complex(v, base, chain, name)
	default:
		err = &MarshalError{Path: path, Message: "unsupported category " + base.Kind.String()}
	}
	if err != nil {
		return nil, err
	}
	if !null && t.format.IsXML() && len(node.Children) == 0 && len(node.Attributes) == 0 {
		switch base.Kind {
		case typeinfo.Enumerable, typeinfo.Dictionary, typeinfo.Complex:
			// an open/close pair, so the empty value is not read back as null
			node.Text = ir.Str("")
		}
	}
	t.annotate(node)
	if err := t.finish(node, v, chain, st); err != nil {
		return nil, err
	}
	return node, nil
}

// name computes the element name of a value at st.
func (t *traversal) name(typ reflect.Type, cat *typeinfo.Category, st site) string {
	if st.field != nil {
		return st.field.Name
	}
	if t.format.IsJSON() {
		if st.root {
			return jsonRootName
		}
		return jsonItemName
	}
	if st.item && st.itemName != "" {
		return st.itemName
	}
	if b := cat.Base(); st.root && b.Kind == typeinfo.Complex && b.RootName != "" {
		return b.RootName
	}
	return t.naming.TypeName(typ)
}

func (t *traversal) asAttribute(st site) bool {
	if !t.format.IsXML() || st.field == nil {
		return false
	}
	return st.field.Attr || t.opts.XMLValueNodeType == options.AttributeNode
}

func (t *traversal) writeValue(vw options.ValueWriterFunc, v reflect.Value, chain *ancestry.Chain, st site, name string) (*ir.Node, error) {
	var node *ir.Node
	if t.asAttribute(st) {
		node = ir.NewAttribute(name, "")
		node.Text = nil
	} else {
		node = ir.NewNull(t.format, name)
	}
	t.annotate(node)
	ctx := t.context(node, v, chain, st)
	if debug.Serialize() {
		debug.Logf("value writer for %v at %s\n", v, ctx.Path)
	}
	if err := vw(ctx); err != nil {
		return nil, &MarshalError{Path: ctx.Path, Message: "value writer failed", Err: err}
	}
	if node.Kind == ir.AttributeKind && node.Text == nil {
		node.Text = ir.Str("")
	}
	if err := t.finish(node, v, chain, st); err != nil {
		return nil, err
	}
	return node, nil
}

func (t *traversal) simple(v reflect.Value, cat *typeinfo.Category, null bool, st site, name, path string) (*ir.Node, error) {
	var text *string
	typ := ir.StringType
	if !null {
		s, err := value.Format(v, cat.Value)
		if err != nil {
			return nil, &MarshalError{Path: path, Message: "cannot format " + cat.Value.Label(), Err: err}
		}
		text = &s
		switch {
		case cat.Value == value.BooleanKind:
			typ = ir.BoolType
		case cat.Value.IsNumber() && value.IsFinite(v, cat.Value):
			typ = ir.NumberType
		}
	}
	if t.asAttribute(st) {
		if text == nil {
			return ir.NewAttribute(name, ""), nil
		}
		return ir.NewAttribute(name, *text), nil
	}
	return ir.NewValue(t.format, name, text, typ), nil
}

func (t *traversal) passthrough(v reflect.Value, name string) *ir.Node {
	var src *ir.Node
	if v.Kind() == reflect.Pointer {
		src = v.Interface().(*ir.Node)
	} else {
		n := v.Interface().(ir.Node)
		src = &n
	}
	node := src.Clone()
	node.Parent = nil
	node.Name = name
	return node
}

func (t *traversal) enumerable(v reflect.Value, cat *typeinfo.Category, chain *ancestry.Chain, st site, name string) (*ir.Node, error) {
	node := ir.NewArray(t.format, name)
	var itemName string
	if st.field != nil {
		itemName = st.field.ItemName
	}
	for i := 0; i < v.Len(); i++ {
		item := v.Index(i)
		if chain.Contains(item) {
			t.omit(chain, "item", item)
			continue
		}
		child, err := t.visit(item, cat.Item, chain, site{item: true, itemName: itemName})
		if err != nil {
			return nil, err
		}
		node.Append(child)
	}
	return node, nil
}

func (t *traversal) dictionary(v reflect.Value, cat *typeinfo.Category, chain *ancestry.Chain, st site, name string) (*ir.Node, error) {
	node := ir.NewArray(t.format, name)
	pairName := jsonItemName
	if t.format.IsXML() {
		pairName = t.naming.PairName(cat.Key, cat.Item)
		if st.field != nil && st.field.ItemName != "" {
			pairName = st.field.ItemName
		}
	}
	keyField := &typeinfo.Field{GoName: keyName, Name: keyName, Type: cat.Key}
	valField := &typeinfo.Field{GoName: valueName, Name: valueName, Type: cat.Item}
	for _, k := range sortedKeys(v) {
		pair := ir.NewElement(t.format, pairName)
		t.annotate(pair)
		pairChain := chain.PushIdentity(ancestry.Identity{}, pairName)
		kn, err := t.visit(k, cat.Key, pairChain, site{field: keyField})
		if err != nil {
			return nil, err
		}
		pair.Append(kn)
		val := v.MapIndex(k)
		if chain.Contains(val) {
			t.omit(pairChain, valueName, val)
		} else {
			vn, err := t.visit(val, cat.Item, pairChain, site{field: valField})
			if err != nil {
				return nil, err
			}
			pair.Append(vn)
		}
		if err := t.finish(pair, reflect.Value{}, pairChain, site{item: true}); err != nil {
			return nil, err
		}
		node.Append(pair)
	}
	return node, nil
}

func (t *traversal) complex(v reflect.Value, cat *typeinfo.Category, chain *ancestry.Chain, name string) (*ir.Node, error) {
	node := ir.NewElement(t.format, name)
	for i := range cat.Fields {
		f := &cat.Fields[i]
		fv := f.Get(v)
		if !fv.IsValid() {
			continue
		}
		if t.opts.ExcludeNullValues && isNil(fv) {
			continue
		}
		if chain.Contains(fv) {
			t.omit(chain, f.Name, fv)
			continue
		}
		child, err := t.visit(fv, f.Type, chain, site{field: f})
		if err != nil {
			return nil, err
		}
		node.Append(child)
	}
	return node, nil
}

func (t *traversal) omit(chain *ancestry.Chain, name string, v reflect.Value) {
	if debug.Serialize() {
		debug.Logf("omitting back reference %s/%s (%v)\n", chain.Path(), name, v)
	}
}

// annotate applies the default namespace to XML elements.
func (t *traversal) annotate(node *ir.Node) {
	if t.format.IsXML() && node.Kind == ir.ElementKind && node.Namespace == "" {
		node.Namespace = t.opts.DefaultNamespace
	}
}

func (t *traversal) context(node *ir.Node, v reflect.Value, chain *ancestry.Chain, st site) *options.WriterContext {
	return &options.WriterContext{
		Options: t.opts,
		Field:   st.field,
		Value:   v,
		Node:    node,
		Path:    chain.Path(),
		Root:    st.root,
	}
}

// finish declares root namespaces and runs the node writers.
func (t *traversal) finish(node *ir.Node, v reflect.Value, chain *ancestry.Chain, st site) error {
	if st.root && t.format.IsXML() {
		node.Namespaces = t.opts.Namespaces()
	}
	if len(t.opts.NodeWriters) == 0 {
		return nil
	}
	ctx := t.context(node, v, chain, st)
	name, kind := node.Name, node.Kind
	for _, nw := range t.opts.NodeWriters {
		if err := nw(ctx); err != nil {
			return &MarshalError{Path: ctx.Path, Message: "node writer failed", Err: err}
		}
		if node.Name != name || node.Kind != kind {
			return &MarshalError{Path: ctx.Path, Message: "node writer failed", Err: ErrNodeRewritten}
		}
	}
	return nil
}

// sortedKeys orders map keys numerically, lexically or by their printed
// form so output does not depend on map iteration order.
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b reflect.Value) int {
	for a.Kind() == reflect.Interface || a.Kind() == reflect.Pointer {
		if a.IsNil() {
			break
		}
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface || b.Kind() == reflect.Pointer {
		if b.IsNil() {
			break
		}
		b = b.Elem()
	}
	if a.Kind() == b.Kind() {
		switch {
		case a.CanInt():
			return cmp.Compare(a.Int(), b.Int())
		case a.CanUint():
			return cmp.Compare(a.Uint(), b.Uint())
		case a.CanFloat():
			return cmp.Compare(a.Float(), b.Float())
		case a.Kind() == reflect.String:
			return cmp.Compare(a.String(), b.String())
		case a.Kind() == reflect.Bool:
			return cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool()))
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
