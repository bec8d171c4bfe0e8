// Package convert translates node trees between the XML and JSON shapes
// without going through a Go type.
//
// XML to JSON: an element with attributes or children becomes an object.
// Attributes become fields named "@name", element text next to children
// becomes the field "#text", and children sharing a name become an array.
// Elements typed as arrays become arrays. Leaf elements become strings,
// numbers or booleans according to their Type, and null when their text is
// absent.
//
// JSON to XML reverses this. Array items are written as elements named
// "item" under a container element.
package convert

import (
	"strings"
	"unicode"

	"github.com/signadot/objdoc/debug"
	"github.com/signadot/objdoc/format"
	"github.com/signadot/objdoc/ir"
)

const (
	AttrPrefix = "@"
	TextField  = "#text"
	ItemName   = "item"
	RootName   = "root"
)

// To returns n converted to format f. n is not modified; the result
// shares no nodes with it.
func To(n *ir.Node, f format.Format) *ir.Node {
	if n.Format == f {
		res := n.Clone()
		res.Parent = nil
		return res
	}
	if f.IsJSON() {
		return ToJSON(n)
	}
	return ToXML(n, "")
}

// ToJSON converts an XML tree.
func ToJSON(n *ir.Node) *ir.Node {
	res := jsonValue(n, RootName)
	if debug.Encode() {
		debug.Logf("converted %v to json %v\n", n, res)
	}
	return res
}

func jsonValue(n *ir.Node, name string) *ir.Node {
	if n.Kind == ir.AttributeKind {
		return ir.NewValue(format.JSONFormat, name, ir.Str(text(n)), ir.StringType)
	}
	if n.Type == ir.ArrayType && len(n.Attributes) == 0 {
		if n.Text == nil && len(n.Children) == 0 {
			return ir.NewNull(format.JSONFormat, name)
		}
		res := ir.NewArray(format.JSONFormat, name)
		for _, c := range n.Children {
			res.Append(jsonValue(c, ItemName))
		}
		return res
	}
	if len(n.Children) == 0 && len(n.Attributes) == 0 {
		if n.Text == nil {
			return ir.NewNull(format.JSONFormat, name)
		}
		t := n.Type
		if t != ir.NumberType && t != ir.BoolType {
			t = ir.StringType
		}
		return ir.NewValue(format.JSONFormat, name, ir.Str(*n.Text), t)
	}
	res := ir.NewElement(format.JSONFormat, name)
	for _, a := range n.Attributes {
		res.Append(jsonValue(a, AttrPrefix+a.LocalName()))
	}
	if n.Text != nil && strings.TrimSpace(*n.Text) != "" {
		res.Append(ir.NewValue(format.JSONFormat, TextField, ir.Str(*n.Text), ir.StringType))
	}
	groups := map[string][]*ir.Node{}
	order := []string{}
	for _, c := range n.Children {
		ln := c.LocalName()
		if _, ok := groups[ln]; !ok {
			order = append(order, ln)
		}
		groups[ln] = append(groups[ln], c)
	}
	for _, ln := range order {
		group := groups[ln]
		if len(group) == 1 {
			res.Append(jsonValue(group[0], ln))
			continue
		}
		arr := ir.NewArray(format.JSONFormat, ln)
		for _, c := range group {
			arr.Append(jsonValue(c, ItemName))
		}
		res.Append(arr)
	}
	return res
}

func text(n *ir.Node) string {
	if n.Text == nil {
		return ""
	}
	return *n.Text
}

// ToXML converts a JSON tree. rootName names the root element; when empty
// the root keeps its name, or RootName if it has none.
func ToXML(n *ir.Node, rootName string) *ir.Node {
	if rootName == "" {
		rootName = n.Name
	}
	if rootName == "" {
		rootName = RootName
	}
	res := xmlElement(n, XMLName(rootName))
	if debug.Encode() {
		debug.Logf("converted %v to xml %v\n", n, res)
	}
	return res
}

func xmlElement(n *ir.Node, name string) *ir.Node {
	switch n.Type {
	case ir.ArrayType:
		res := ir.NewArray(format.XMLFormat, name)
		for _, c := range n.Children {
			res.Append(xmlElement(c, ItemName))
		}
		return res
	case ir.ObjectType:
		res := ir.NewElement(format.XMLFormat, name)
		for _, c := range n.Children {
			field := c.Name
			switch {
			case field == TextField && c.IsValue():
				res.Text = ir.Str(text(c))
			case strings.HasPrefix(field, AttrPrefix) && len(field) > 1 && c.IsValue():
				a := ir.NewAttribute(XMLName(field[1:]), text(c))
				a.Type = c.Type
				res.Append(a)
			default:
				res.Append(xmlElement(c, XMLName(field)))
			}
		}
		return res
	case ir.NullType:
		return ir.NewNull(format.XMLFormat, name)
	}
	if n.Text == nil {
		return ir.NewNull(format.XMLFormat, name)
	}
	return ir.NewValue(format.XMLFormat, name, ir.Str(*n.Text), n.Type)
}

// XMLName returns s with characters not allowed in XML names replaced by
// '_'. A name that cannot start an element gets a leading '_'.
func XMLName(s string) string {
	b := &strings.Builder{}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		case i == 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
			b.WriteByte('_')
		default:
			r = '_'
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
