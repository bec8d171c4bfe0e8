package ir

import (
	"strings"

	"github.com/signadot/objdoc/format"
)

// Namespace is a prefix declaration carried by a root element.
type Namespace struct {
	Prefix string
	URI    string
}

type Node struct {
	Kind   Kind
	Format format.Format
	Type   Type

	Name      string
	Namespace string
	Text      *string

	Attributes []*Node
	Children   []*Node
	Namespaces []Namespace

	Parent      *Node
	ParentIndex int
}

// Str returns a pointer to s.
func Str(s string) *string {
	return &s
}

// NewElement returns an empty container element.
func NewElement(f format.Format, name string) *Node {
	return &Node{
		Kind:   ElementKind,
		Format: f,
		Type:   ObjectType,
		Name:   name,
	}
}

// NewArray returns an empty container element whose JSON type is Array.
func NewArray(f format.Format, name string) *Node {
	n := NewElement(f, name)
	n.Type = ArrayType
	return n
}

// NewValue returns a value element. A nil text yields a null value node.
func NewValue(f format.Format, name string, text *string, t Type) *Node {
	if text == nil {
		t = NullType
	}
	return &Node{
		Kind:   ElementKind,
		Format: f,
		Type:   t,
		Name:   name,
		Text:   text,
	}
}

// NewNull returns a node with no text, rendered as a self-closing element or a
// JSON null.
func NewNull(f format.Format, name string) *Node {
	return NewValue(f, name, nil, NullType)
}

// NewAttribute returns an XML attribute node.
func NewAttribute(name, text string) *Node {
	return &Node{
		Kind:   AttributeKind,
		Format: format.XMLFormat,
		Type:   StringType,
		Name:   name,
		Text:   &text,
	}
}

// Append adds child as the last child (or attribute) of y and returns y.
func (y *Node) Append(child *Node) *Node {
	child.Parent = y
	if child.Kind == AttributeKind {
		child.ParentIndex = len(y.Attributes)
		y.Attributes = append(y.Attributes, child)
		return y
	}
	child.ParentIndex = len(y.Children)
	y.Children = append(y.Children, child)
	return y
}

// IsValue reports whether y carries text rather than structure.
func (y *Node) IsValue() bool {
	if y.Kind == AttributeKind {
		return true
	}
	return len(y.Children) == 0 && y.Type != ObjectType && y.Type != ArrayType
}

// IsNull reports whether y is the null marker: a JSON null, or a
// self-closing XML element with no attributes. An empty open/close pair is
// an empty value, not null.
func (y *Node) IsNull() bool {
	if y.Format.IsJSON() {
		return y.Type == NullType && len(y.Children) == 0
	}
	return y.Text == nil && len(y.Children) == 0 && len(y.Attributes) == 0
}

// Value returns the node text and whether it was present.
func (y *Node) Value() (string, bool) {
	if y.Text == nil {
		return "", false
	}
	return *y.Text, true
}

// LocalName returns Name with any namespace prefix removed.
func (y *Node) LocalName() string {
	return LocalName(y.Name)
}

func LocalName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Child returns the first child element with the given local name.
func (y *Node) Child(name string) *Node {
	for _, c := range y.Children {
		if c.LocalName() == name {
			return c
		}
	}
	return nil
}

// Attr returns the attribute with the given local name.
func (y *Node) Attr(name string) *Node {
	for _, a := range y.Attributes {
		if a.LocalName() == name {
			return a
		}
	}
	return nil
}

// Root walks up Parent links.
func (y *Node) Root() *Node {
	for y.Parent != nil {
		y = y.Parent
	}
	return y
}

// Visit calls f on y, its attributes and then its children depth first,
// stopping at the first error.
func (y *Node) Visit(f func(*Node) error) error {
	if err := f(y); err != nil {
		return err
	}
	for _, a := range y.Attributes {
		if err := f(a); err != nil {
			return err
		}
	}
	for _, c := range y.Children {
		if err := c.Visit(f); err != nil {
			return err
		}
	}
	return nil
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Kind = y.Kind
	dst.Format = y.Format
	dst.Type = y.Type
	dst.Name = y.Name
	dst.Namespace = y.Namespace
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	if y.Text != nil {
		dst.Text = Str(*y.Text)
	}
	if len(y.Namespaces) != 0 {
		dst.Namespaces = append([]Namespace(nil), y.Namespaces...)
	}
	dst.Attributes = make([]*Node, len(y.Attributes))
	for i, a := range y.Attributes {
		dstI := a.CloneTo(&Node{})
		dstI.Parent = dst
		dst.Attributes[i] = dstI
	}
	dst.Children = make([]*Node, len(y.Children))
	for i, c := range y.Children {
		dstI := c.CloneTo(&Node{})
		dstI.Parent = dst
		dst.Children[i] = dstI
	}
	return dst
}
