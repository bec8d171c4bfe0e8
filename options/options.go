// Package options holds the configuration shared by the serializer and the
// deserializer.
//
// An Options value is built once with New and is read-only afterwards, so a
// single snapshot may be shared by concurrent calls.
package options

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/samber/lo"
	"github.com/signadot/objdoc/ir"
	"github.com/signadot/objdoc/typeinfo"
	"github.com/signadot/objdoc/value"
)

// NodeType selects where simple values are placed in XML.
type NodeType int

const (
	ElementNode NodeType = iota
	AttributeNode
)

func (t NodeType) String() string {
	if t == AttributeNode {
		return "attribute"
	}
	return "element"
}

func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *NodeType) UnmarshalText(d []byte) error {
	switch string(d) {
	case "element", "":
		*t = ElementNode
	case "attribute":
		*t = AttributeNode
	default:
		return fmt.Errorf("unknown node type %q", d)
	}
	return nil
}

// WriterContext is passed to ValueWriters and NodeWriters.
type WriterContext struct {
	Options *Options
	// Field is the struct field the value came from, nil for the root and
	// collection items.
	Field *typeinfo.Field
	// Value is the source value.
	Value reflect.Value
	// Node is the node produced for Value.
	Node *ir.Node
	// Path is the location path of Node.
	Path string
	// Root is set for the document root.
	Root bool
}

// SetValue gives the node text and a JSON data type.
func (c *WriterContext) SetValue(text string, t ir.Type) {
	c.Node.Text = &text
	c.Node.Type = t
}

// ValueWriterFunc fills in Node for a value of a registered type. Node is
// named and empty when it is called.
type ValueWriterFunc func(*WriterContext) error

// NodeWriterFunc post-processes every produced node. It may add attributes,
// children or text but must not rename the node or change its kind.
type NodeWriterFunc func(*WriterContext) error

type Options struct {
	DefaultNamespace         string
	XMLValueNodeType         NodeType
	PrettyPrintXML           bool
	PrettyPrintJSON          bool
	ExcludeNullValues        bool
	ExcludedTypes            []reflect.Type
	GenericTypeXMLNameFormat string
	GenericListXMLNameFormat string
	ValueWriters             map[reflect.Type]ValueWriterFunc
	NodeWriters              []NodeWriterFunc
	XMLNamespaces            map[string]string

	IgnoreUnmatchedNodes             bool
	DefaultNonNullableTypesWhenEmpty bool
	FriendlyParseErrorMessages       map[value.Kind]string

	classifier *typeinfo.Classifier
	parser     *value.Parser
}

type Option func(*Options)

// New builds an options snapshot.
func New(opts ...Option) *Options {
	o := &Options{
		GenericTypeXMLNameFormat: typeinfo.DefaultGenericTypeFormat,
		GenericListXMLNameFormat: typeinfo.DefaultGenericListFormat,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.ValueWriters = maps.Clone(o.ValueWriters)
	o.NodeWriters = slices.Clone(o.NodeWriters)
	o.XMLNamespaces = maps.Clone(o.XMLNamespaces)
	o.FriendlyParseErrorMessages = maps.Clone(o.FriendlyParseErrorMessages)
	o.ExcludedTypes = slices.Clone(o.ExcludedTypes)
	o.classifier = typeinfo.NewClassifier(o.ExcludedTypes...)
	o.parser = &value.Parser{
		DefaultWhenEmpty: o.DefaultNonNullableTypesWhenEmpty,
		Reasons:          o.FriendlyParseErrorMessages,
	}
	return o
}

// Classifier returns the classifier for this snapshot.
func (o *Options) Classifier() *typeinfo.Classifier { return o.classifier }

// Parser returns the simple value parser for this snapshot.
func (o *Options) Parser() *value.Parser { return o.parser }

func (o *Options) Naming() typeinfo.Naming {
	return typeinfo.Naming{
		GenericType: o.GenericTypeXMLNameFormat,
		GenericList: o.GenericListXMLNameFormat,
	}
}

// Namespaces returns the root namespace declarations ordered by prefix.
func (o *Options) Namespaces() []ir.Namespace {
	prefixes := lo.Keys(o.XMLNamespaces)
	slices.Sort(prefixes)
	return lo.Map(prefixes, func(p string, _ int) ir.Namespace {
		return ir.Namespace{Prefix: p, URI: o.XMLNamespaces[p]}
	})
}

func DefaultNamespace(ns string) Option {
	return func(o *Options) { o.DefaultNamespace = ns }
}

func XMLValueNodeType(t NodeType) Option {
	return func(o *Options) { o.XMLValueNodeType = t }
}

func PrettyPrintXML(v bool) Option {
	return func(o *Options) { o.PrettyPrintXML = v }
}

func PrettyPrintJSON(v bool) Option {
	return func(o *Options) { o.PrettyPrintJSON = v }
}

func ExcludeNullValues(v bool) Option {
	return func(o *Options) { o.ExcludeNullValues = v }
}

func ExcludeTypes(types ...reflect.Type) Option {
	return func(o *Options) { o.ExcludedTypes = append(o.ExcludedTypes, types...) }
}

func GenericTypeXMLNameFormat(f string) Option {
	return func(o *Options) { o.GenericTypeXMLNameFormat = f }
}

func GenericListXMLNameFormat(f string) Option {
	return func(o *Options) { o.GenericListXMLNameFormat = f }
}

// ValueWriter registers fn for values whose type is exactly t.
func ValueWriter(t reflect.Type, fn ValueWriterFunc) Option {
	return func(o *Options) {
		if o.ValueWriters == nil {
			o.ValueWriters = map[reflect.Type]ValueWriterFunc{}
		}
		o.ValueWriters[t] = fn
	}
}

// ValueWriterFor is ValueWriter for the type parameter T.
func ValueWriterFor[T any](fn ValueWriterFunc) Option {
	return ValueWriter(reflect.TypeFor[T](), fn)
}

// NodeWriter appends fn to the post-process hooks.
func NodeWriter(fn NodeWriterFunc) Option {
	return func(o *Options) { o.NodeWriters = append(o.NodeWriters, fn) }
}

// XMLNamespace declares prefix on the XML root element.
func XMLNamespace(prefix, uri string) Option {
	return func(o *Options) {
		if o.XMLNamespaces == nil {
			o.XMLNamespaces = map[string]string{}
		}
		o.XMLNamespaces[prefix] = uri
	}
}

func IgnoreUnmatchedNodes(v bool) Option {
	return func(o *Options) { o.IgnoreUnmatchedNodes = v }
}

func DefaultNonNullableTypesWhenEmpty(v bool) Option {
	return func(o *Options) { o.DefaultNonNullableTypesWhenEmpty = v }
}

// FriendlyParseErrorMessage replaces the reason given when parsing kind k
// fails, for both plain and pointer destinations.
func FriendlyParseErrorMessage(k value.Kind, msg string) Option {
	return func(o *Options) {
		if o.FriendlyParseErrorMessages == nil {
			o.FriendlyParseErrorMessages = map[value.Kind]string{}
		}
		o.FriendlyParseErrorMessages[k] = msg
	}
}
