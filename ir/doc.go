// Package ir provides the node tree shared by the XML and JSON sides of objdoc.
//
// # Overview
//
// Every document, whether produced by the serializer or read by a parser, is
// represented as a tree of *Node. A node is either an element or an attribute.
// Elements have ordered attributes and children; a value node is an element or
// attribute carrying text and no children.
//
// # Text
//
// Text is a *string so that three presentations stay distinct:
//
//   - nil: the node had no text at all (a self-closing XML element, a JSON null)
//   - pointer to "": the node was present but empty
//   - pointer to a non-empty string
//
// # Types
//
// The Type field is the JSON data type of a node. JSON writers use it to decide
// how a literal is emitted since node text alone does not say whether "5" is a
// number or a string. XML writers ignore it.
//
// # Formats
//
// Nodes are annotated with the format.Format that produced them. JSON nodes
// never carry attributes and never declare namespaces.
//
// # Thread Safety
//
// Node structures are not thread-safe.
package ir
