// Package encode writes ir node trees as XML or JSON text.
//
// XML value nodes with nil text are written as self-closing elements so
// that the null marker survives a parse. JSON value nodes are written as
// literals according to their Type.
package encode
