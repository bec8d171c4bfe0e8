// Package parse reads XML or JSON text into ir node trees.
//
// XML elements written self-closing carry nil text, elements written with
// an open and close tag carry their (possibly empty) text. JSON documents
// are rooted at a node named "root" and array items are named "item".
// Input may start with a UTF-8 or UTF-16 byte order mark.
package parse
