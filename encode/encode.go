package encode

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/signadot/objdoc/debug"
	"github.com/signadot/objdoc/format"
	"github.com/signadot/objdoc/ir"
)

// XMLHeader is the declaration written by EncodeHeader(true).
const XMLHeader = `<?xml version="1.0" encoding="utf-8"?>`

var ErrEncode = errors.New("encode error")

type EncState struct {
	format    format.Format
	formatSet bool
	pretty    bool
	indent    int
	header    bool

	Color func(ir.Type, ColorAttr, string) string
}

func (es *EncState) color(t ir.Type, attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, attr, s)
}

// Encode writes node to w. Without EncodeFormat the node's own format is
// used.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	if node == nil {
		return errors.Wrap(ErrEncode, "nil node")
	}
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if !es.formatSet {
		es.format = node.Format
	}
	if debug.Encode() {
		debug.Logf("encoding %v as %s pretty=%t\n", node, es.format, es.pretty)
	}
	if es.format.IsJSON() {
		return encodeJSON(node, w, es)
	}
	return encodeXML(node, w, es)
}
