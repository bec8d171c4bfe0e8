package encode

import (
	"io"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/signadot/objdoc/ir"
)

var (
	compactAPI = jsoniter.Config{}.Froze()
	prettyAPI  = jsoniter.Config{IndentionStep: 2}.Froze()
)

type jsonWriter struct {
	s  *jsoniter.Stream
	es *EncState
}

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	api := compactAPI
	if es.pretty {
		api = prettyAPI
		if es.indent != 2 {
			api = jsoniter.Config{IndentionStep: es.indent}.Froze()
		}
	}
	stream := api.BorrowStream(w)
	defer api.ReturnStream(stream)
	jw := &jsonWriter{s: stream, es: es}
	jw.value(node)
	if es.pretty {
		stream.WriteRaw("\n")
	}
	if stream.Error != nil {
		return errors.Wrapf(stream.Error, "writing %s", node.Path())
	}
	return stream.Flush()
}

func (jw *jsonWriter) str(t ir.Type, attr ColorAttr, s string) {
	if jw.es.Color == nil {
		jw.s.WriteString(s)
		return
	}
	q, _ := jsoniter.MarshalToString(s)
	jw.s.WriteRaw(jw.es.Color(t, attr, q))
}

func (jw *jsonWriter) raw(t ir.Type, s string) {
	jw.s.WriteRaw(jw.es.color(t, ValueColor, s))
}

func (jw *jsonWriter) field(t ir.Type, name string) {
	if jw.es.Color == nil {
		jw.s.WriteObjectField(name)
		return
	}
	jw.str(t, FieldColor, name)
	if jw.es.pretty {
		jw.s.WriteRaw(": ")
	} else {
		jw.s.WriteRaw(":")
	}
}

func (jw *jsonWriter) value(n *ir.Node) {
	switch n.Type {
	case ir.NullType:
		jw.raw(ir.NullType, "null")
	case ir.BoolType, ir.NumberType:
		switch {
		case n.Text == nil:
			jw.raw(ir.NullType, "null")
		case jsoniter.Valid([]byte(*n.Text)):
			jw.raw(n.Type, *n.Text)
		default:
			jw.str(ir.StringType, ValueColor, *n.Text)
		}
	case ir.StringType:
		if n.Text == nil {
			jw.raw(ir.NullType, "null")
			return
		}
		jw.str(ir.StringType, ValueColor, *n.Text)
	case ir.ArrayType:
		if len(n.Children) == 0 {
			jw.s.WriteEmptyArray()
			return
		}
		jw.s.WriteArrayStart()
		for i, c := range n.Children {
			if i > 0 {
				jw.s.WriteMore()
			}
			jw.value(c)
		}
		jw.s.WriteArrayEnd()
	default:
		parts := make([]*ir.Node, 0, len(n.Attributes)+len(n.Children))
		parts = append(parts, n.Attributes...)
		parts = append(parts, n.Children...)
		if len(parts) == 0 {
			if n.Text != nil && *n.Text != "" {
				jw.str(ir.StringType, ValueColor, *n.Text)
				return
			}
			jw.s.WriteEmptyObject()
			return
		}
		jw.s.WriteObjectStart()
		for i, c := range parts {
			if i > 0 {
				jw.s.WriteMore()
			}
			jw.field(c.Type, c.LocalName())
			jw.value(c)
		}
		jw.s.WriteObjectEnd()
	}
}
