package encode

import (
	"bufio"
	"encoding/xml"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/signadot/objdoc/ir"
)

type xmlWriter struct {
	w  *bufio.Writer
	es *EncState
}

func encodeXML(node *ir.Node, w io.Writer, es *EncState) error {
	if node.Kind != ir.ElementKind {
		return errors.Wrapf(ErrEncode, "cannot write %s %q as an XML document", node.Kind, node.Name)
	}
	xw := &xmlWriter{w: bufio.NewWriter(w), es: es}
	if es.header {
		xw.w.WriteString(XMLHeader)
		xw.newline()
	}
	if err := xw.element(node, "", 0); err != nil {
		return err
	}
	xw.newline()
	return xw.w.Flush()
}

func (xw *xmlWriter) newline() {
	if xw.es.pretty {
		xw.w.WriteByte('\n')
	}
}

func (xw *xmlWriter) pad(depth int) {
	if xw.es.pretty {
		xw.w.WriteString(strings.Repeat(" ", depth*xw.es.indent))
	}
}

// text writes s escaped. bufio.Writer errors are sticky and surface on
// Flush.
func (xw *xmlWriter) text(t ir.Type, attr ColorAttr, s string) {
	if xw.es.Color == nil {
		_ = xml.EscapeText(xw.w, []byte(s))
		return
	}
	buf := &strings.Builder{}
	_ = xml.EscapeText(buf, []byte(s))
	xw.w.WriteString(xw.es.Color(t, attr, buf.String()))
}

func (xw *xmlWriter) attr(t ir.Type, name, val string) {
	xw.w.WriteByte(' ')
	xw.w.WriteString(xw.es.color(t, FieldColor, name))
	xw.w.WriteString(`="`)
	xw.text(t, ValueColor, val)
	xw.w.WriteByte('"')
}

// element writes n. scope is the default namespace in effect at the
// parent.
func (xw *xmlWriter) element(n *ir.Node, scope string, depth int) error {
	if n.Name == "" {
		return errors.Wrapf(ErrEncode, "element without a name at %s", n.Path())
	}
	xw.pad(depth)
	xw.w.WriteString(xw.es.color(n.Type, SepColor, "<"))
	xw.w.WriteString(xw.es.color(n.Type, FieldColor, n.Name))
	for _, ns := range n.Namespaces {
		if ns.Prefix == "" {
			continue
		}
		xw.attr(ir.StringType, "xmlns:"+ns.Prefix, ns.URI)
	}
	if n.Namespace != scope {
		xw.attr(ir.StringType, "xmlns", n.Namespace)
	}
	for _, a := range n.Attributes {
		if a.Name == "" {
			return errors.Wrapf(ErrEncode, "attribute without a name at %s", n.Path())
		}
		val := ""
		if a.Text != nil {
			val = *a.Text
		}
		xw.attr(a.Type, a.Name, val)
	}
	if len(n.Children) == 0 {
		if n.Text == nil {
			xw.w.WriteString(xw.es.color(n.Type, SepColor, " />"))
			return nil
		}
		xw.w.WriteString(xw.es.color(n.Type, SepColor, ">"))
		xw.text(n.Type, ValueColor, *n.Text)
		xw.closeTag(n)
		return nil
	}
	xw.w.WriteString(xw.es.color(n.Type, SepColor, ">"))
	if n.Text != nil && strings.TrimSpace(*n.Text) != "" {
		xw.text(ir.StringType, ValueColor, *n.Text)
	}
	for _, c := range n.Children {
		if c.Kind != ir.ElementKind {
			continue
		}
		xw.newline()
		if err := xw.element(c, n.Namespace, depth+1); err != nil {
			return err
		}
	}
	xw.newline()
	xw.pad(depth)
	xw.closeTag(n)
	return nil
}

func (xw *xmlWriter) closeTag(n *ir.Node) {
	xw.w.WriteString(xw.es.color(n.Type, SepColor, "</"))
	xw.w.WriteString(xw.es.color(n.Type, FieldColor, n.Name))
	xw.w.WriteString(xw.es.color(n.Type, SepColor, ">"))
}
