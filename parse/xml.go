package parse

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/signadot/objdoc/format"
	"github.com/signadot/objdoc/ir"
	"golang.org/x/text/encoding/ianaindex"
)

// recorder remembers the last two bytes the decoder consumed. After a
// StartElement token they are "/>" exactly when the tag was self-closing.
type recorder struct {
	br         *bufio.Reader
	prev, last byte
}

func newRecorder(r io.Reader) *recorder {
	return &recorder{br: bufio.NewReader(r)}
}

func (r *recorder) ReadByte() (byte, error) {
	b, err := r.br.ReadByte()
	if err == nil {
		r.prev, r.last = r.last, b
	}
	return b, err
}

func (r *recorder) Read(p []byte) (int, error) {
	n, err := r.br.Read(p)
	switch {
	case n >= 2:
		r.prev, r.last = p[n-2], p[n-1]
	case n == 1:
		r.prev, r.last = r.last, p[0]
	}
	return n, err
}

func (r *recorder) selfClosed() bool {
	return r.prev == '/' && r.last == '>'
}

type xmlParser struct {
	dec *xml.Decoder
	rec *recorder
}

func parseXML(r io.Reader) (*ir.Node, error) {
	p := &xmlParser{rec: newRecorder(r)}
	p.dec = xml.NewDecoder(p.rec)
	p.dec.CharsetReader = p.charsetReader
	var (
		root  *ir.Node
		stack []*ir.Node
	)
	for {
		tok, err := p.dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, p.syntaxError(err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, p.errorf("more than one root element, found <%s>", qualified(tok.Name))
			}
			n := ir.NewElement(format.XMLFormat, qualified(tok.Name))
			if len(stack) != 0 {
				n.Namespace = stack[len(stack)-1].Namespace
			}
			for _, a := range tok.Attr {
				switch {
				case a.Name.Space == "xmlns":
					n.Namespaces = append(n.Namespaces, ir.Namespace{Prefix: a.Name.Local, URI: a.Value})
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					n.Namespace = a.Value
				default:
					name := qualified(a.Name)
					for _, prev := range n.Attributes {
						if prev.Name == name {
							return nil, p.errorf("attribute %s repeated in <%s>", name, n.Name)
						}
					}
					n.Append(ir.NewAttribute(name, a.Value))
				}
			}
			if !p.rec.selfClosed() {
				n.Text = ir.Str("")
			}
			if len(stack) == 0 {
				root = n
			} else {
				stack[len(stack)-1].Append(n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, p.errorf("unexpected end element </%s>", qualified(tok.Name))
			}
			top := stack[len(stack)-1]
			if name := qualified(tok.Name); name != top.Name {
				return nil, p.errorf("element <%s> closed by </%s>", top.Name, name)
			}
			finishElement(top)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(strings.TrimSpace(string(tok))) != 0 {
					return nil, p.errorf("text outside the root element")
				}
				continue
			}
			top := stack[len(stack)-1]
			if top.Text == nil {
				top.Text = ir.Str("")
			}
			*top.Text += string(tok)
		}
	}
	if len(stack) != 0 {
		return nil, p.errorf("unexpected EOF in element <%s>", stack[len(stack)-1].Name)
	}
	if root == nil {
		return nil, p.errorf("no root element")
	}
	return root, nil
}

// finishElement sets the Type of a closed element. Whitespace between
// child elements is not content.
func finishElement(n *ir.Node) {
	switch {
	case len(n.Children) != 0:
		n.Type = ir.ObjectType
		if n.Text != nil && strings.TrimSpace(*n.Text) == "" {
			n.Text = nil
		}
	case len(n.Attributes) != 0:
		n.Type = ir.ObjectType
	case n.Text == nil:
		n.Type = ir.NullType
	default:
		n.Type = ir.StringType
	}
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// charsetReader handles non UTF-8 encoding declarations. UTF-16 input has
// already been converted by the byte order mark transform.
func (p *xmlParser) charsetReader(label string, r io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "utf-16", "utf-16le", "utf-16be", "unicode", "us-ascii", "ascii":
		return r, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, errors.Wrapf(err, "unsupported encoding %q", label)
	}
	if enc == nil {
		return nil, errors.Newf("unsupported encoding %q", label)
	}
	p.rec = newRecorder(enc.NewDecoder().Reader(r))
	return p.rec, nil
}

func (p *xmlParser) syntaxError(err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &SyntaxError{Format: format.XMLFormat, Line: se.Line, Msg: se.Msg, Err: err}
	}
	return &SyntaxError{Format: format.XMLFormat, Msg: err.Error(), Err: err}
}

func (p *xmlParser) errorf(msg string, args ...any) error {
	line, _ := p.dec.InputPos()
	return &SyntaxError{Format: format.XMLFormat, Line: line, Msg: fmt.Sprintf(msg, args...)}
}
