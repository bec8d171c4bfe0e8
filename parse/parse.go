package parse

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/signadot/objdoc/debug"
	"github.com/signadot/objdoc/ir"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parse parses d. XML is assumed unless ParseJSON or ParseFormat says
// otherwise.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	return ParseReader(bytes.NewReader(d), opts...)
}

func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	r = transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	var (
		node *ir.Node
		err  error
	)
	if o.format.IsJSON() {
		node, err = parseJSON(r)
	} else {
		node, err = parseXML(r)
	}
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parsed %v with %d children\n", node, len(node.Children))
	}
	return node, nil
}

// MustParse is Parse that panics on error, for tests and fixtures.
func MustParse(d []byte, opts ...ParseOption) *ir.Node {
	node, err := Parse(d, opts...)
	if err != nil {
		panic(errors.Wrap(err, "MustParse"))
	}
	return node
}
