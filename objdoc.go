// Package objdoc maps Go values to XML and JSON documents and back.
//
// The mapping is driven by the shape of the Go types involved: struct
// fields become elements (or attributes), slices become collection
// elements, maps become sequences of Key/Value pairs. Struct tags with the
// key "objdoc" override names and placement. Cyclic graphs are handled by
// omitting references back to an enclosing object.
//
// The functions here join the serialize, encode, parse and deserialize
// packages for the common cases of strings, streams and files.
package objdoc

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/signadot/objdoc/deserialize"
	"github.com/signadot/objdoc/encode"
	"github.com/signadot/objdoc/format"
	"github.com/signadot/objdoc/ir"
	"github.com/signadot/objdoc/options"
	"github.com/signadot/objdoc/parse"
	"github.com/signadot/objdoc/serialize"
)

// SerializeXML returns the XML document for v.
func SerializeXML(v any, opts ...options.Option) (string, error) {
	return serializeString(v, format.XMLFormat, opts)
}

// SerializeXMLTo writes the XML document for v to w, preceded by an XML
// declaration.
func SerializeXMLTo(w io.Writer, v any, opts ...options.Option) error {
	return serializeTo(w, v, format.XMLFormat, opts)
}

// SerializeXMLFile writes the XML document for v to the file at path,
// creating or truncating it.
func SerializeXMLFile(path string, v any, opts ...options.Option) error {
	return serializeFile(path, v, format.XMLFormat, opts)
}

// SerializeXMLNode returns the XML node tree for v without encoding it.
func SerializeXMLNode(v any, opts ...options.Option) (*ir.Node, error) {
	return serialize.Serialize(v, format.XMLFormat, opts...)
}

func SerializeJSON(v any, opts ...options.Option) (string, error) {
	return serializeString(v, format.JSONFormat, opts)
}

func SerializeJSONTo(w io.Writer, v any, opts ...options.Option) error {
	return serializeTo(w, v, format.JSONFormat, opts)
}

func SerializeJSONFile(path string, v any, opts ...options.Option) error {
	return serializeFile(path, v, format.JSONFormat, opts)
}

func SerializeJSONNode(v any, opts ...options.Option) (*ir.Node, error) {
	return serialize.Serialize(v, format.JSONFormat, opts...)
}

// DeserializeXML parses text as XML and fills the value v points to.
func DeserializeXML(text string, v any, opts ...options.Option) error {
	return deserializeFrom(strings.NewReader(text), v, format.XMLFormat, opts)
}

func DeserializeXMLFrom(r io.Reader, v any, opts ...options.Option) error {
	return deserializeFrom(r, v, format.XMLFormat, opts)
}

func DeserializeXMLFile(path string, v any, opts ...options.Option) error {
	return deserializeFile(path, v, format.XMLFormat, opts)
}

// DeserializeJSON parses text as JSON and fills the value v points to.
func DeserializeJSON(text string, v any, opts ...options.Option) error {
	return deserializeFrom(strings.NewReader(text), v, format.JSONFormat, opts)
}

func DeserializeJSONFrom(r io.Reader, v any, opts ...options.Option) error {
	return deserializeFrom(r, v, format.JSONFormat, opts)
}

func DeserializeJSONFile(path string, v any, opts ...options.Option) error {
	return deserializeFile(path, v, format.JSONFormat, opts)
}

// FromXML returns the T described by the XML document text.
func FromXML[T any](text string, opts ...options.Option) (T, error) {
	var res T
	err := DeserializeXML(text, &res, opts...)
	return res, err
}

// FromJSON returns the T described by the JSON document text.
func FromJSON[T any](text string, opts ...options.Option) (T, error) {
	var res T
	err := DeserializeJSON(text, &res, opts...)
	return res, err
}

// EncodeOptions returns the encoder settings o implies for f.
func EncodeOptions(o *options.Options, f format.Format, header bool) []encode.EncodeOption {
	pretty := o.PrettyPrintXML
	if f.IsJSON() {
		pretty = o.PrettyPrintJSON
	}
	return []encode.EncodeOption{
		encode.EncodeFormat(f),
		encode.EncodePretty(pretty),
		encode.EncodeHeader(header && f.IsXML()),
	}
}

func build(v any, f format.Format, opts []options.Option) (*ir.Node, *options.Options, error) {
	o := options.New(opts...)
	node, err := serialize.New(o).Serialize(v, f)
	if err != nil {
		return nil, nil, err
	}
	return node, o, nil
}

func serializeString(v any, f format.Format, opts []options.Option) (string, error) {
	node, o, err := build(v, f, opts)
	if err != nil {
		return "", err
	}
	buf := &strings.Builder{}
	if err := encode.Encode(node, buf, EncodeOptions(o, f, false)...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func serializeTo(w io.Writer, v any, f format.Format, opts []options.Option) error {
	node, o, err := build(v, f, opts)
	if err != nil {
		return err
	}
	if err := encode.Encode(node, w, EncodeOptions(o, f, true)...); err != nil {
		return errors.Wrapf(err, "writing %s document", f)
	}
	return nil
}

func serializeFile(path string, v any, f format.Format, opts []options.Option) (err error) {
	node, o, err := build(v, f, opts)
	if err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := fp.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()
	if err := encode.Encode(node, fp, EncodeOptions(o, f, true)...); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

func deserializeFrom(r io.Reader, v any, f format.Format, opts []options.Option) error {
	node, err := parse.ParseReader(r, parse.ParseFormat(f))
	if err != nil {
		return err
	}
	return deserialize.New(options.New(opts...)).Deserialize(node, v)
}

func deserializeFile(path string, v any, f format.Format, opts []options.Option) error {
	fp, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer fp.Close()
	if err := deserializeFrom(fp, v, f, opts); err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	return nil
}
