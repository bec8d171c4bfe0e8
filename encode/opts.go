package encode

import "github.com/signadot/objdoc/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) {
		es.format = f
		es.formatSet = true
	}
}

// EncodePretty turns on indentation and line breaks.
func EncodePretty(v bool) EncodeOption {
	return func(es *EncState) { es.pretty = v }
}

// EncodeIndent sets the indentation step used when pretty printing.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeHeader writes the XML declaration before the root element. It has
// no effect on JSON.
func EncodeHeader(v bool) EncodeOption {
	return func(es *EncState) { es.header = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}
