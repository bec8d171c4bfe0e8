package parse

import "github.com/signadot/objdoc/format"

type parseOpts struct {
	format format.Format
}

type ParseOption func(*parseOpts)

func ParseXML() ParseOption {
	return ParseFormat(format.XMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}
