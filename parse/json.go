package parse

import (
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/signadot/objdoc/format"
	"github.com/signadot/objdoc/ir"
)

const (
	jsonRootName = "root"
	jsonItemName = "item"
)

func parseJSON(r io.Reader) (*ir.Node, error) {
	iter := jsoniter.Parse(jsoniter.ConfigDefault, r, 4096)
	root := jsonValue(iter, jsonRootName)
	if iter.Error != nil {
		return nil, jsonError(iter.Error)
	}
	if next := iter.WhatIsNext(); next != jsoniter.InvalidValue {
		return nil, &SyntaxError{Format: format.JSONFormat, Msg: "unexpected data after the top level value"}
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, jsonError(iter.Error)
	}
	return root, nil
}

func jsonError(err error) error {
	return &SyntaxError{Format: format.JSONFormat, Msg: err.Error(), Err: err}
}

func jsonValue(iter *jsoniter.Iterator, name string) *ir.Node {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return ir.NewNull(format.JSONFormat, name)
	case jsoniter.BoolValue:
		text := strconv.FormatBool(iter.ReadBool())
		return ir.NewValue(format.JSONFormat, name, &text, ir.BoolType)
	case jsoniter.NumberValue:
		text := string(iter.ReadNumber())
		return ir.NewValue(format.JSONFormat, name, &text, ir.NumberType)
	case jsoniter.StringValue:
		text := iter.ReadString()
		return ir.NewValue(format.JSONFormat, name, &text, ir.StringType)
	case jsoniter.ArrayValue:
		n := ir.NewArray(format.JSONFormat, name)
		for iter.ReadArray() {
			item := jsonValue(iter, jsonItemName)
			if item == nil {
				return n
			}
			n.Append(item)
		}
		return n
	case jsoniter.ObjectValue:
		n := ir.NewElement(format.JSONFormat, name)
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
			child := jsonValue(iter, field)
			if child == nil {
				return false
			}
			n.Append(child)
			return iter.Error == nil
		})
		return n
	}
	if iter.Error == nil {
		iter.ReportError("jsonValue", "expected a JSON value")
	}
	return nil
}
