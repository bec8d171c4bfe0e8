package main

import (
	"github.com/signadot/objdoc/convert"
	"github.com/signadot/objdoc/format"

	"github.com/scott-cotton/cli"
)

func convertCmd(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		node, f, err := cfg.readDoc(cc, file)
		if err != nil {
			return err
		}
		def := format.JSONFormat
		if f.IsJSON() {
			def = format.XMLFormat
		}
		out := cfg.outFormat(def)
		if out.IsXML() {
			node = convert.ToXML(node, cfg.Root)
		} else {
			node = convert.To(node, out)
		}
		if err := cfg.rewrite(node); err != nil {
			return err
		}
		if err := cfg.writeDoc(cc.Out, node, out); err != nil {
			return err
		}
	}
	return nil
}
