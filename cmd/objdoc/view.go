package main

import (
	"github.com/signadot/objdoc/convert"
	"github.com/signadot/objdoc/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
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
		out := cfg.outFormat(f)
		if out != f {
			node = convert.To(node, out)
		}
		if err := cfg.rewrite(node); err != nil {
			return err
		}
		if err := cfg.writeDoc(cc.Out, node, out, encode.EncodeHeader(cfg.Header)); err != nil {
			return err
		}
	}
	return nil
}
