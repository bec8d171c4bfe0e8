package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/objdoc/encode"
	"github.com/signadot/objdoc/format"
	"github.com/signadot/objdoc/ir"
	"github.com/signadot/objdoc/parse"

	"github.com/scott-cotton/cli"
)

func objdocMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.X && cfg.J {
		return fmt.Errorf("%w: must specify at most one of -x[ml] -j[son]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readDoc parses file, or standard input for "-", and applies the
// configured node rules.
func (cfg *MainConfig) readDoc(cc *cli.Context, file string) (*ir.Node, format.Format, error) {
	f := cfg.inFormat(file)
	var r io.Reader = cc.In
	if file != "-" {
		fp, err := os.Open(file)
		if err != nil {
			return nil, f, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer fp.Close()
		r = fp
	}
	node, err := parse.ParseReader(r, parse.ParseFormat(f))
	if err != nil {
		return nil, f, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return node, f, nil
}

func (cfg *MainConfig) rewrite(node *ir.Node) error {
	o, err := cfg.options()
	if err != nil {
		return err
	}
	return o.Rewrite(node)
}

// writeDoc encodes node to w, ending with a newline.
func (cfg *MainConfig) writeDoc(w io.Writer, node *ir.Node, f format.Format, extra ...encode.EncodeOption) error {
	opts, err := cfg.encOpts(w, f)
	if err != nil {
		return err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, append(opts, extra...)...); err != nil {
		return fmt.Errorf("error encoding %s: %w", node.Name, err)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	_, err = w.Write(buf.Bytes())
	return err
}
