package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/objdoc/convert"
	"github.com/signadot/objdoc/encode"
	"github.com/signadot/objdoc/format"
	"github.com/signadot/objdoc/ir"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, fa, err := cfg.readDoc(cc, args[0])
	if err != nil {
		return err
	}
	b, _, err := cfg.readDoc(cc, args[1])
	if err != nil {
		return err
	}
	out := cfg.outFormat(fa)
	ta, err := cfg.canonical(a, out)
	if err != nil {
		return err
	}
	tb, err := cfg.canonical(b, out)
	if err != nil {
		return err
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(ta, tb)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	if !differs(diffs) {
		return nil
	}
	if !cfg.Quiet {
		colored := cfg.Color || (!cfg.colorSet() && isTerminal(cc.Out))
		if err := writeDiff(cc.Out, diffs, colored); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}

// canonical renders node in f with one element or field per line.
func (cfg *MainConfig) canonical(node *ir.Node, f format.Format) (string, error) {
	if node.Format != f {
		node = convert.To(node, f)
	}
	if err := cfg.rewrite(node); err != nil {
		return "", err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeFormat(f), encode.EncodePretty(true)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func differs(diffs []diffmatchpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return true
		}
	}
	return false
}

func writeDiff(w io.Writer, diffs []diffmatchpatch.Diff, colored bool) error {
	add := fmt.Sprint
	del := fmt.Sprint
	if colored {
		add = color.New(color.FgGreen).SprintFunc()
		del = color.New(color.FgRed).SprintFunc()
	}
	buf := &strings.Builder{}
	for _, d := range diffs {
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			if !strings.HasSuffix(ln, "\n") {
				ln += "\n"
			}
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				buf.WriteString(add("+ " + ln))
			case diffmatchpatch.DiffDelete:
				buf.WriteString(del("- " + ln))
			default:
				buf.WriteString("  " + ln)
			}
		}
	}
	_, err := io.WriteString(w, buf.String())
	return err
}
