package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/objdoc/encode"
	"github.com/signadot/objdoc/format"
	"github.com/signadot/objdoc/options"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool   `cli:"name=color desc='encode with color'"`
	Pretty bool   `cli:"name=p aliases=pretty desc='indent the output'"`
	Config string `cli:"name=config desc='yaml file of serializer options and node rules'"`

	X bool `cli:"name=x aliases=xml desc='do i/o in xml'"`
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command

	opts *options.Options
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inFormat is the format to parse file in: -I, then -x/-j, then the file
// suffix.
func (cfg *MainConfig) inFormat(file string) format.Format {
	switch {
	case cfg.InFormat != nil:
		return *cfg.InFormat
	case cfg.J:
		return format.JSONFormat
	case cfg.X:
		return format.XMLFormat
	case file != "" && file != "-":
		return format.FromSuffix(file)
	}
	return format.XMLFormat
}

// outFormat is the format to write: -O, then -x/-j, then def.
func (cfg *MainConfig) outFormat(def format.Format) format.Format {
	switch {
	case cfg.OutFormat != nil:
		return *cfg.OutFormat
	case cfg.J:
		return format.JSONFormat
	case cfg.X:
		return format.XMLFormat
	}
	return def
}

func (cfg *MainConfig) options() (*options.Options, error) {
	if cfg.opts != nil {
		return cfg.opts, nil
	}
	var opts []options.Option
	if cfg.Config != "" {
		c, err := options.LoadConfig(cfg.Config)
		if err != nil {
			return nil, err
		}
		opts, err = c.Options()
		if err != nil {
			return nil, fmt.Errorf("error in %s: %w", cfg.Config, err)
		}
	}
	cfg.opts = options.New(opts...)
	return cfg.opts, nil
}

func (cfg *MainConfig) encOpts(w io.Writer, f format.Format) ([]encode.EncodeOption, error) {
	o, err := cfg.options()
	if err != nil {
		return nil, err
	}
	pretty := cfg.Pretty || (f.IsXML() && o.PrettyPrintXML) || (f.IsJSON() && o.PrettyPrintJSON)
	res := []encode.EncodeOption{
		encode.EncodeFormat(f),
		encode.EncodePretty(pretty),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors())), nil
	}
	if cfg.colorSet() {
		return res, nil
	}
	if isTerminal(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res, nil
}

// colorSet reports whether -color was given explicitly, possibly as false.
func (cfg *MainConfig) colorSet() bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" {
			return opt.Value != nil
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig
	Header bool `cli:"name=header desc='write the xml declaration'"`

	View *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	Root string `cli:"name=root desc='root element name for xml output'"`

	Convert *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only set the exit code'"`

	Diff *cli.Command
}
