package main

import (
	"io"
	"os"

	"github.com/signadot/tony-format/docshape/encode"
	"github.com/signadot/tony-format/docshape/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color    bool `cli:"name=color desc='encode with color'"`
	WireOut  bool `cli:"name=wire desc='output in compact format'"`
	MaxDepth int  `cli:"name=depth desc='maximum document depth, 0 for no limit'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	if cfg.MaxDepth <= 0 {
		return nil
	}
	return []parse.ParseOption{parse.ParseMaxDepth(cfg.MaxDepth)}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.MaxDepth > 0 {
		res = append(res, encode.Depth(cfg.MaxDepth))
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			// -color=false given explicitly
			return res
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type DescribeConfig struct {
	*MainConfig

	Dir string `cli:"name=dir desc='directory to load packages from'"`
	Pkg string `cli:"name=pkg desc='package pattern containing the types, default the package in dir'"`

	Describe *cli.Command
}

type NarrowConfig struct {
	*MainConfig

	Shape  string `cli:"name=shape desc='shape to narrow to: object, array or scalar'"`
	Binary bool   `cli:"name=binary desc='input is binary, output is its textual rendering'"`
	Strict bool   `cli:"name=strict desc='fail on shape mismatch instead of yielding an empty container'"`

	Narrow *cli.Command
}
