package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/tony-format/docshape/encode"
	"github.com/signadot/tony-format/docshape/ir"
	"github.com/signadot/tony-format/docshape/shape"
	"github.com/signadot/tony-format/docshape/shapecheck"
)

func describe(cfg *DescribeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Describe.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: describe requires at least one type name", cli.ErrUsage)
	}
	dir, pattern := cfg.Dir, cfg.Pkg
	if dir == "" {
		dir = "."
	}
	if pattern == "" {
		pattern = "."
	}
	loader := shapecheck.NewPackageLoader(dir)
	pkg, err := loader.Load(pattern)
	if err != nil {
		return err
	}
	c := loader.Classifier(pkg)
	docs := make([]*ir.Node, 0, len(args))
	for _, name := range args {
		t, err := loader.FindType(pkg, name)
		if err != nil {
			return err
		}
		docs = append(docs, shape.Describe(c.Describe(t)))
	}
	return writeDocs(cfg.MainConfig, cc.Out, docs)
}

func writeDocs(cfg *MainConfig, w io.Writer, docs []*ir.Node) error {
	opts := cfg.encOpts(w)
	for i, doc := range docs {
		if err := encode.Encode(doc, w, opts...); err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
		if cfg.WireOut {
			if _, err := w.Write([]byte("\n")); err != nil {
				return fmt.Errorf("error writing document %d: %w", i, err)
			}
		}
	}
	return nil
}
