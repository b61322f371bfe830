package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/tony-format/docshape/cborv"
	"github.com/signadot/tony-format/docshape/ir"
	"github.com/signadot/tony-format/docshape/parse"
	"github.com/signadot/tony-format/docshape/shape"
)

func narrow(cfg *NarrowConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Narrow.Parse(cc, args)
	if err != nil {
		return err
	}
	s, err := shape.ParseShape(cfg.Shape)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	var docs []*ir.Node
	for _, file := range args {
		in, err := readFile(file, cc.In)
		if err != nil {
			return err
		}
		fileDocs, err := narrowInput(cfg, s, in)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		docs = append(docs, fileDocs...)
	}
	return writeDocs(cfg.MainConfig, cc.Out, docs)
}

func readFile(file string, stdin io.Reader) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", file, err)
	}
	return d, nil
}

// narrowInput narrows every document of in. Textual input may hold several
// documents separated by "---" lines; binary input holds exactly one.
func narrowInput(cfg *NarrowConfig, s shape.Shape, in []byte) ([]*ir.Node, error) {
	if cfg.Binary {
		v, err := cborv.Unmarshal(in)
		if err != nil {
			return nil, err
		}
		if cfg.Strict {
			v, err = s.NarrowBinaryStrict(v)
			if err != nil {
				return nil, err
			}
		} else {
			v = s.NarrowBinary(v)
		}
		return []*ir.Node{cborv.ToIR(v)}, nil
	}
	var res []*ir.Node
	for i, doc := range bytes.Split(in, []byte("\n---\n")) {
		node, err := parse.Parse(doc, cfg.parseOpts()...)
		if err != nil {
			return nil, fmt.Errorf("error decoding document %d: %w", i, err)
		}
		if cfg.Strict {
			node, err = s.NarrowTextStrict(node)
			if err != nil {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
		} else {
			node = s.NarrowText(node)
		}
		res = append(res, node)
	}
	return res, nil
}
