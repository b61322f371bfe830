package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "docshape").
		WithSynopsis("docshape [opts] command [opts]").
		WithDescription("docshape classifies Go types for serialization and narrows documents to shapes.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return docshapeMain(cfg, cc, args)
		}).
		WithSubs(
			DescribeCommand(cfg),
			NarrowCommand(cfg))
}

func DescribeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DescribeConfig{MainConfig: mainCfg, Dir: "."}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("describe").
		WithAliases("d", "desc").
		WithSynopsis("describe [-dir dir] [-pkg pattern] TypeName...").
		WithDescription("describe the classification, serializability and shapes of Go types").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return describe(cfg, cc, args)
		})
	cfg.Describe = cmd
	return cmd
}

func NarrowCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NarrowConfig{MainConfig: mainCfg, Shape: "object"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("narrow").
		WithAliases("n").
		WithSynopsis("narrow [-shape object|array|scalar] [-binary] [-strict] [files]").
		WithDescription("narrow documents to a shape, yielding empty containers on mismatch").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return narrow(cfg, cc, args)
		})
	cfg.Narrow = cmd
	return cmd
}
