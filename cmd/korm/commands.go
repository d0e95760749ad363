package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "layout",
			Description: "layout toggles or preset: " + layoutNames(),
			Type:        cli.NamedFuncOpt(cfg.layoutOpt, "(toggles)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "korm").
		WithSynopsis("korm [opts] command [opts]").
		WithDescription("korm is a tool for working with korm documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return kormMain(cfg, cc, args)
		}).
		WithSubs(
			FmtCommand(cfg),
			ViewCommand(cfg),
			CheckCommand(cfg),
			ConvertCommand(cfg),
			QueryCommand(cfg),
			PatchCommand(cfg))
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [-w] [-d] [files]").
		WithDescription("reformat korm documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return kormFmt(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view korm documents in color").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [files]").
		WithDescription("check that files are well formed korm documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithSynopsis("convert [-from yaml|json|korm] [-to korm|json] [files]").
		WithDescription("convert documents between yaml, json and korm").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query [-j] <expr> [files]").
		WithDescription(queryDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return query(cfg, cc, args)
		})
}

const queryDescription = `query evaluates an expression against documents.

The document is bound to 'doc' and, when it is a map, each of its entries
is bound by key:

  korm query 'filter(items, .n > 2) | map(.name)' data.korm

korm(v) renders a value as korm text.`

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-merge] [-j] <patchfile> [files]").
		WithDescription("apply a json patch or, with -merge, a merge patch to documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}
