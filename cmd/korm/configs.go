package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/korm-format/go-korm/encode"
	"github.com/signadot/korm-format/go-korm/format"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='encode with color'"`
	Indent int  `cli:"name=indent desc='indent width'"`

	Layout *format.Options

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func layoutNames() string {
	return strings.Join(format.Names(), ", ") + ", min, pretty, max"
}

func (cfg *MainConfig) layoutOpt(_ *cli.Context, v string) (any, error) {
	o, err := format.ParseOptions(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Layout = &o
	return o, nil
}

// layout returns the layout given with -layout, or def. Nulls in
// documents are always written.
func (cfg *MainConfig) layout(def format.Options) format.Options {
	if cfg.Layout != nil {
		def = *cfg.Layout
	}
	def.SerializeNulls = true
	return def
}

func (cfg *MainConfig) indent() int {
	if cfg.Indent <= 0 {
		return 2
	}
	return cfg.Indent
}

func (cfg *MainConfig) encOpts(w io.Writer, def format.Options) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeLayout(cfg.layout(def)),
		encode.EncodeIndent(cfg.indent()),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
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

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write result to the source file'"`
	Diff  bool `cli:"name=d desc='show diffs instead of rewriting'"`

	Fmt *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	From string `cli:"name=from desc='input format: yaml, json or korm (default from file extension)'"`
	To   string `cli:"name=to desc='output format: korm or json' default=korm"`

	Convert *cli.Command
}

type QueryConfig struct {
	*MainConfig
	JSON bool `cli:"name=j aliases=json desc='output json'"`

	Query *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge desc='apply a merge patch'"`
	JSON  bool `cli:"name=j aliases=json desc='output json'"`

	Patch *cli.Command
}
