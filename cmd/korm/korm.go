package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

// kormMain parses the global options and hands the rest of the command
// line to a subcommand. The -o file is closed once the subcommand is done,
// and a failed close is reported.
func kormMain(cfg *MainConfig, cc *cli.Context, args []string) (err error) {
	defer func() {
		if cfg.CloseOut != nil {
			err = errors.Join(err, cfg.CloseOut())
		}
	}()
	args, err = cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	return runSub(cfg.Main, cc, args[0], args[1:])
}

func runSub(root *cli.Command, cc *cli.Context, name string, args []string) error {
	sub := root.FindSub(cc, name)
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, name)
	}
	err := sub.Run(cc, args)
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) validate() error {
	if cfg.Indent < 0 {
		return fmt.Errorf("%w: -indent %d is negative", cli.ErrUsage, cfg.Indent)
	}
	if cfg.Color && cfg.Out != "" && cfg.Out != "-" {
		return fmt.Errorf("%w: -color writes escapes, not for -o %s", cli.ErrUsage, cfg.Out)
	}
	return nil
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	f, err := cfg.openOut(a)
	if err != nil || f == nil {
		return nil, err
	}
	cc.Out = f
	return nil, nil
}

// openOut records the -o destination. "-" is stdout and yields no file.
func (cfg *MainConfig) openOut(path string) (*os.File, error) {
	cfg.Out = path
	if path == "-" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	cfg.CloseOut = f.Close
	return f, nil
}
