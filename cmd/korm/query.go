package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/korm-format/go-korm/bridge"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an expression", cli.ErrUsage)
	}
	return queryFiles(cfg, cc.In, cc.Out, args[0], files(args[1:]))
}

func queryFiles(cfg *QueryConfig, in io.Reader, w io.Writer, src string, paths []string) error {
	for _, path := range paths {
		n, err := readNode(in, path, "")
		if err != nil {
			return err
		}
		res, err := bridge.Query(n, src)
		if err != nil {
			return fmt.Errorf("error querying %s: %w", path, err)
		}
		if err := cfg.output(w, res, cfg.JSON); err != nil {
			return err
		}
	}
	return nil
}
