package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	return convertFiles(cfg, cc.In, cc.Out, files(args))
}

func convertFiles(cfg *ConvertConfig, in io.Reader, w io.Writer, paths []string) error {
	asJSON := false
	switch strings.ToLower(cfg.To) {
	case "", "korm":
	case "json":
		asJSON = true
	default:
		return fmt.Errorf("%w: unknown output format %q", cli.ErrUsage, cfg.To)
	}
	for _, path := range paths {
		n, err := readNode(in, path, cfg.From)
		if err != nil {
			return err
		}
		if err := cfg.output(w, n, asJSON); err != nil {
			return fmt.Errorf("error encoding %s: %w", path, err)
		}
	}
	return nil
}
