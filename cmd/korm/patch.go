package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/korm-format/go-korm/bridge"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	return patchFiles(cfg, cc.In, cc.Out, args[0], files(args[1:]))
}

func patchFiles(cfg *PatchConfig, in io.Reader, w io.Writer, patchPath string, paths []string) error {
	p, err := readNode(in, patchPath, "")
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	apply := bridge.Patch
	if cfg.Merge {
		apply = bridge.MergePatch
	}
	for _, path := range paths {
		n, err := readNode(in, path, "")
		if err != nil {
			return err
		}
		res, err := apply(n, p)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", path, err)
		}
		if err := cfg.output(w, res, cfg.JSON); err != nil {
			return err
		}
	}
	return nil
}
