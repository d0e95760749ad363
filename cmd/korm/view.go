package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/korm-format/go-korm/encode"
	"github.com/signadot/korm-format/go-korm/format"
	"github.com/signadot/korm-format/go-korm/parse"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return viewFiles(cfg, cc.In, cc.Out, files(args))
}

func viewFiles(cfg *ViewConfig, in io.Reader, w io.Writer, paths []string) error {
	opts := cfg.encOpts(w, format.Pretty())
	for i, path := range paths {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		d, err := readFile(in, path)
		if err != nil {
			return err
		}
		doc, err := parse.Parse(d)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", path, err)
		}
		if err := encode.EncodeDocument(doc, w, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", path, err)
		}
	}
	return nil
}
