package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/korm-format/go-korm/encode"
	"github.com/signadot/korm-format/go-korm/format"
	"github.com/signadot/korm-format/go-korm/libdiff"
	"github.com/signadot/korm-format/go-korm/parse"
)

func kormFmt(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && cfg.Diff {
		return fmt.Errorf("%w: -w and -d are exclusive", cli.ErrUsage)
	}
	return fmtFiles(cfg, cc.In, cc.Out, files(args))
}

func fmtFiles(cfg *FmtConfig, in io.Reader, w io.Writer, paths []string) error {
	for _, path := range paths {
		if err := fmtFile(cfg, in, w, path); err != nil {
			return err
		}
	}
	return nil
}

func fmtFile(cfg *FmtConfig, in io.Reader, w io.Writer, path string) error {
	d, err := readFile(in, path)
	if err != nil {
		return err
	}
	out, err := reformat(cfg.MainConfig, d)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", path, err)
	}
	switch {
	case cfg.Diff:
		_, err = io.WriteString(w, libdiff.Unified(path, string(d), string(out), 3))
		return err
	case cfg.Write && path != "-":
		if bytes.Equal(d, out) {
			return nil
		}
		return os.WriteFile(path, out, 0644)
	}
	_, err = w.Write(out)
	return err
}

func reformat(cfg *MainConfig, d []byte) ([]byte, error) {
	doc, err := parse.Parse(d)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	err = encode.EncodeDocument(doc, buf,
		encode.EncodeLayout(cfg.layout(format.Pretty())),
		encode.EncodeIndent(cfg.indent()))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
