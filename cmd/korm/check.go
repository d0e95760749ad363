package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/korm-format/go-korm/parse"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	bad, err := checkFiles(cc.In, cc.Out, files(args))
	if err != nil {
		return err
	}
	if bad > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkFiles reports each file which does not parse and returns how many
// there were.
func checkFiles(in io.Reader, w io.Writer, paths []string) (int, error) {
	bad := 0
	for _, path := range paths {
		d, err := readFile(in, path)
		if err != nil {
			return bad, err
		}
		if _, err := parse.Parse(d); err != nil {
			bad++
			fmt.Fprintf(w, "%s: %v\n", path, err)
		}
	}
	return bad, nil
}
