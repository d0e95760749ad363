package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/korm-format/go-korm/bridge"
	"github.com/signadot/korm-format/go-korm/ir"
	"github.com/signadot/korm-format/go-korm/parse"
)

const (
	kormIn = "korm"
	jsonIn = "json"
	yamlIn = "yaml"
)

// inputFormat picks the format of path: from when given, otherwise by
// file extension with korm as the default.
func inputFormat(path, from string) (string, error) {
	if from != "" {
		switch f := strings.ToLower(from); f {
		case kormIn, jsonIn, yamlIn:
			return f, nil
		case "yml":
			return yamlIn, nil
		}
		return "", fmt.Errorf("unknown input format %q", from)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return jsonIn, nil
	case ".yaml", ".yml":
		return yamlIn, nil
	}
	return kormIn, nil
}

func readFile(in io.Reader, path string) ([]byte, error) {
	r := in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// decode converts d in format f to a node. The top-level entries of a korm
// document become a map.
func decode(d []byte, f string) (*ir.Node, error) {
	switch f {
	case jsonIn:
		return bridge.FromJSON(d)
	case yamlIn:
		return bridge.FromYAML(d)
	}
	n, err := parse.ParseNode(d)
	if err != nil {
		return nil, err
	}
	switch {
	case n == nil:
		return ir.Null(), nil
	case n.Key != nil:
		return ir.FromEntries([]*ir.Node{n}), nil
	}
	return n, nil
}

func readNode(in io.Reader, path, from string) (*ir.Node, error) {
	f, err := inputFormat(path, from)
	if err != nil {
		return nil, err
	}
	d, err := readFile(in, path)
	if err != nil {
		return nil, err
	}
	n, err := decode(d, f)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return n, nil
}

// files returns args, or stdin when there are none.
func files(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
