package main

import (
	"io"

	"github.com/signadot/korm-format/go-korm/bridge"
	"github.com/signadot/korm-format/go-korm/encode"
	"github.com/signadot/korm-format/go-korm/format"
	"github.com/signadot/korm-format/go-korm/ir"
)

// writeNode writes n as korm. The entries of a non-empty map are written as
// top-level entries.
func writeNode(w io.Writer, n *ir.Node, opts ...encode.EncodeOption) error {
	if n.Type == ir.MapType && n.Key == nil && len(n.Values) > 0 {
		return encode.EncodeDocument(&ir.Document{Nodes: n.Values}, w, opts...)
	}
	return encode.Encode(n, w, opts...)
}

func writeJSON(w io.Writer, n *ir.Node) error {
	d, err := bridge.ToJSON(n)
	if err != nil {
		return err
	}
	_, err = w.Write(append(d, '\n'))
	return err
}

func (cfg *MainConfig) output(w io.Writer, n *ir.Node, asJSON bool) error {
	if asJSON {
		return writeJSON(w, n)
	}
	return writeNode(w, n, cfg.encOpts(w, format.Pretty())...)
}
