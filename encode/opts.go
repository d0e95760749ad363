package encode

import (
	"github.com/signadot/korm-format/go-korm/codec"
	"github.com/signadot/korm-format/go-korm/format"
)

type EncodeOption func(*EncState)

func EncodeLayout(o format.Options) EncodeOption {
	return func(es *EncState) { es.layout = o }
}

// EncodeIndent sets the number of spaces per indentation level.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = max(n, 0) }
}

func EncodeCodecs(r *codec.Registry) EncodeOption {
	return func(es *EncState) { es.codecs = r }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// LayoutFromOpts extracts the layout from encode options.
func LayoutFromOpts(opts ...EncodeOption) format.Options {
	return newState(opts).layout
}
