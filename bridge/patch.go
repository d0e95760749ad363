package bridge

import (
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/korm-format/go-korm/ir"
)

// Patch applies an RFC 6902 JSON patch, itself given as a node, to doc.
func Patch(doc, patch *ir.Node) (*ir.Node, error) {
	p, err := ToJSON(patch)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(p)
	if err != nil {
		return nil, err
	}
	d, err := ToJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return FromJSON(out)
}

// MergePatch applies an RFC 7386 merge patch to doc.
func MergePatch(doc, patch *ir.Node) (*ir.Node, error) {
	p, err := ToJSON(patch)
	if err != nil {
		return nil, err
	}
	d, err := ToJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, p)
	if err != nil {
		return nil, err
	}
	return FromJSON(out)
}
