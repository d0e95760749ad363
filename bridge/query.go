package bridge

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/signadot/korm-format/go-korm/encode"
	"github.com/signadot/korm-format/go-korm/ir"
)

// Query evaluates an expression against doc and returns its result as a
// node. The document is bound to doc; when it is a map its entries are also
// bound by key. The function korm(v) renders a value as korm text.
func Query(doc *ir.Node, src string) (*ir.Node, error) {
	root := ToAny(doc)
	env := map[string]any{}
	if m, ok := root.(map[string]any); ok {
		for k, v := range m {
			env[k] = v
		}
	}
	env["doc"] = root
	prg, err := expr.Compile(src, exprOpts(env)...)
	if err != nil {
		return nil, err
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, err
	}
	return FromAny(res)
}

func exprOpts(env map[string]any) []expr.Option {
	return []expr.Option{
		expr.Env(env),
		expr.Function("korm", func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("korm takes 1 argument, got %d", len(params))
			}
			n, err := FromAny(params[0])
			if err != nil {
				return nil, err
			}
			return encode.MustString(n), nil
		}),
	}
}
