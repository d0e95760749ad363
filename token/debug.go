package token

import "github.com/signadot/korm-format/go-korm/debug"

func LogTokens(toks []Token, msg string) {
	debug.Logf("%s tokens:", msg)
	for i := range toks {
		t := &toks[i]
		debug.Logf("\t%s `%s` %s", t.Type, t.Bytes, t.Pos)
	}
}
