package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Lex    bool
	Parse  bool
	Codec  bool
	Map    bool
	Encode bool
}

var d *debug

func init() {
	d = &debug{}
	d.Lex = boolEnv("KORM_DEBUG_LEX")
	d.Parse = boolEnv("KORM_DEBUG_PARSE")
	d.Codec = boolEnv("KORM_DEBUG_CODEC")
	d.Map = boolEnv("KORM_DEBUG_MAP")
	d.Encode = boolEnv("KORM_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lex() bool {
	return d.Lex
}
func Parse() bool {
	return d.Parse
}
func Codec() bool {
	return d.Codec
}
func Map() bool {
	return d.Map
}
func Encode() bool {
	return d.Encode
}
