package ir

import (
	"strconv"
	"strings"
)

// Path returns a '$' rooted path of y for diagnostics.
func (y *Node) Path() string {
	if y.Parent == nil {
		if y.Key != nil {
			return "$" + pathField(y.Key.KeyText())
		}
		return "$"
	}
	prefix := y.Parent.Path()
	if y.Parent.Type == MapType && y.Key != nil {
		return prefix + pathField(y.Key.KeyText())
	}
	return prefix + "[" + strconv.Itoa(y.ParentIndex) + "]"
}

func pathField(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
		return "." + f
	}
	return ".'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}
