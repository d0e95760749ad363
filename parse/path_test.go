package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/korm-format/go-korm/ir"
)

type pathTest struct {
	Doc   string
	Paths []string
}

var pathTests = []pathTest{
	{
		Doc:   "null",
		Paths: []string{"$"},
	},
	{
		Doc:   "f: 1",
		Paths: []string{"$.f"},
	},
	{
		Doc:   "[1,2,3]",
		Paths: []string{"$", "$[0]", "$[1]", "$[2]"},
	},
	{
		Doc:   `[0, {"f": 2, "g": 3}]`,
		Paths: []string{"$", "$[0]", "$[1]", "$[1].f", "$[1].g"},
	},
	{
		Doc:   `{"a": [1], "f[3]": [0, "three"]}`,
		Paths: []string{"$", "$.a", "$.a[0]", "$.'f[3]'", "$.'f[3]'[0]", "$.'f[3]'[1]"},
	},
	{
		Doc:   `{"$f['3]": 1}`,
		Paths: []string{"$", `$.'$f[\'3]'`},
	},
}

func TestPaths(t *testing.T) {
	for _, pt := range pathTests {
		node, err := ParseNode([]byte(pt.Doc))
		if err != nil {
			t.Errorf("%s: %v", pt.Doc, err)
			continue
		}
		var got []string
		err = node.Visit(func(y *ir.Node, isPost bool) (bool, error) {
			if !isPost {
				got = append(got, y.Path())
			}
			return true, nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(pt.Paths, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", pt.Doc, diff)
		}
	}
}
