package encode

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/signadot/korm-format/go-korm/codec"
	"github.com/signadot/korm-format/go-korm/desc"
	"github.com/signadot/korm-format/go-korm/format"
	"github.com/signadot/korm-format/go-korm/gomap"
	"github.com/signadot/korm-format/go-korm/ir"
	"github.com/signadot/korm-format/go-korm/parse"
)

type named struct {
	Name string `korm:"field=name"`
}

type address struct {
	City string `korm:"field=city"`
}

type person struct {
	Name    string   `korm:"field=name"`
	Tags    []string `korm:"field=tags"`
	Address address  `korm:"field=address"`
}

type point struct {
	X int `korm:"field=x"`
	Y int `korm:"field=y"`
}

type pair struct {
	desc.Meta `korm:"list='left,right'"`
	Left      *int `korm:"field=left"`
	Right     int  `korm:"field=right"`
}

type optional struct {
	A *int           `korm:"field=a"`
	B []string       `korm:"field=b"`
	C map[string]int `korm:"field=c"`
}

type documented struct {
	desc.Meta `korm:"comment='A person.|Two lines.'"`
	Name      string `korm:"field=name,comment='Full name.'"`
	Age       int    `korm:"field=age"`
}

type node struct {
	Name   string  `korm:"field=name"`
	Kids   []*node `korm:"field=kids"`
	Parent *node   `korm:"inner"`
}

type level int

const (
	low level = iota
	high
)

func (l level) String() string {
	return [...]string{"LOW", "HIGH"}[l]
}

type celsius float64

func TestEncodeValues(t *testing.T) {
	desc.Enum(low, high)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	one := 1
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"record", named{Name: "Sxtanna"}, `name: "Sxtanna"`},
		{"record pointer", &named{Name: "Sxtanna"}, `name: "Sxtanna"`},
		{"list", []int{1, 2, 3}, "[1, 2, 3]"},
		{"empty list", []int{}, "[ ]"},
		{"nil", nil, "null"},
		{"empty record", struct{}{}, "{ }"},
		{"all null record", optional{}, "{ }"},
		{"empty map", map[string]int{}, "{ }"},
		{"map sorted", map[string]int{"b": 2, "a": 1}, "{ a: 1 b: 2 }"},
		{"map numeric keys", map[int]string{10: "a", 2: "b"}, `{ 2: "b" 10: "a" }`},
		{"key quoting", map[string]int{"a b": 1, "ab": 2}, `{ "a b": 1 ab: 2 }`},
		{"keys that lex as scalars", map[string]int{"true": 1, "12": 2}, `{ "12": 2 "true": 1 }`},
		{"float keeps point", 7.0, "7.0"},
		{"float32", float32(1.1), "1.1"},
		{"NaN", math.NaN(), "NaN"},
		{"infinity", math.Inf(-1), "-Infinity"},
		{"string escapes", `say "hi"`, `"say \"hi\""`},
		{"char", desc.Char('c'), "'c'"},
		{"uuid", id, `"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`},
		{"enum", high, "HIGH"},
		{"big int", new(big.Int).Lsh(big.NewInt(1), 70), "1180591620717411303424"},
		{"big float", big.NewFloat(3), "3.0"},
		{"nested", person{Name: "x", Tags: []string{"a", "b"}, Address: address{City: "Paris"}},
			`name: "x" tags: ["a", "b"] address: { city: "Paris" }`},
		{"positional", pair{Left: &one, Right: 2}, "[1, 2]"},
		{"positional keeps null", pair{Right: 2}, "[null, 2]"},
		{"list drops nulls", []*int{nil, &one}, "[1]"},
		{"complex key", map[point]string{{X: 1, Y: 2}: "a"}, "{ `{ x: 1 y: 2 }`: \"a\" }"},
		{"list key", map[[2]int]bool{{1, 2}: true}, "{ `[1, 2]`: true }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MustString(tt.in); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestEncodeOrdered(t *testing.T) {
	var m desc.OrderedMap[string, int]
	m.Set("z", 1)
	m.Set("a", 2)
	if got := MustString(&m); got != "{ z: 1 a: 2 }" {
		t.Errorf("got %s", got)
	}
}

func TestEncodeSerializeNulls(t *testing.T) {
	got := MustString(optional{}, EncodeLayout(format.Options{SerializeNulls: true, SpaceAfterAssign: true}))
	if want := "a: null b: null c: null"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	got = MustString([]*int{nil}, EncodeLayout(format.Options{SerializeNulls: true}))
	if got != "[null]" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeLayouts(t *testing.T) {
	p := person{Name: "x", Tags: []string{"a", "b"}, Address: address{City: "Paris"}}
	tests := []struct {
		name string
		in   any
		opts format.Options
		want string
	}{
		{
			"no space after assign",
			p,
			format.Options{},
			`name:"x" tags:["a", "b"] address:{ city:"Paris" }`,
		},
		{
			"commas",
			map[string]int{"a": 1, "b": 2},
			format.Options{CommaAfterHashEntry: true, SpaceAfterAssign: true},
			"{ a: 1, b: 2 }",
		},
		{
			"entries on new lines",
			p,
			format.Options{HashEntryOnNewLine: true, SpaceAfterAssign: true},
			"name: \"x\"\ntags: [\"a\", \"b\"]\naddress: {\n  city: \"Paris\"\n}",
		},
		{
			"trailing commas",
			map[string]int{"a": 1, "b": 2},
			format.Options{HashEntryOnNewLine: true, CommaAfterHashEntry: true, TrailingCommas: true, SpaceAfterAssign: true},
			"{\n  a: 1,\n  b: 2,\n}",
		},
		{
			"trailing commas need new lines",
			map[string]int{"a": 1, "b": 2},
			format.Options{TrailingCommas: true, SpaceAfterAssign: true},
			"{ a: 1 b: 2 }",
		},
		{
			"list entries on new lines",
			[]int{1, 2},
			format.Options{ListEntryOnNewLine: true},
			"[\n  1,\n  2\n]",
		},
		{
			"complex list entries",
			[]address{{City: "a"}, {City: "b"}},
			format.Options{ComplexListEntryOnNewLine: true, TrailingCommas: true, SpaceAfterAssign: true},
			"[\n  { city: \"a\" },\n  { city: \"b\" },\n]",
		},
		{
			"mixed list",
			[]any{1, 2, []int{3}, 4},
			format.Options{ComplexListEntryOnNewLine: true},
			"[\n  1, 2,\n  [3],\n  4\n]",
		},
		{
			"scalar list stays inline",
			[]int{1, 2},
			format.Options{ComplexListEntryOnNewLine: true},
			"[1, 2]",
		},
		{
			"complex key entries",
			map[point]int{{X: 1, Y: 2}: 3},
			format.Options{ComplexKeyEntryOnNewLine: true, SpaceAfterAssign: true},
			"{ `{\n  x: 1\n  y: 2\n}`: 3 }",
		},
		{
			"comments",
			documented{Name: "x", Age: 1},
			format.Options{IncludeComments: true, HashEntryOnNewLine: true, SpaceAfterAssign: true},
			"/**\n * A person.\n * Two lines.\n */\n// Full name.\nname: \"x\"\nage: 1",
		},
		{
			"comments off",
			documented{Name: "x", Age: 1},
			format.Min(),
			`name: "x" age: 1`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustString(tt.in, EncodeLayout(tt.opts))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeIndent(t *testing.T) {
	got := MustString(map[string][]int{"a": {1}}, EncodeIndent(4),
		EncodeLayout(format.Options{HashEntryOnNewLine: true, ListEntryOnNewLine: true, SpaceAfterAssign: true}))
	if want := "{\n    a: [\n        1\n    ]\n}"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestEncodeSkipsInnerRefs(t *testing.T) {
	root := &node{Name: "root"}
	root.Kids = []*node{{Name: "a", Parent: root}}
	if got := MustString(root); got != `name: "root" kids: [{ name: "a" }]` {
		t.Errorf("got %s", got)
	}
}

func TestEncodeCodec(t *testing.T) {
	reg := codec.NewRegistry()
	codec.RegisterPush(reg, func(w codec.Writer, v celsius) {
		w.WriteData(fmt.Sprintf("%.1fC", float64(v)))
	})
	codec.RegisterPush(reg, func(w codec.Writer, p point) {
		w.WriteList([]any{p.X, p.Y})
	})
	in := map[string]any{"temp": celsius(21.5), "at": point{X: 1, Y: 2}}
	got := MustString(in, EncodeCodecs(reg))
	if want := `{ at: [1, 2] temp: "21.5C" }`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

type wrapped struct {
	Inner point `korm:"field=inner"`
}

func TestEncodeCodecPrimitives(t *testing.T) {
	reg := codec.NewRegistry()
	codec.RegisterPush(reg, func(w codec.Writer, v wrapped) {
		w.WriteHash([]codec.KV{{Key: "kind", Value: "wrapped"}, {Key: "value", Value: v.Inner}})
	})
	got := MustString([]wrapped{{Inner: point{X: 1}}}, EncodeCodecs(reg))
	if want := `[{ kind: "wrapped" value: { x: 1 y: 0 } }]`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	reg = codec.NewRegistry()
	codec.RegisterPush(reg, func(w codec.Writer, v wrapped) {
		w.WriteName("inner")
		w.WriteData(v.Inner)
	})
	got = MustString(wrapped{Inner: point{X: 1, Y: 2}}, EncodeCodecs(reg))
	if want := "inner: { x: 1 y: 2 }"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

type tree struct {
	Val  int
	Kids []tree
}

func TestEncodeCodecNested(t *testing.T) {
	reg := codec.NewRegistry()
	codec.RegisterPush(reg, func(w codec.Writer, v tree) {
		kvs := []codec.KV{{Key: "v", Value: v.Val}}
		if len(v.Kids) > 0 {
			kvs = append(kvs, codec.KV{Key: "kids", Value: v.Kids})
		}
		w.WriteHash(kvs)
	})
	in := tree{Val: 1, Kids: []tree{{Val: 2}, {Val: 3, Kids: []tree{{Val: 4}}}}}
	got := MustString(in, EncodeCodecs(reg))
	if want := `{ v: 1 kids: [{ v: 2 }, { v: 3 kids: [{ v: 4 }] }] }`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	got = MustString(map[string]tree{"t": {Val: 5}}, EncodeCodecs(reg))
	if want := `{ t: { v: 5 } }`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestEncodeNodes(t *testing.T) {
	src := "a: 1 b: [1, 2, { c: `[1]` }] 'x': y"
	doc, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodeDocument(doc, &buf); err != nil {
		t.Fatal(err)
	}
	want := "a: 1 b: [1, 2, { c: `[1]` }] 'x': \"y\"\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if got := MustString(ir.Keyed(ir.FromString("k"), ir.FromInt(3))); got != "k: 3" {
		t.Errorf("keyed node: got %s", got)
	}
	if got := MustString(ir.FromSlice([]*ir.Node{ir.FromFloat(2), ir.FromBool(false)})); got != "[2.0, false]" {
		t.Errorf("list node: got %s", got)
	}
}

func TestEncodeIdempotent(t *testing.T) {
	srcs := []string{
		"a: 1 b: [1, 2, { c: `[1]` }] 'x': y",
		"// doc\n{ a: [ ], b: { }, \"c d\": null }",
		"[1, 2.50, \"s\", 'c', true, null]",
		"`{ x: 1 }`: { y: [[1], [2]] }",
	}
	layouts := []format.Options{format.Min(), format.Pretty(), format.Max()}
	for _, src := range srcs {
		for _, lay := range layouts {
			first := reformat(t, src, lay)
			second := reformat(t, first, lay)
			if first != second {
				t.Errorf("%q with %s:\nfirst  %q\nsecond %q", src, lay, first, second)
			}
		}
	}
}

func reformat(t *testing.T, src string, lay format.Options) string {
	t.Helper()
	doc, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	var buf bytes.Buffer
	if err := EncodeDocument(doc, &buf, EncodeLayout(lay)); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestRoundTrip(t *testing.T) {
	desc.Enum(low, high)
	type record struct {
		Name   string                 `korm:"field=name"`
		Points map[point]string       `korm:"field=points"`
		Levels []level                `korm:"field=levels"`
		Ratio  float64                `korm:"field=ratio"`
		Letter desc.Char              `korm:"field=letter"`
		Extra  map[string]*int        `korm:"field=extra"`
		Pair   desc.Pair[int, string] `korm:"field=pair"`
	}
	in := record{
		Name:   "a b",
		Points: map[point]string{{X: 1, Y: 2}: "one", {X: 3}: "two"},
		Levels: []level{high, low},
		Ratio:  7,
		Letter: 'z',
		Extra:  map[string]*int{"n": nil},
		Pair:   desc.Pair[int, string]{First: 1, Second: "s"},
	}
	m := gomap.NewMapper(nil)
	for _, lay := range []format.Options{format.Min(), format.Max()} {
		text := MustString(in, EncodeLayout(lay))
		node, err := parse.ParseNode([]byte(text))
		if err != nil {
			t.Fatalf("%s: %v\n%s", lay, err, text)
		}
		var out record
		if err := m.Decode(node, &out); err != nil {
			t.Fatalf("%s: %v\n%s", lay, err, text)
		}
		want := in
		if !lay.SerializeNulls {
			want.Extra = map[string]*int{}
		}
		if diff := cmp.Diff(want, out); diff != "" {
			t.Errorf("%s (-want +got):\n%s\n%s", lay, diff, text)
		}
	}
}

func TestColors(t *testing.T) {
	c := NewColors()
	if f := c.Get(ir.Type(99), ValueColor); reflect.ValueOf(f).Pointer() != reflect.ValueOf(c.Default).Pointer() {
		t.Error("unknown colorable should use the default")
	}
	if got := MustString(100, EncodeColors(&Colors{Default: colorDefault})); got != "100" {
		t.Errorf("got %s", got)
	}
	if f := c.Get(ir.Type(99), CommentColor); reflect.ValueOf(f).Pointer() == reflect.ValueOf(c.Default).Pointer() {
		t.Error("comments should be colored for any type")
	}
	for _, able := range []Colorable{
		{Type: ir.ComplexType, Attr: FieldColor},
		{Type: ir.ComplexType, Attr: ValueColor},
		{Type: ir.CharType, Attr: FieldColor},
		{Type: ir.ListType, Attr: SepColor},
	} {
		if c.Map[able] == nil {
			t.Errorf("no coloring for %v", able)
		}
	}
	if got := c.Color(ir.ComplexType, FieldColor, "100%"); !strings.Contains(got, "100%") {
		t.Errorf("got %q", got)
	}
}
