package korm

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
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
	"github.com/signadot/korm-format/go-korm/token"
)

type user struct {
	Name string `korm:"field=name"`
}

type base struct {
	Name string `korm:"field=name"`
}

type Message interface {
	kind() string
}

type Join struct {
	base
	Player uuid.UUID `korm:"field=player"`
}

type Quit struct {
	base
	Player uuid.UUID `korm:"field=player"`
}

type Error struct {
	base
	Message string `korm:"field=message"`
}

func (Join) kind() string  { return "Join" }
func (Quit) kind() string  { return "Quit" }
func (Error) kind() string { return "Error" }

var playerID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func messages() *Korm {
	k := New()
	codec.RegisterPull(k.Registry(), func(r codec.Reader, nodes []*ir.Node) (Message, bool) {
		_, name := ir.Find(nodes, "name")
		if name == nil || name.Type != ir.StringType {
			return nil, false
		}
		var t reflect.Type
		switch name.String {
		case "Join":
			t = reflect.TypeFor[Join]()
		case "Quit":
			t = reflect.TypeFor[Quit]()
		case "Error":
			t = reflect.TypeFor[Error]()
		default:
			return nil, false
		}
		v, ok := r.MapInstance(t, nodes)
		if !ok {
			return nil, false
		}
		return v.Interface().(Message), true
	})
	return k
}

func TestRecord(t *testing.T) {
	k := New()
	u, err := Pull[user](k, []byte(`name: "Sxtanna"`))
	if err != nil {
		t.Fatal(err)
	}
	if u.Name != "Sxtanna" {
		t.Errorf("got %q", u.Name)
	}
	text, err := k.Push(u)
	if err != nil {
		t.Fatal(err)
	}
	if text != `name: "Sxtanna"` {
		t.Errorf("got %q", text)
	}
}

func TestList(t *testing.T) {
	k := New()
	got, err := Pull[[]int](k, []byte("[1, 2, 3]"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	text, err := k.Push(got)
	if err != nil {
		t.Fatal(err)
	}
	if text != "[1, 2, 3]" {
		t.Errorf("got %q", text)
	}
}

func TestMessages(t *testing.T) {
	k := messages()
	src := fmt.Sprintf(`[
  { name: "Join", player: "%[1]s" },
  { name: "Quit", player: "%[1]s" },
  { name: "Error", message: "boom" },
  { name: "Delete" }
]`, playerID)
	got, err := Pull[[]Message](k, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []Message{
		Join{base: base{Name: "Join"}, Player: playerID},
		Quit{base: base{Name: "Quit"}, Player: playerID},
		Error{base: base{Name: "Error"}, Message: "boom"},
		nil,
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Join{}, Quit{}, Error{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMessageRoundTrip(t *testing.T) {
	k := messages()
	in := []Message{
		Join{base: base{Name: "Join"}, Player: playerID},
		Error{base: base{Name: "Error"}, Message: "boom"},
	}
	text, err := k.Push(in)
	if err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf(`[{ name: "Join" player: "%s" }, { name: "Error" message: "boom" }]`, playerID)
	if text != want {
		t.Errorf("got\n%s\nwant\n%s", text, want)
	}
	back, err := Pull[[]Message](k, []byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, back, cmp.AllowUnexported(Join{}, Error{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTopLevelMessage(t *testing.T) {
	k := messages()
	var m Message
	if err := k.Pull([]byte(`name: "Error" message: "lost"`), &m); err != nil {
		t.Fatal(err)
	}
	e, ok := m.(Error)
	if !ok || e.Message != "lost" {
		t.Errorf("got %#v", m)
	}
	err := k.Pull([]byte(`name: "Delete"`), &m)
	if !errors.Is(err, gomap.ErrNoValue) {
		t.Errorf("got %v", err)
	}
}

type Expr interface {
	eval() int
}

type Lit struct {
	N int `korm:"field=n"`
}

type Add struct {
	L Expr `korm:"field=l"`
	R Expr `korm:"field=r"`
}

func (l Lit) eval() int { return l.N }
func (a Add) eval() int { return a.L.eval() + a.R.eval() }

func exprs() *Korm {
	k := New()
	codec.Register[Expr](k.Registry(), codec.Funcs(
		func(r codec.Reader, nodes []*ir.Node) (Expr, bool) {
			_, op := ir.Find(nodes, "op")
			if op == nil {
				return nil, false
			}
			var t reflect.Type
			switch op.String {
			case "lit":
				t = reflect.TypeFor[Lit]()
			case "add":
				t = reflect.TypeFor[Add]()
			default:
				return nil, false
			}
			v, ok := r.MapInstance(t, nodes)
			if !ok {
				return nil, false
			}
			return v.Interface().(Expr), true
		},
		func(w codec.Writer, e Expr) {
			switch e := e.(type) {
			case Lit:
				w.WriteHash([]codec.KV{{Key: "op", Value: "lit"}, {Key: "n", Value: e.N}})
			case Add:
				w.WriteHash([]codec.KV{{Key: "op", Value: "add"}, {Key: "l", Value: e.L}, {Key: "r", Value: e.R}})
			}
		}))
	return k
}

func TestRecursiveUnion(t *testing.T) {
	k := exprs()
	src := `op: "add" l: { op: "lit" n: 1 } r: { op: "add" l: { op: "lit" n: 2 } r: { op: "lit" n: 3 } }`
	got, err := Pull[Expr](k, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := Add{L: Lit{N: 1}, R: Add{L: Lit{N: 2}, R: Lit{N: 3}}}
	if diff := cmp.Diff(Expr(want), got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if n := got.eval(); n != 6 {
		t.Errorf("eval got %d", n)
	}
}

func TestRecursiveUnionRoundTrip(t *testing.T) {
	k := exprs()
	in := []Expr{
		Lit{N: 4},
		Add{L: Add{L: Lit{N: 1}, R: Lit{N: 2}}, R: Lit{N: 3}},
	}
	text, err := k.Push(in)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(text, `op: "lit"`); n != 4 {
		t.Errorf("%d literals written in %s", n, text)
	}
	if n := strings.Count(text, `op: "add"`); n != 2 {
		t.Errorf("%d sums written in %s", n, text)
	}
	back, err := Pull[[]Expr](k, []byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, back); diff != "" {
		t.Errorf("(-want +got):\n%s\n%s", diff, text)
	}
}

type charRec struct {
	C desc.Char `korm:"field=c"`
}

func TestCharFromString(t *testing.T) {
	k := New()
	for src, want := range map[string]desc.Char{
		`c: "hello"`: 'h',
		`c: "é"`:     'é',
		`c: 'x'`:     'x',
	} {
		got, err := Pull[charRec](k, []byte(src))
		if err != nil {
			t.Fatal(err)
		}
		if got.C != want {
			t.Errorf("%s: got %q want %q", src, got.C, want)
		}
	}
	got, err := Pull[charRec](k, []byte(`c: ""`))
	if err != nil {
		t.Fatal(err)
	}
	if got.C != 0 {
		t.Errorf("empty string: got %q", got.C)
	}
}

type celsius float64

type reading struct {
	T celsius `korm:"field=t"`
}

func TestCodecPrecedence(t *testing.T) {
	in := reading{T: 21.5}
	plain := New()
	text, err := plain.Push(in)
	if err != nil {
		t.Fatal(err)
	}
	if text != "t: 21.5" {
		t.Errorf("got %q", text)
	}

	k := New()
	codec.Register[celsius](k.Registry(), codec.Funcs(
		func(r codec.Reader, nodes []*ir.Node) (celsius, bool) {
			if len(nodes) != 1 || nodes[0].Type != ir.StringType {
				return 0, false
			}
			f, err := strconv.ParseFloat(strings.TrimSuffix(nodes[0].String, "C"), 64)
			if err != nil {
				return 0, false
			}
			return celsius(f), true
		},
		func(w codec.Writer, v celsius) {
			w.WriteData(strconv.FormatFloat(float64(v), 'f', -1, 64) + "C")
		},
	))
	text, err = k.Push(in)
	if err != nil {
		t.Fatal(err)
	}
	if text != `t: "21.5C"` {
		t.Errorf("got %q", text)
	}
	back, err := Pull[reading](k, []byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if back != in {
		t.Errorf("got %v", back)
	}
	back, err = Pull[reading](k, []byte("t: 21.5"))
	if err != nil || back.T != 0 {
		t.Errorf("codec miss on a field: got %v %v", back, err)
	}
	if _, err := Pull[celsius](k, []byte("21.5")); !errors.Is(err, gomap.ErrNoValue) {
		t.Errorf("got %v", err)
	}
}

func TestNumbers(t *testing.T) {
	k := New()
	f, err := Pull[float64](k, []byte("7"))
	if err != nil || f != 7 {
		t.Errorf("got %v %v", f, err)
	}
	i, err := Pull[int8](k, []byte("300"))
	if err != nil || i != 44 {
		t.Errorf("got %v %v", i, err)
	}
	n, err := Pull[int](k, []byte("9.9"))
	if err != nil || n != 9 {
		t.Errorf("got %v %v", n, err)
	}
}

func TestOrderedRoundTrip(t *testing.T) {
	k := New()
	src := "{ z: 1 a: 2 m: 3 }"
	m, err := Pull[desc.OrderedMap[string, int]](k, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, m.Keys()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	text, err := k.Push(&m)
	if err != nil {
		t.Fatal(err)
	}
	if text != src {
		t.Errorf("got %q", text)
	}
}

type point struct {
	X int `korm:"field=x"`
	Y int `korm:"field=y"`
}

func TestComplexKeys(t *testing.T) {
	k := New()
	in := map[point]string{{X: 1, Y: 2}: "a", {X: 3, Y: 4}: "b"}
	text, err := k.Push(in)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Pull[map[point]string](k, []byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, back); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLayouts(t *testing.T) {
	in := map[string][]int{"a": {1, 2}}
	tests := []struct {
		opts format.Options
		want string
	}{
		{format.Min(), "{ a: [1, 2] }"},
		{format.Options{}, "{ a:[1, 2] }"},
		{format.Max(), "{\n    a: [\n        1,\n        2,\n    ]\n}"},
	}
	for _, tt := range tests {
		k := New(WithOptions(tt.opts), WithIndent(4))
		got, err := k.Push(in)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("%s: got\n%s\nwant\n%s", tt.opts, got, tt.want)
		}
	}
}

func TestErrors(t *testing.T) {
	k := New()
	var v any
	var pe *parse.ParseError
	if err := k.Pull([]byte("{ a: 1"), &v); !errors.As(err, &pe) {
		t.Errorf("got %v", err)
	}
	var le *token.LexError
	if err := k.Pull([]byte(`a: "open`), &v); !errors.As(err, &le) {
		t.Errorf("got %v", err)
	}
	var ue *gomap.UnmarshalError
	var i int
	if err := k.Pull([]byte(`"x"`), &i); !errors.As(err, &ue) || !errors.Is(err, gomap.ErrNoValue) {
		t.Errorf("got %v", err)
	}
	if err := k.Pull(nil, &i); !errors.Is(err, gomap.ErrNoValue) {
		t.Errorf("empty document: got %v", err)
	}
}

func TestFiles(t *testing.T) {
	k := New()
	path := filepath.Join(t.TempDir(), "user.korm")
	if err := k.PushFile(user{Name: "a"}, path); err != nil {
		t.Fatal(err)
	}
	var u user
	if err := k.PullFile(path, &u); err != nil {
		t.Fatal(err)
	}
	if u.Name != "a" {
		t.Errorf("got %q", u.Name)
	}
}

func TestFormat(t *testing.T) {
	k := New(WithOptions(format.Pretty()))
	buf := bytes.NewBuffer(nil)
	if err := k.Format([]byte("// who\nname:\"a\" tags:[1,2]"), buf); err != nil {
		t.Fatal(err)
	}
	want := "name: \"a\"\ntags: [1, 2]\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}
