package encode

import (
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/korm-format/go-korm/ir"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	CommentColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
)

// Colors maps what is written to a coloring function. Map is consulted
// first, then Attr for colorings shared by every type, then Default.
type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
	Attr    map[ColorAttr]func(string, ...any) string
}

type shade struct {
	able    Colorable
	r, g, b int
}

// palette holds the per type colorings. Complex spans and chars get tones
// of their own so that a reparsed key stands out from a plain one.
var palette = []shade{
	{Colorable{ir.NullType, ValueColor}, 168, 0, 196},
	{Colorable{ir.BoolType, ValueColor}, 0, 196, 196},
	{Colorable{ir.NumberType, ValueColor}, 128, 216, 236},
	{Colorable{ir.NumberType, FieldColor}, 196, 96, 16},
	{Colorable{ir.StringType, ValueColor}, 8, 196, 16},
	{Colorable{ir.StringType, FieldColor}, 128, 168, 196},
	{Colorable{ir.CharType, ValueColor}, 88, 158, 86},
	{Colorable{ir.CharType, FieldColor}, 160, 196, 96},
	{Colorable{ir.ComplexType, ValueColor}, 198, 198, 46},
	{Colorable{ir.ComplexType, FieldColor}, 220, 168, 64},
	{Colorable{ir.MapType, SepColor}, 196, 128, 128},
	{Colorable{ir.ListType, SepColor}, 196, 160, 200},
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     make(map[Colorable]func(string, ...any) string, len(palette)),
		Attr: map[ColorAttr]func(string, ...any) string{
			CommentColor: literal(color.BlueString),
			SepColor:     literal(color.RGB(255, 0, 196).SprintfFunc()),
		},
	}
	for _, s := range palette {
		colors.Map[s.able] = literal(color.RGB(s.r, s.g, s.b).SprintfFunc())
	}
	return colors
}

// literal keeps a '%' in written text from being read as a verb.
func literal(f func(string, ...any) string) func(string, ...any) string {
	return func(v string, _ ...any) string {
		return f(strings.ReplaceAll(v, "%", "%%"))
	}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	if f := c.Map[Colorable{Type: t, Attr: a}]; f != nil {
		return f
	}
	if f := c.Attr[a]; f != nil {
		return f
	}
	return c.Default
}
