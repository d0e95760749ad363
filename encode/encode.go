package encode

import (
	"bytes"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/signadot/korm-format/go-korm/codec"
	"github.com/signadot/korm-format/go-korm/desc"
	"github.com/signadot/korm-format/go-korm/format"
	"github.com/signadot/korm-format/go-korm/ir"
)

// EncState is the state of one write.
type EncState struct {
	buf       bytes.Buffer
	depth     int
	indent    int
	nameCount int

	layout format.Options
	codecs *codec.Registry

	Color func(ir.Type, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent: 2,
		layout: format.Min(),
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.codecs == nil {
		es.codecs = codec.NewRegistry()
	}
	return es
}

// Encode writes v to w followed by a newline.
func Encode(v any, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	enc := &encoder{es: es}
	enc.writeRoot(reflect.ValueOf(v))
	es.buf.WriteByte('\n')
	_, err := w.Write(es.buf.Bytes())
	return err
}

// EncodeDocument writes the top-level nodes of doc to w followed by a
// newline.
func EncodeDocument(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	enc := &encoder{es: es}
	enc.writeTop(doc.Nodes)
	es.buf.WriteByte('\n')
	_, err := w.Write(es.buf.Bytes())
	return err
}

// encoder writes into an EncState. Its path holds the types whose codecs
// are running.
type encoder struct {
	es   *EncState
	path codec.Path
}

var _ codec.Writer = (*encoder)(nil)

func (e *encoder) with(ts ...reflect.Type) *encoder {
	return &encoder{es: e.es, path: e.path.With(ts...)}
}

// child returns an encoder for the values nested in the one being written.
// Codecs on the path apply again there.
func (e *encoder) child() *encoder {
	if e.path.Len() == 0 {
		return e
	}
	return &encoder{es: e.es}
}

// entry is a map entry or record field. A nil key writes only the value.
type entry struct {
	key      func()
	value    func()
	comments []string
}

type elem struct {
	scalar bool
	write  func()
}

func (e *encoder) str(s string) {
	e.es.buf.WriteString(s)
}

func (e *encoder) colored(t ir.Type, a ColorAttr, s string) {
	if e.es.Color != nil {
		s = e.es.Color(t, a, s)
	}
	e.str(s)
}

func (e *encoder) sep(t ir.Type, s string) {
	e.colored(t, SepColor, s)
}

func (e *encoder) newline() {
	e.str("\n")
	e.str(strings.Repeat(" ", e.es.indent*e.es.depth))
}

func (e *encoder) assign() {
	e.sep(ir.MapType, ":")
	if e.es.layout.SpaceAfterAssign {
		e.str(" ")
	}
}

// entryOnNewLine reports whether map entries go on their own lines.
func (e *encoder) entryOnNewLine() bool {
	if e.es.nameCount > 0 {
		return e.es.layout.ComplexKeyEntryOnNewLine
	}
	return e.es.layout.HashEntryOnNewLine
}

func (e *encoder) writeComments(lines []string) {
	if len(lines) == 1 {
		e.colored(ir.StringType, CommentColor, "// "+lines[0])
		e.newline()
		return
	}
	e.colored(ir.StringType, CommentColor, "/**")
	e.newline()
	for _, ln := range lines {
		e.colored(ir.StringType, CommentColor, " * "+ln)
		e.newline()
	}
	e.colored(ir.StringType, CommentColor, " */")
	e.newline()
}

func (e *encoder) writeEntries(entries []entry, nl, lead bool) {
	lay := e.es.layout
	for i, en := range entries {
		switch {
		case nl && (i > 0 || lead):
			e.newline()
		case i > 0:
			e.str(" ")
		}
		if lay.IncludeComments && len(en.comments) > 0 {
			e.writeComments(en.comments)
		}
		if en.key != nil {
			en.key()
			e.assign()
		}
		en.value()
		last := i == len(entries)-1
		if (!last && lay.CommaAfterHashEntry) || (last && nl && lay.TrailingCommas && len(entries) > 1) {
			e.sep(ir.MapType, ",")
		}
	}
}

func (e *encoder) writeHash(entries []entry) {
	if len(entries) == 0 {
		e.sep(ir.MapType, "{ }")
		return
	}
	nl := e.entryOnNewLine()
	e.sep(ir.MapType, "{")
	if nl {
		e.es.depth++
		e.writeEntries(entries, true, true)
		e.es.depth--
		e.newline()
	} else {
		e.str(" ")
		e.writeEntries(entries, false, false)
		e.str(" ")
	}
	e.sep(ir.MapType, "}")
}

func (e *encoder) writeList(elems []elem) {
	if len(elems) == 0 {
		e.sep(ir.ListType, "[ ]")
		return
	}
	lay := e.es.layout
	complexNL := lay.ComplexListEntryOnNewLine && slices.ContainsFunc(elems, func(x elem) bool {
		return !x.scalar
	})
	e.sep(ir.ListType, "[")
	if !lay.ListEntryOnNewLine && !complexNL {
		for i, x := range elems {
			if i > 0 {
				e.sep(ir.ListType, ",")
				e.str(" ")
			}
			x.write()
		}
		e.sep(ir.ListType, "]")
		return
	}
	e.es.depth++
	for i, x := range elems {
		if i > 0 {
			e.sep(ir.ListType, ",")
		}
		if lay.ListEntryOnNewLine || i == 0 || !x.scalar || !elems[i-1].scalar {
			e.newline()
		} else {
			e.str(" ")
		}
		x.write()
	}
	if lay.TrailingCommas && len(elems) > 1 {
		e.sep(ir.ListType, ",")
	}
	e.es.depth--
	e.newline()
	e.sep(ir.ListType, "]")
}

// complexText renders fn in a fresh state for use inside a complex key.
func (e *encoder) complexText(fn func(sub *encoder)) string {
	es := &EncState{
		indent:    e.es.indent,
		nameCount: e.es.nameCount + 1,
		layout:    e.es.layout,
		codecs:    e.es.codecs,
	}
	fn(&encoder{es: es, path: e.path})
	return es.buf.String()
}

// writeRoot writes a record as its fields and a keyed node as its entry.
// Anything else is written as a value.
func (e *encoder) writeRoot(v reflect.Value) {
	if rv, d, ok := e.rootRecord(v); ok {
		if e.es.layout.IncludeComments && len(d.Comments) > 0 {
			e.writeComments(d.Comments)
		}
		entries := e.fieldEntries(rv, d)
		if len(entries) == 0 {
			e.sep(ir.MapType, "{ }")
			return
		}
		e.writeEntries(entries, e.entryOnNewLine(), false)
		return
	}
	if v.IsValid() && v.Type() == nodePtrType && !v.IsNil() {
		if n := v.Interface().(*ir.Node); n.Key != nil {
			e.writeTop([]*ir.Node{n})
			return
		}
	}
	e.writeValue(v)
}

func (e *encoder) rootRecord(v reflect.Value) (reflect.Value, *desc.Descriptor, bool) {
	for v.IsValid() {
		t := v.Type()
		if p, _ := e.es.codecs.FindPusher(t, e.path); p != nil {
			return v, nil, false
		}
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return v, nil, false
			}
			v = v.Elem()
			continue
		}
		d := desc.Of(t)
		return v, d, d.Kind == desc.KindStruct && !d.Positional
	}
	return v, nil, false
}

// writeTop writes document nodes as top-level entries.
func (e *encoder) writeTop(nodes []*ir.Node) {
	entries := make([]entry, 0, len(nodes))
	for _, n := range nodes {
		en := entry{value: func() { e.writeNode(n) }}
		if n.Key != nil {
			en.key = func() { e.writeNodeKey(n.Key) }
		}
		entries = append(entries, en)
	}
	e.writeEntries(entries, e.entryOnNewLine(), false)
}
