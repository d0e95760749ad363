package codec

import (
	"fmt"
	"reflect"

	"github.com/signadot/korm-format/go-korm/ir"
)

// Reader is the read side view of the mapping engine given to pullers.
type Reader interface {
	// Map maps node onto a value of type t.
	Map(node *ir.Node, t reflect.Type) (reflect.Value, bool)
	// MapInstance maps keyed entries onto the struct type t.
	MapInstance(t reflect.Type, entries []*ir.Node) (reflect.Value, bool)
	// Parse parses korm text, such as the payload of a complex node.
	Parse(text string) (*ir.Document, error)
}

// KV is one entry written by [Writer.WriteHash].
type KV struct {
	Key   any
	Value any
}

// Writer is the write side view of the formatting engine given to pushers.
type Writer interface {
	WriteName(key any)
	WriteData(v any)
	WriteList(values []any)
	WriteHash(entries []KV)
	IndentMore()
	IndentLess()
	WriteIndent()
	WriteNewLine()
}

// Puller converts nodes to a value. The nodes are the entries of a map
// node, or the node itself otherwise.
type Puller interface {
	Pull(r Reader, nodes []*ir.Node) (any, bool)
}

// Pusher writes a value.
type Pusher interface {
	Push(w Writer, v any)
}

type Codec interface {
	Puller
	Pusher
}

type PullFunc func(r Reader, nodes []*ir.Node) (any, bool)

func (f PullFunc) Pull(r Reader, nodes []*ir.Node) (any, bool) {
	return f(r, nodes)
}

type PushFunc func(w Writer, v any)

func (f PushFunc) Push(w Writer, v any) {
	f(w, v)
}

// Pull adapts a typed pull function.
func Pull[T any](f func(r Reader, nodes []*ir.Node) (T, bool)) Puller {
	return PullFunc(func(r Reader, nodes []*ir.Node) (any, bool) {
		return f(r, nodes)
	})
}

// Push adapts a typed push function.
func Push[T any](f func(w Writer, v T)) Pusher {
	return PushFunc(func(w Writer, v any) {
		t, ok := v.(T)
		if !ok {
			panic(fmt.Sprintf("codec: pusher for %s given %T", reflect.TypeFor[T](), v))
		}
		f(w, t)
	})
}

type funcs struct {
	Puller
	Pusher
}

// Funcs combines typed pull and push functions into a Codec.
func Funcs[T any](pull func(r Reader, nodes []*ir.Node) (T, bool), push func(w Writer, v T)) Codec {
	return funcs{Puller: Pull(pull), Pusher: Push(push)}
}

// SelfCodec is implemented by types which declare their own codec.
type SelfCodec interface {
	KormCodec() Codec
}

type SelfPuller interface {
	KormPuller() Puller
}

type SelfPusher interface {
	KormPusher() Pusher
}
