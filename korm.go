// Package korm reads and writes korm documents as Go values.
//
// A [Korm] holds a codec registry, the layout used when writing and the
// options used when parsing:
//
//	k := korm.New(korm.WithOptions(format.Pretty()))
//	var u User
//	err := k.Pull([]byte(`name: "Sxtanna"`), &u)
//	text, err := k.Push(u)
package korm

import (
	"bytes"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/signadot/korm-format/go-korm/codec"
	"github.com/signadot/korm-format/go-korm/encode"
	"github.com/signadot/korm-format/go-korm/format"
	"github.com/signadot/korm-format/go-korm/gomap"
	"github.com/signadot/korm-format/go-korm/ir"
	"github.com/signadot/korm-format/go-korm/parse"
)

type Korm struct {
	codecs    *codec.Registry
	mapper    *gomap.Mapper
	layout    format.Options
	indent    int
	parseOpts []parse.ParseOption
}

type Option func(*Korm)

// WithOptions sets the layout used by Push.
func WithOptions(o format.Options) Option {
	return func(k *Korm) { k.layout = o }
}

func WithIndent(n int) Option {
	return func(k *Korm) { k.indent = n }
}

// WithRegistry shares a codec registry between engines.
func WithRegistry(r *codec.Registry) Option {
	return func(k *Korm) { k.codecs = r }
}

func WithParseOptions(opts ...parse.ParseOption) Option {
	return func(k *Korm) { k.parseOpts = append(k.parseOpts, opts...) }
}

func New(opts ...Option) *Korm {
	k := &Korm{
		layout: format.Min(),
		indent: 2,
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.codecs == nil {
		k.codecs = codec.NewRegistry()
	}
	k.mapper = gomap.NewMapper(k.codecs, k.parseOpts...)
	return k
}

func (k *Korm) Registry() *codec.Registry {
	return k.codecs
}

func (k *Korm) Layout() format.Options {
	return k.layout
}

func (k *Korm) RegisterPuller(t reflect.Type, p codec.Puller) {
	k.codecs.RegisterPuller(t, p)
}

func (k *Korm) RegisterPusher(t reflect.Type, p codec.Pusher) {
	k.codecs.RegisterPusher(t, p)
}

func (k *Korm) RegisterCodec(t reflect.Type, c codec.Codec) {
	k.codecs.RegisterCodec(t, c)
}

// PullNode parses text and returns its root node, nil for an empty
// document.
func (k *Korm) PullNode(text []byte) (*ir.Node, error) {
	return parse.ParseNode(text, k.parseOpts...)
}

// Pull parses text into the value pointed to by v.
func (k *Korm) Pull(text []byte, v any) error {
	node, err := k.PullNode(text)
	if err != nil {
		return err
	}
	return k.mapper.Decode(node, v)
}

func (k *Korm) PullReader(r io.Reader, v any) error {
	d, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return k.Pull(d, v)
}

func (k *Korm) PullFile(path string, v any) error {
	d, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return k.Pull(d, v)
}

// Pull parses text into a T.
func Pull[T any](k *Korm, text []byte) (T, error) {
	var res T
	err := k.Pull(text, &res)
	return res, err
}

func (k *Korm) encodeOpts() []encode.EncodeOption {
	return []encode.EncodeOption{
		encode.EncodeLayout(k.layout),
		encode.EncodeIndent(k.indent),
		encode.EncodeCodecs(k.codecs),
	}
}

// Push returns the text of v without a final newline.
func (k *Korm) Push(v any) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := k.PushWriter(v, buf); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// PushWriter writes the text of v and a newline to w.
func (k *Korm) PushWriter(v any, w io.Writer, opts ...encode.EncodeOption) error {
	return encode.Encode(v, w, append(k.encodeOpts(), opts...)...)
}

func (k *Korm) PushFile(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := k.PushWriter(v, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Format rewrites korm text with the engine's layout.
func (k *Korm) Format(text []byte, w io.Writer, opts ...encode.EncodeOption) error {
	doc, err := parse.Parse(text, k.parseOpts...)
	if err != nil {
		return err
	}
	return encode.EncodeDocument(doc, w, append(k.encodeOpts(), opts...)...)
}
