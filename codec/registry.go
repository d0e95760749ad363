package codec

import (
	"reflect"
	"sync"

	"github.com/signadot/korm-format/go-korm/debug"
	"github.com/signadot/korm-format/go-korm/desc"
	"github.com/signadot/korm-format/go-korm/ir"
)

// Registry holds the codecs of an engine.
type Registry struct {
	mu      sync.RWMutex
	pullers map[reflect.Type]Puller
	pushers map[reflect.Type]Pusher
	// interface types with a registration, in registration order
	ifaces []reflect.Type

	self sync.Map
}

func NewRegistry() *Registry {
	return &Registry{
		pullers: map[reflect.Type]Puller{},
		pushers: map[reflect.Type]Pusher{},
	}
}

func (r *Registry) RegisterPuller(t reflect.Type, p Puller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pullers[t] = p
	r.addIface(t)
}

func (r *Registry) RegisterPusher(t reflect.Type, p Pusher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushers[t] = p
	r.addIface(t)
}

func (r *Registry) RegisterCodec(t reflect.Type, c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pullers[t] = c
	r.pushers[t] = c
	r.addIface(t)
}

func (r *Registry) addIface(t reflect.Type) {
	if t.Kind() != reflect.Interface {
		return
	}
	for _, x := range r.ifaces {
		if x == t {
			return
		}
	}
	r.ifaces = append(r.ifaces, t)
}

// RegisterPull registers a typed pull function for T.
func RegisterPull[T any](r *Registry, f func(r Reader, nodes []*ir.Node) (T, bool)) {
	r.RegisterPuller(reflect.TypeFor[T](), Pull(f))
}

// RegisterPush registers a typed push function for T.
func RegisterPush[T any](r *Registry, f func(w Writer, v T)) {
	r.RegisterPusher(reflect.TypeFor[T](), Push(f))
}

// Register registers c for both directions of T.
func Register[T any](r *Registry, c Codec) {
	r.RegisterCodec(reflect.TypeFor[T](), c)
}

// FindPuller resolves the puller of t. It also returns the type the puller
// was found at, which callers add to the path while it runs.
func (r *Registry) FindPuller(t reflect.Type, path Path) (Puller, reflect.Type) {
	p, at, ok := find(r, t, path, map[reflect.Type]bool{}, r.pullerAt)
	if debug.Codec() && ok {
		debug.Logf("puller for %s found at %s, path %s", t, at, path)
	}
	return p, at
}

// FindPusher resolves the pusher of t like [Registry.FindPuller].
func (r *Registry) FindPusher(t reflect.Type, path Path) (Pusher, reflect.Type) {
	p, at, ok := find(r, t, path, map[reflect.Type]bool{}, r.pusherAt)
	if debug.Codec() && ok {
		debug.Logf("pusher for %s found at %s, path %s", t, at, path)
	}
	return p, at
}

func find[C any](r *Registry, t reflect.Type, path Path, visited map[reflect.Type]bool, at func(reflect.Type) (C, bool)) (C, reflect.Type, bool) {
	var zero C
	if path.Has(t) || visited[t] {
		return zero, nil, false
	}
	visited[t] = true
	if c, ok := at(t); ok {
		return c, t, true
	}
	for _, a := range r.ancestors(t) {
		if c, found, ok := find(r, a, path, visited, at); ok {
			return c, found, true
		}
	}
	return zero, nil, false
}

func (r *Registry) pullerAt(t reflect.Type) (Puller, bool) {
	r.mu.RLock()
	p, ok := r.pullers[t]
	r.mu.RUnlock()
	if ok {
		return p, true
	}
	s := r.selfDeclared(t)
	if s.puller != nil {
		return s.puller, true
	}
	return nil, false
}

func (r *Registry) pusherAt(t reflect.Type) (Pusher, bool) {
	r.mu.RLock()
	p, ok := r.pushers[t]
	r.mu.RUnlock()
	if ok {
		return p, true
	}
	s := r.selfDeclared(t)
	if s.pusher != nil {
		return s.pusher, true
	}
	return nil, false
}

// ancestors returns the embedded struct types of t followed by the
// registered interfaces t implements.
func (r *Registry) ancestors(t reflect.Type) []reflect.Type {
	var res []reflect.Type
	if t.Kind() == reflect.Struct {
		res = append(res, desc.Of(t).Parents...)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.ifaces {
		if it == t {
			continue
		}
		if t.Implements(it) || (t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(it)) {
			res = append(res, it)
		}
	}
	return res
}

type selfCodecs struct {
	puller Puller
	pusher Pusher
}

func (r *Registry) selfDeclared(t reflect.Type) *selfCodecs {
	if v, ok := r.self.Load(t); ok {
		return v.(*selfCodecs)
	}
	res := &selfCodecs{}
	if v, ok := receiver(t); ok {
		switch x := v.Interface().(type) {
		case SelfCodec:
			c := x.KormCodec()
			res.puller, res.pusher = c, c
		default:
			if sp, ok := x.(SelfPuller); ok {
				res.puller = sp.KormPuller()
			}
			if sp, ok := x.(SelfPusher); ok {
				res.pusher = sp.KormPusher()
			}
		}
	}
	r.self.Store(t, res)
	return res
}

var (
	selfCodecType  = reflect.TypeFor[SelfCodec]()
	selfPullerType = reflect.TypeFor[SelfPuller]()
	selfPusherType = reflect.TypeFor[SelfPusher]()
)

// receiver returns a value of t, or of *t, on which the self declaring
// methods can be called.
func receiver(t reflect.Type) (reflect.Value, bool) {
	if t.Kind() == reflect.Interface {
		return reflect.Value{}, false
	}
	declares := func(x reflect.Type) bool {
		return x.Implements(selfCodecType) || x.Implements(selfPullerType) || x.Implements(selfPusherType)
	}
	if t.Kind() == reflect.Pointer {
		if declares(t) {
			return reflect.New(t.Elem()), true
		}
		return reflect.Value{}, false
	}
	if declares(t) {
		return reflect.Zero(t), true
	}
	if declares(reflect.PointerTo(t)) {
		return reflect.New(t), true
	}
	return reflect.Value{}, false
}
