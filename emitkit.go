package emitkit

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/emitkit/expr"
	"github.com/dshills/emitkit/topic"
)

// Reserved meta-event container names, published by the emitter itself
// on registry state changes. Subscribing to a reserved name never
// re-triggers that same name.
const (
	// MetaNewGroup is published once per first-ever subscription to a
	// container, with the container name as its argument.
	MetaNewGroup = "newEventGroup"

	// MetaNewListener is published after every successful subscription,
	// with the container name and the callback as arguments.
	MetaNewListener = "newListener"
)

// Capability is the emitter surface attached to a host object by Adopt.
// *Emitter implements it and can be embedded directly.
type Capability interface {
	Subscribe(name string, cb Callback) error
	Unsubscribe(name string, cb Callback) error
	Publish(name string, args ...any) error
	Query(name string, cb Callback) (bool, error)
	Configure(name string, cfg ContainerConfig) error
}

// Adopter is implemented by types that can host an emitter. Adopt hands
// the freshly constructed emitter to the host through this hook.
type Adopter interface {
	AdoptEmitter(em *Emitter)
}

// ContainerConfig configures a single container.
type ContainerConfig struct {
	// FireOnce limits the container to one real dispatch. Callbacks
	// subscribed after that dispatch receive one deferred invocation
	// instead of joining the live sequence.
	FireOnce bool
}

// Emitter is an in-process publish/subscribe dispatcher. Callbacks are
// invoked synchronously on the publisher's goroutine, in subscription
// order, with hierarchical bubbling from the published name to each of
// its ancestors.
//
// The zero value is not bound to a registry and every operation on it
// returns ErrNotBound; obtain instances from New or Adopt. An Emitter
// must not be copied after first use.
type Emitter struct {
	id  uuid.UUID
	reg *registry

	logger     *zap.Logger
	reduced    bool
	deferDelay time.Duration

	stats emitterStats
}

var _ Capability = (*Emitter)(nil)

// New creates a bound emitter with the given options.
func New(opts ...Option) *Emitter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.New()
	return &Emitter{
		id:         id,
		reg:        newRegistry(),
		logger:     cfg.logger.With(zap.String("emitter_id", id.String())),
		reduced:    cfg.reduced,
		deferDelay: cfg.deferDelay,
	}
}

// Adopt equips target with a fresh emitter. When target implements
// Adopter the emitter is handed to it through AdoptEmitter; otherwise
// the new emitter alone is returned, exactly as if New had been called.
// Either way the returned emitter owns a registry of its own - no two
// hosts ever share one.
func Adopt(target any, opts ...Option) *Emitter {
	em := New(opts...)
	if a, ok := target.(Adopter); ok {
		a.AdoptEmitter(em)
	}
	return em
}

// ID returns the emitter's unique identifier.
func (em *Emitter) ID() string {
	return em.id.String()
}

// ReducedMode reports whether the emitter runs without expression and
// fire-once support.
func (em *Emitter) ReducedMode() bool {
	return em.reduced
}

// resolve splits a dispatch name into its container and expression
// source. In reduced mode the name is taken literally. Compiling the
// expression is Subscribe's job alone; every other operation ignores
// the source.
func (em *Emitter) resolve(op, name string) (topic.Topic, string, error) {
	if name == "" {
		return "", "", errEmptyName(op, name)
	}
	if em.reduced {
		return topic.Topic(name), "", nil
	}

	cname, src := topic.Parse(name)
	if cname == "" {
		return "", "", errEmptyName(op, name)
	}
	return cname, src, nil
}

// Subscribe registers cb for the given dispatch name. The name may carry
// a bracketed expression gating invocation to specific ordinals, e.g.
// "download:progress[4]".
//
// The first-ever subscription to a container publishes the MetaNewGroup
// meta-event before the binding is appended; every successful
// subscription publishes MetaNewListener after it. Subscribing to a
// fire-once container that has already fired adds no state: the callback
// receives one deferred invocation instead.
func (em *Emitter) Subscribe(name string, cb Callback) error {
	if em == nil || em.reg == nil {
		return ErrNotBound
	}
	if cb == nil {
		return ErrNilCallback
	}
	cname, src, err := em.resolve("subscribe", name)
	if err != nil {
		return err
	}
	pred, err := expr.Parse(src)
	if err != nil {
		return err
	}

	if em.reg.ensure(cname) && cname != MetaNewGroup {
		if err := em.Publish(MetaNewGroup, cname.String()); err != nil {
			return err
		}
	}

	if !em.reg.append(newBinding(name, cname, pred, cb)) {
		// Fire-once container that has already fired: one deferred
		// invocation, nothing enters the registry.
		em.deferOnce(cname, cb)
		return nil
	}

	em.logger.Debug("subscribed",
		zap.String("name", name),
		zap.String("container", cname.String()))

	if cname != MetaNewListener {
		if err := em.Publish(MetaNewListener, cname.String(), cb); err != nil {
			return err
		}
	}
	return nil
}

// Unsubscribe removes the first binding in the resolved container whose
// callback identity matches cb. Any expression suffix on the name is
// ignored for matching, so a callback subscribed as "x[4]" is removable
// via "x". A missing container or callback is a no-op, not an error.
func (em *Emitter) Unsubscribe(name string, cb Callback) error {
	if em == nil || em.reg == nil {
		return ErrNotBound
	}
	if cb == nil {
		return ErrNilCallback
	}
	cname, _, err := em.resolve("unsubscribe", name)
	if err != nil {
		return err
	}

	if em.reg.remove(cname, callbackID(cb)) {
		em.logger.Debug("unsubscribed",
			zap.String("name", name),
			zap.String("container", cname.String()))
	}
	return nil
}

// Query reports whether the resolved container has any live bindings.
// With a non-nil cb it instead reports whether some binding matches both
// the callback identity and the exact dispatch name, expression suffix
// included. An empty-but-present container reports false.
func (em *Emitter) Query(name string, cb Callback) (bool, error) {
	if em == nil || em.reg == nil {
		return false, ErrNotBound
	}
	cname, _, err := em.resolve("query", name)
	if err != nil {
		return false, err
	}

	if cb == nil {
		return em.reg.has(cname), nil
	}
	return em.reg.hasBinding(cname, name, callbackID(cb)), nil
}

// Configure lazily creates the named container and applies cfg to it.
// It returns ErrReducedMode on an emitter built with WithReducedMode.
func (em *Emitter) Configure(name string, cfg ContainerConfig) error {
	if em == nil || em.reg == nil {
		return ErrNotBound
	}
	if em.reduced {
		return ErrReducedMode
	}
	cname, _, err := em.resolve("configure", name)
	if err != nil {
		return err
	}

	em.reg.setFireOnce(cname, cfg.FireOnce)
	em.logger.Debug("configured",
		zap.String("container", cname.String()),
		zap.Bool("fire_once", cfg.FireOnce))
	return nil
}
