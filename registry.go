package emitkit

import (
	"slices"
	"sync"

	"github.com/dshills/emitkit/topic"
)

// container holds the ordered binding sequence and dispatch metadata for
// one container name. Binding order is subscription order and is
// preserved across removals.
type container struct {
	bindings    []*binding
	invocations int // monotonic, never reset
	fireOnce    bool
}

// registry is the storage layer of an emitter: a map from container name
// to its binding sequence. Container entries are created lazily and
// never destroyed; an empty sequence is a valid, inert state.
//
// The registry is pure storage. Meta-event emission and the fire-once
// deferral live on the Emitter, which never calls into the registry
// while holding a callback on the stack below a registry lock.
type registry struct {
	mu         sync.Mutex
	containers map[topic.Topic]*container
}

// newRegistry creates an empty registry.
func newRegistry() *registry {
	return &registry{
		containers: make(map[topic.Topic]*container),
	}
}

// ensure lazily creates the container and reports whether it was created
// by this call.
func (r *registry) ensure(name topic.Topic) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.containers[name]; ok {
		return false
	}
	r.containers[name] = &container{}
	return true
}

// setFireOnce lazily creates the container and sets its fire-once flag.
func (r *registry) setFireOnce(name topic.Topic, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.containers[name]
	if !ok {
		c = &container{}
		r.containers[name] = c
	}
	c.fireOnce = on
}

// append adds a binding to its container's sequence. It returns false
// when the container is fire-once and has already fired, in which case
// no state is added and the caller must take the deferred path.
func (r *registry) append(b *binding) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.containers[b.container]
	if !ok {
		c = &container{}
		r.containers[b.container] = c
	}
	if c.fireOnce && c.invocations > 0 {
		return false
	}
	c.bindings = append(c.bindings, b)
	return true
}

// remove deletes the first binding in the container matching the
// callback identity. It reports whether a binding was removed; a missing
// container or callback is a no-op, not an error.
func (r *registry) remove(name topic.Topic, id uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.containers[name]
	if !ok {
		return false
	}
	for i, b := range c.bindings {
		if b.id == id {
			c.bindings = slices.Delete(c.bindings, i, i+1)
			return true
		}
	}
	return false
}

// has reports whether the container exists with a non-empty sequence.
func (r *registry) has(name topic.Topic) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.containers[name]
	return ok && len(c.bindings) > 0
}

// hasBinding reports whether the container holds a binding matching both
// the callback identity and the exact dispatch name.
func (r *registry) hasBinding(name topic.Topic, dispatchName string, id uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.containers[name]
	if !ok {
		return false
	}
	for _, b := range c.bindings {
		if b.id == id && b.dispatchName == dispatchName {
			return true
		}
	}
	return false
}

// beginPass starts one dispatch pass over a container. When the
// container exists with a non-empty sequence it increments the
// invocation count and returns it with an immutable snapshot of the
// sequence. The snapshot is nil when the container is absent or empty
// (no count increment) or when a fire-once container has already fired
// (count still incremented).
func (r *registry) beginPass(name topic.Topic) ([]*binding, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.containers[name]
	if !ok || len(c.bindings) == 0 {
		return nil, 0
	}
	c.invocations++
	n := c.invocations
	if c.fireOnce && n > 1 {
		return nil, n
	}
	return slices.Clone(c.bindings), n
}

// contains reports whether the binding is still live in its container.
// Dispatch iterates snapshots but only invokes bindings that pass this
// check, so a callback removed mid-pass never fires after its removal.
func (r *registry) contains(b *binding) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.containers[b.container]
	if !ok {
		return false
	}
	return slices.Contains(c.bindings, b)
}

// counts returns the number of containers and the total number of live
// bindings.
func (r *registry) counts() (containers, bindings int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	containers = len(r.containers)
	for _, c := range r.containers {
		bindings += len(c.bindings)
	}
	return containers, bindings
}
