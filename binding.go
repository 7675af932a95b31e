package emitkit

import (
	"reflect"

	"github.com/dshills/emitkit/expr"
	"github.com/dshills/emitkit/topic"
)

// Callback is a subscription handler. It receives the emitter the event
// was published on and the publisher's arguments, unmodified. A non-nil
// error aborts the remainder of the dispatch and is returned from
// Publish unwrapped; the emitter performs no isolation between
// callbacks.
type Callback func(em *Emitter, args ...any) error

// callbackID returns the identity of a callback for removal and query
// matching. Go funcs are not comparable with ==, so identity is the
// code pointer. Distinct closures over the same function literal share
// a code pointer and therefore an identity; removal takes the first
// match in subscription order.
func callbackID(cb Callback) uintptr {
	return reflect.ValueOf(cb).Pointer()
}

// binding is one subscription record. Bindings are immutable once
// created and owned exclusively by the container they live in; removal
// deletes the record, it is never re-homed.
type binding struct {
	// dispatchName is the exact string passed to Subscribe, including
	// any bracketed expression.
	dispatchName string

	// container is dispatchName with its expression suffix stripped.
	container topic.Topic

	// predicate gates invocation to specific ordinals of the container.
	predicate expr.Predicate

	// callback is the handler to invoke.
	callback Callback

	// id is the callback's identity, captured once at creation.
	id uintptr
}

// newBinding creates a binding for the given resolved subscription.
func newBinding(dispatchName string, container topic.Topic, pred expr.Predicate, cb Callback) *binding {
	return &binding{
		dispatchName: dispatchName,
		container:    container,
		predicate:    pred,
		callback:     cb,
		id:           callbackID(cb),
	}
}
