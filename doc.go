// Package emitkit provides a generic in-process publish/subscribe
// dispatcher with hierarchical name bubbling and conditional-expression
// subscriptions.
//
// # Dispatch Names
//
// Events use hierarchical names with colon notation. Publishing a name
// dispatches to its own container first, then bubbles to each ancestor
// obtained by truncating at the last colon:
//
//	a:b:c    - dispatches to containers "a:b:c", then "a:b", then "a"
//
// A subscription name may carry a bracketed expression gating invocation
// to specific ordinals of its container:
//
//	x[4]     - fires only on the 4th publish that reaches "x"
//	x[n]     - fires always (ordinal compared to itself)
//	x        - fires always (implicit [1=1])
//
// Expressions are compiled at subscription time; an unsupported token is
// reported immediately as an expr.UnsupportedTokenError.
//
// # Dispatch Guarantees
//
// Callbacks run synchronously on the publisher's goroutine, in
// subscription order. Each dispatch pass iterates an immutable snapshot
// of the container's binding sequence while rechecking live membership
// per binding, so callbacks may freely subscribe, unsubscribe, and
// publish reentrantly: a callback removed mid-dispatch never fires after
// its removal, and a callback added mid-dispatch never fires in the same
// pass. A callback error aborts the rest of the dispatch and propagates
// to the publisher; the emitter performs no fault isolation.
//
// # Meta-Events
//
// The emitter publishes two reserved names on registry changes:
// MetaNewGroup ("newEventGroup") once per first-ever subscription to a
// container, and MetaNewListener ("newListener") on every successful
// subscription. Subscribing to a reserved name never re-triggers that
// same name.
//
// # Fire-Once Containers
//
// Configure can mark a container fire-once: it dispatches callbacks only
// on its first publish. Callbacks subscribed after that publish never
// join the live sequence; each receives a single deferred invocation on
// a later timer tick, so no subscriber is called before Subscribe
// returns.
//
// # Basic Usage
//
//	em := emitkit.New()
//
//	err := em.Subscribe("buffer:content:inserted", func(em *emitkit.Emitter, args ...any) error {
//	    fmt.Println("inserted:", args)
//	    return nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := em.Publish("buffer:content:inserted", "hello"); err != nil {
//	    log.Printf("publish failed: %v", err)
//	}
//
// # Composition
//
// Any type can host an emitter by embedding *Emitter, or by implementing
// Adopter and being passed to Adopt, which constructs a fresh registry
// for the host. Capability is the interface the host gains.
//
// # Reduced Mode
//
// New(WithReducedMode()) disables expressions and fire-once support for
// compatibility with the original bubbling-only engine: names are taken
// literally and Configure returns ErrReducedMode.
//
// # Thread Safety
//
// All emitter operations are safe for concurrent use. The registry lock
// is never held while a callback runs, so callbacks must manage their
// own shared state.
//
// # Subpackages
//
//   - topic: dispatch-name resolution and the bubbling hierarchy
//   - expr: the conditional-expression compiler
package emitkit
