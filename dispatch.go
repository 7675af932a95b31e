package emitkit

import (
	"time"

	"go.uber.org/zap"

	"github.com/dshills/emitkit/topic"
)

// Publish dispatches the named event to every matching callback,
// synchronously, on the caller's goroutine. The walk visits the resolved
// container first, then each ancestor obtained by truncating at the last
// separator: publishing "a:b:c" dispatches to "a:b:c", "a:b" and "a", in
// that order, each with its own invocation count.
//
// Per container with a non-empty sequence the invocation count is
// incremented - even when no predicate ends up matching - and an
// immutable snapshot of the sequence is iterated in subscription order.
// A callback is invoked only if its predicate holds for the new count
// and the binding is still live, so a callback unsubscribed mid-dispatch
// never fires after its removal and a callback subscribed mid-dispatch
// never fires in the same pass. Fire-once containers skip invocation
// entirely after their first pass.
//
// A callback error aborts the remainder of the container's sequence and
// the rest of the bubbling chain, and is returned unwrapped. The emitter
// provides ordering and reentrancy guarantees, not fault isolation.
func (em *Emitter) Publish(name string, args ...any) error {
	if em == nil || em.reg == nil {
		return ErrNotBound
	}
	cname, _, err := em.resolve("publish", name)
	if err != nil {
		return err
	}

	em.stats.published.Add(1)
	em.logger.Debug("publish",
		zap.String("name", cname.String()),
		zap.Int("args", len(args)))

	for t := cname; t != ""; t = t.Parent() {
		snapshot, ordinal := em.reg.beginPass(t)
		for _, b := range snapshot {
			if !b.predicate.Eval(ordinal) {
				continue
			}
			// Snapshots are never invalidated; liveness is rechecked
			// per binding instead.
			if !em.reg.contains(b) {
				continue
			}
			em.stats.invoked.Add(1)
			if err := b.callback(em, args...); err != nil {
				em.stats.callbackErrors.Add(1)
				return err
			}
		}
	}
	return nil
}

// deferOnce schedules one asynchronous invocation of cb, the
// accommodation for subscribers arriving after a fire-once container has
// fired. The delay only decouples the callback from the subscriber's
// call stack; there is no cancellation. The callback's error has no
// caller to flow to, so it is logged instead.
func (em *Emitter) deferOnce(cname topic.Topic, cb Callback) {
	em.stats.deferred.Add(1)
	em.logger.Debug("deferring fire-once callback",
		zap.String("container", cname.String()),
		zap.Duration("delay", em.deferDelay))

	time.AfterFunc(em.deferDelay, func() {
		if err := cb(em); err != nil {
			em.stats.callbackErrors.Add(1)
			em.logger.Error("deferred callback failed",
				zap.String("container", cname.String()),
				zap.Error(err))
		}
	})
}
