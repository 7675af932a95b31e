package emitkit

import "sync/atomic"

// emitterStats holds the emitter's internal counters.
type emitterStats struct {
	published      atomic.Uint64
	invoked        atomic.Uint64
	callbackErrors atomic.Uint64
	deferred       atomic.Uint64
}

// Stats contains emitter statistics.
type Stats struct {
	// EventsPublished is the total number of Publish calls accepted.
	EventsPublished uint64

	// CallbacksInvoked is the total number of callback invocations,
	// deferred fire-once invocations excluded.
	CallbacksInvoked uint64

	// CallbackErrors is the number of callbacks that returned errors,
	// deferred invocations included.
	CallbackErrors uint64

	// DeferredCallbacks is the number of fire-once late subscriptions
	// scheduled for deferred invocation.
	DeferredCallbacks uint64

	// Containers is the current number of containers, empty ones
	// included (containers are never destroyed).
	Containers int

	// ActiveBindings is the current number of live bindings.
	ActiveBindings int
}

// Stats returns a snapshot of the emitter's counters.
// Note: counters are read without a mutex, so values may be slightly
// inconsistent if dispatches are running concurrently.
func (em *Emitter) Stats() Stats {
	var containers, bindings int
	if em.reg != nil {
		containers, bindings = em.reg.counts()
	}
	return Stats{
		EventsPublished:   em.stats.published.Load(),
		CallbacksInvoked:  em.stats.invoked.Load(),
		CallbackErrors:    em.stats.callbackErrors.Load(),
		DeferredCallbacks: em.stats.deferred.Load(),
		Containers:        containers,
		ActiveBindings:    bindings,
	}
}
