package emitkit

import (
	"errors"
	"reflect"
	"testing"
)

func TestPublish_ExactName(t *testing.T) {
	em := New()

	calls := 0
	em.Subscribe("a:b:c", func(em *Emitter, args ...any) error {
		calls++
		return nil
	})

	if err := em.Publish("a:b:c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 invocation, got %d", calls)
	}

	// Publishing an ancestor never reaches a more specific subscriber
	em.Publish("a:b")
	em.Publish("a")
	if calls != 1 {
		t.Errorf("expected ancestors not to reach the subscriber, got %d", calls)
	}
}

func TestPublish_BubblesToAncestors(t *testing.T) {
	em := New()

	calls := 0
	em.Subscribe("a", func(em *Emitter, args ...any) error {
		calls++
		return nil
	})

	if err := em.Publish("a:b:c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected bubbling to reach the ancestor exactly once, got %d", calls)
	}
}

func TestPublish_BubblingOrder(t *testing.T) {
	em := New()

	var order []string
	record := func(name string) Callback {
		return func(em *Emitter, args ...any) error {
			order = append(order, name)
			return nil
		}
	}

	em.Subscribe("a", record("a"))
	em.Subscribe("a:b", record("a:b"))
	em.Subscribe("a:b:c", record("a:b:c"))

	em.Publish("a:b:c")

	want := []string{"a:b:c", "a:b", "a"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected dispatch order %v, got %v", want, order)
	}
}

func TestPublish_SubscriptionOrderWithinContainer(t *testing.T) {
	em := New()

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		em.Subscribe("e", func(em *Emitter, args ...any) error {
			order = append(order, i)
			return nil
		})
	}

	em.Publish("e")

	want := []int{1, 2, 3}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected subscription order %v, got %v", want, order)
	}
}

func TestPublish_ArgumentsPassedThrough(t *testing.T) {
	em := New()

	var got []any
	em.Subscribe("e", func(em *Emitter, args ...any) error {
		got = args
		return nil
	})

	em.Publish("e", 1, "two", []int{3})

	want := []any{1, "two", []int{3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected args %v, got %v", want, got)
	}
}

func TestPublish_EmitterPassedToCallback(t *testing.T) {
	em := New()

	var got *Emitter
	em.Subscribe("e", func(em *Emitter, args ...any) error {
		got = em
		return nil
	})

	em.Publish("e")
	if got != em {
		t.Error("expected callback to receive the publishing emitter")
	}
}

func TestPublish_OrdinalExpression(t *testing.T) {
	em := New()

	var firedAt []int
	em.Subscribe("x[4]", func(em *Emitter, args ...any) error {
		firedAt = append(firedAt, len(firedAt))
		return nil
	})

	for i := 0; i < 6; i++ {
		if err := em.Publish("x"); err != nil {
			t.Fatalf("publish %d: unexpected error: %v", i+1, err)
		}
	}

	if len(firedAt) != 1 {
		t.Fatalf("expected exactly one invocation on the 4th publish, got %d", len(firedAt))
	}
}

func TestPublish_OrdinalExpressionTiming(t *testing.T) {
	em := New()

	publishes := 0
	fired := -1
	em.Subscribe("x[4]", func(em *Emitter, args ...any) error {
		fired = publishes
		return nil
	})

	for i := 1; i <= 4; i++ {
		publishes = i
		em.Publish("x")
	}

	if fired != 4 {
		t.Errorf("expected invocation on the 4th publish, fired at %d", fired)
	}
}

func TestPublish_OrdinalSymbolAlwaysFires(t *testing.T) {
	em := New()

	calls := 0
	em.Subscribe("x[n]", func(em *Emitter, args ...any) error {
		calls++
		return nil
	})

	for i := 0; i < 3; i++ {
		em.Publish("x")
	}
	// n == n on both sides, so every ordinal matches
	if calls != 3 {
		t.Errorf("expected 3 invocations, got %d", calls)
	}
}

func TestPublish_OrdinalCountsUnmatchedPasses(t *testing.T) {
	em := New()

	calls := 0
	em.Subscribe("x[4]", func(em *Emitter, args ...any) error {
		calls++
		return nil
	})

	// The count advances on every publish that reaches the container,
	// whether or not any predicate matches.
	em.Publish("x")
	em.Publish("x")
	em.Publish("x")
	if calls != 0 {
		t.Fatalf("expected no invocations before the 4th publish, got %d", calls)
	}
	em.Publish("x")
	if calls != 1 {
		t.Errorf("expected invocation on the 4th publish, got %d", calls)
	}
}

func TestPublish_IndependentCountsPerContainer(t *testing.T) {
	em := New()

	parent := 0
	em.Subscribe("a[2]", func(em *Emitter, args ...any) error {
		parent++
		return nil
	})

	// Bubbling publishes advance the ancestor's count independently
	em.Publish("a:b")
	if parent != 0 {
		t.Fatalf("expected no invocation at ordinal 1, got %d", parent)
	}
	em.Publish("a")
	if parent != 1 {
		t.Errorf("expected invocation at ordinal 2, got %d", parent)
	}
}

func TestPublish_ReentrantUnsubscribeLater(t *testing.T) {
	em := New()

	var secondFired bool
	second := func(em *Emitter, args ...any) error {
		secondFired = true
		return nil
	}

	em.Subscribe("e", func(em *Emitter, args ...any) error {
		// Remove a handler whose turn has not yet come
		return em.Unsubscribe("e", second)
	})
	em.Subscribe("e", second)

	thirdFired := false
	em.Subscribe("e", func(em *Emitter, args ...any) error {
		thirdFired = true
		return nil
	})

	if err := em.Publish("e"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secondFired {
		t.Error("expected removed handler not to fire before its turn")
	}
	if !thirdFired {
		t.Error("expected remaining handler to fire despite mid-dispatch removal")
	}
}

func TestPublish_ReentrantUnsubscribeEarlier(t *testing.T) {
	em := New()

	firstFired := false
	first := func(em *Emitter, args ...any) error {
		firstFired = true
		return nil
	}

	em.Subscribe("e", first)
	em.Subscribe("e", func(em *Emitter, args ...any) error {
		// Remove a handler whose turn has already passed
		return em.Unsubscribe("e", first)
	})

	if err := em.Publish("e"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !firstFired {
		t.Error("expected handler to fire before its later removal")
	}

	firstFired = false
	em.Publish("e")
	if firstFired {
		t.Error("expected removed handler not to fire on the next publish")
	}
}

func TestPublish_ReentrantSubscribeNotInvokedSamePass(t *testing.T) {
	em := New()

	lateFired := 0
	em.Subscribe("e", func(em *Emitter, args ...any) error {
		return em.Subscribe("e", func(em *Emitter, args ...any) error {
			lateFired++
			return nil
		})
	})

	em.Publish("e")
	if lateFired != 0 {
		t.Fatalf("expected handler added mid-dispatch not to fire in the same pass, got %d", lateFired)
	}

	em.Publish("e")
	if lateFired != 1 {
		t.Errorf("expected handler added mid-dispatch to fire on the next publish, got %d", lateFired)
	}
}

func TestPublish_ReentrantPublishSharesCount(t *testing.T) {
	em := New()

	var ordinals []int
	depth := 0
	em.Subscribe("e[n]", func(em *Emitter, args ...any) error {
		depth++
		if depth == 1 {
			// The nested publish observes a higher ordinal
			return em.Publish("e")
		}
		return nil
	})
	em.Subscribe("e[2]", func(em *Emitter, args ...any) error {
		ordinals = append(ordinals, 2)
		return nil
	})

	if err := em.Publish("e"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The nested publish was ordinal 2, so the [2] handler fired exactly
	// once, during the nested pass.
	if len(ordinals) != 1 {
		t.Errorf("expected the nested pass to fire the [2] handler once, got %d", len(ordinals))
	}
}

func TestPublish_CallbackErrorAbortsDispatch(t *testing.T) {
	em := New()

	boom := errors.New("boom")
	em.Subscribe("a:b", func(em *Emitter, args ...any) error {
		return boom
	})

	laterFired := false
	em.Subscribe("a:b", func(em *Emitter, args ...any) error {
		laterFired = true
		return nil
	})
	ancestorFired := false
	em.Subscribe("a", func(em *Emitter, args ...any) error {
		ancestorFired = true
		return nil
	})

	err := em.Publish("a:b")
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error to propagate unwrapped, got %v", err)
	}
	if laterFired {
		t.Error("expected error to abort the rest of the container's sequence")
	}
	if ancestorFired {
		t.Error("expected error to abort the rest of the bubbling chain")
	}
}

func TestPublish_NoSubscribers(t *testing.T) {
	em := New()

	if err := em.Publish("nobody:home"); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestPublish_ExpressionSuffixIgnored(t *testing.T) {
	em := New()

	calls := 0
	em.Subscribe("x", func(em *Emitter, args ...any) error {
		calls++
		return nil
	})

	// Publishing resolves the container name; a suffix on the published
	// name is stripped, not matched.
	if err := em.Publish("x[banana]"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 invocation, got %d", calls)
	}
}

func TestEmitter_Stats(t *testing.T) {
	em := New()

	em.Subscribe("e", noopCallback())
	em.Subscribe("e[4]", noopCallback())
	em.Publish("e")
	em.Publish("missing")

	stats := em.Stats()
	// Two explicit publishes plus three meta-event publishes (one
	// newEventGroup for "e", one newListener per subscription).
	if stats.EventsPublished != 5 {
		t.Errorf("expected 5 events published, got %d", stats.EventsPublished)
	}
	if stats.CallbacksInvoked != 1 {
		t.Errorf("expected 1 callback invoked, got %d", stats.CallbacksInvoked)
	}
	if stats.ActiveBindings != 2 {
		t.Errorf("expected 2 active bindings, got %d", stats.ActiveBindings)
	}
	if stats.Containers == 0 {
		t.Error("expected at least one container")
	}
}
