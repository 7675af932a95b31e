package emitkit

import (
	"slices"
	"strings"
)

// Fan-out adapters: the map-form and space-separated call conventions.
// Both are pure fan-out over the single-name API and do not alter
// per-name semantics. The original enumerated object keys in insertion
// order; Go maps are unordered, so the map forms iterate keys in sorted
// order for determinism.

// SubscribeMap registers each name/callback pair, in sorted key order.
func (em *Emitter) SubscribeMap(m map[string]Callback) error {
	for _, name := range sortedKeys(m) {
		if err := em.Subscribe(name, m[name]); err != nil {
			return err
		}
	}
	return nil
}

// UnsubscribeMap removes each name/callback pair, in sorted key order.
func (em *Emitter) UnsubscribeMap(m map[string]Callback) error {
	for _, name := range sortedKeys(m) {
		if err := em.Unsubscribe(name, m[name]); err != nil {
			return err
		}
	}
	return nil
}

// PublishMap publishes each name with its payload as the single
// argument, in sorted key order.
func (em *Emitter) PublishMap(m map[string]any) error {
	for _, name := range sortedKeys(m) {
		if err := em.Publish(name, m[name]); err != nil {
			return err
		}
	}
	return nil
}

// ConfigureMap applies each name's configuration, in sorted key order.
func (em *Emitter) ConfigureMap(m map[string]ContainerConfig) error {
	for _, name := range sortedKeys(m) {
		if err := em.Configure(name, m[name]); err != nil {
			return err
		}
	}
	return nil
}

// SubscribeEach registers cb for each space-separated name, left to
// right.
func (em *Emitter) SubscribeEach(names string, cb Callback) error {
	split, err := splitNames("subscribe", names)
	if err != nil {
		return err
	}
	for _, name := range split {
		if err := em.Subscribe(name, cb); err != nil {
			return err
		}
	}
	return nil
}

// UnsubscribeEach removes cb from each space-separated name, left to
// right.
func (em *Emitter) UnsubscribeEach(names string, cb Callback) error {
	split, err := splitNames("unsubscribe", names)
	if err != nil {
		return err
	}
	for _, name := range split {
		if err := em.Unsubscribe(name, cb); err != nil {
			return err
		}
	}
	return nil
}

// PublishEach publishes each space-separated name with the same
// arguments, left to right.
func (em *Emitter) PublishEach(names string, args ...any) error {
	split, err := splitNames("publish", names)
	if err != nil {
		return err
	}
	for _, name := range split {
		if err := em.Publish(name, args...); err != nil {
			return err
		}
	}
	return nil
}

// ConfigureEach applies cfg to each space-separated name, left to right.
func (em *Emitter) ConfigureEach(names string, cfg ContainerConfig) error {
	split, err := splitNames("configure", names)
	if err != nil {
		return err
	}
	for _, name := range split {
		if err := em.Configure(name, cfg); err != nil {
			return err
		}
	}
	return nil
}

// sortedKeys returns the map's keys in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// splitNames splits a space-separated name list, rejecting lists with no
// names at all.
func splitNames(op, names string) ([]string, error) {
	split := strings.Fields(names)
	if len(split) == 0 {
		return nil, &InvalidArgumentError{Op: op, Reason: "name list must contain at least one name"}
	}
	return split, nil
}
