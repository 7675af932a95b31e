package emitkit

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/emitkit/topic"
)

// Bridge adapts a JSON wire format onto an emitter, for embedding the
// dispatch engine in programs that exchange events as JSON lines.
// Inbound messages carry a "name" string and an optional "args" array:
//
//	{"name":"download:progress","args":[42,"half way"]}
//
// Outbound messages additionally carry a generated "id" and the bridge's
// "source" tag.
type Bridge struct {
	em     *Emitter
	source string
}

// NewBridge creates a bridge over em. The source tag identifies the
// origin of encoded messages.
func NewBridge(em *Emitter, source string) *Bridge {
	return &Bridge{em: em, source: source}
}

// Decode publishes the event described by a JSON message. Array
// arguments are passed positionally to the callbacks as decoded JSON
// values.
func (br *Bridge) Decode(msg []byte) error {
	if !gjson.ValidBytes(msg) {
		return &InvalidArgumentError{Op: "decode", Reason: "message is not valid JSON"}
	}

	name := gjson.GetBytes(msg, "name")
	if name.Type != gjson.String || name.Str == "" {
		return &InvalidArgumentError{Op: "decode", Reason: "message has no name field"}
	}

	var args []any
	if arr := gjson.GetBytes(msg, "args"); arr.IsArray() {
		for _, v := range arr.Array() {
			args = append(args, v.Value())
		}
	}

	return br.em.Publish(name.Str, args...)
}

// Encode builds the outbound JSON message for one dispatch.
func (br *Bridge) Encode(name string, args ...any) ([]byte, error) {
	if name == "" {
		return nil, &InvalidArgumentError{Op: "encode", Reason: "dispatch name must be a non-empty string"}
	}

	msg := []byte(`{}`)
	var err error
	for _, field := range []struct {
		path  string
		value any
	}{
		{"id", uuid.NewString()},
		{"source", br.source},
		{"name", name},
	} {
		if msg, err = sjson.SetBytes(msg, field.path, field.value); err != nil {
			return nil, err
		}
	}
	for i, arg := range args {
		if msg, err = sjson.SetBytes(msg, "args."+strconv.Itoa(i), arg); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// Forward subscribes to each space-separated name and writes the encoded
// message for every matching dispatch to sink. A sink error propagates
// to the publisher like any callback error.
func (br *Bridge) Forward(names string, sink func(msg []byte) error) error {
	split, err := splitNames("forward", names)
	if err != nil {
		return err
	}
	for _, name := range split {
		container := name
		if !br.em.reduced {
			// Encode dispatches under the container name, suffix stripped.
			cname, _ := topic.Parse(name)
			container = cname.String()
		}
		cb := func(_ *Emitter, args ...any) error {
			msg, err := br.Encode(container, args...)
			if err != nil {
				return err
			}
			return sink(msg)
		}
		if err := br.em.Subscribe(name, cb); err != nil {
			return err
		}
	}
	return nil
}
