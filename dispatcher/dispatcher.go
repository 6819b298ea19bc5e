// Package dispatcher holds the static (class-id, method-id) -> handler
// table spec.md §4.3 and §9 call for. It generalizes the teacher's
// handleMethod/connectionRoute/channelRoute/basicRoute switch cascade
// (server/channel.go) into a single data-driven registry built entirely
// by init()-time Register calls in the channel package; nothing mutates it
// afterwards.
package dispatcher

import (
	"fmt"

	"github.com/travis-repos/amq-client/amqp"
)

// Handler processes one decoded method against target — the *channel.Channel
// the frame arrived on. It is untyped to avoid an import cycle between
// dispatcher and the package that registers against it; Register call sites
// type-assert target to *channel.Channel, which holds because
// Channel.HandleFrame is the only caller of Dispatch and passes itself.
type Handler func(target interface{}, method amqp.Method) *amqp.Error

var registry = map[[2]uint16]Handler{}

// Register adds a handler for (classID, methodID). Called only from
// package-level init() functions; registering the same pair twice is a
// programming error and panics rather than silently shadowing.
func Register(classID, methodID uint16, h Handler) {
	key := [2]uint16{classID, methodID}
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("dispatcher: duplicate registration for class=%d method=%d", classID, methodID))
	}
	registry[key] = h
}

// Dispatch looks up the handler for method's (class-id, method-id) and
// invokes it against target. An unregistered pair is a protocol violation
// the decoder should already have caught via amqp.UnknownMethod; Dispatch
// returns the same error shape here as a defensive fallback.
func Dispatch(target interface{}, method amqp.Method) *amqp.Error {
	h, ok := registry[[2]uint16{method.ClassID(), method.MethodID()}]
	if !ok {
		return amqp.UnknownMethod(method.ClassID(), method.MethodID())
	}
	return h(target, method)
}

// Registered reports whether a handler exists for (classID, methodID).
func Registered(classID, methodID uint16) bool {
	_, ok := registry[[2]uint16{classID, methodID}]
	return ok
}
