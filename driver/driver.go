// Package driver defines the collaborator interfaces this module expects
// an I/O integration layer to supply (spec.md §6). No concrete adapter
// lives here — the two event-loop adapters the original project ships are
// explicitly out of scope (spec.md §1) — only the contract Connection
// drives against.
package driver

// Transport is the injected byte-oriented collaborator. The core never
// opens a socket itself; it calls Write with already-encoded frames and
// expects OnBytes to be invoked with newly-received bytes in order.
type Transport interface {
	// Write sends raw, already-framed bytes without waiting for any reply
	// (spec.md §5). A write error is returned, and Connection passes it on
	// to the caller of the send; loss of the transport itself is reported
	// through OnDisconnect.
	Write(b []byte) error

	// OnBytes registers the callback invoked whenever new bytes arrive.
	// Only one callback is supported; registering a second replaces the
	// first.
	OnBytes(fn func(b []byte))

	// OnDisconnect registers the callback invoked when the transport is
	// lost, for any reason (spec.md §7 item 5).
	OnDisconnect(fn func(err error))
}

// Scheduler is the injected event-loop collaborator used for deferred and
// periodic work — e.g. heartbeat emission, whose *framing* this module
// implements but whose *timing* is the scheduler's responsibility
// (spec.md §1, §6).
type Scheduler interface {
	// Defer runs fn on the event loop at the next opportunity.
	Defer(fn func())

	// AddPeriodic runs fn every interval (in milliseconds) until the
	// returned cancel function is called.
	AddPeriodic(intervalMillis int64, fn func()) (cancel func())
}
