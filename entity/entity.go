// Package entity provides the reusable substrate spec.md §4.2 describes:
// a status tag and an order-preserving, named callback registry shared by
// Connection, Channel, Queue and Exchange. It is deliberately a plain data
// structure (no channel-table or transport knowledge) so every entity can
// embed it without pulling in the rest of the core.
package entity

import "sync"

// Status is a single mutable tag an entity carries through its lifecycle
// (spec.md §3's Channel status: opening/opened/closing/closed, and
// analogous tags on Queue/Exchange).
type Status int

// Callback is fired with an arbitrary reply payload — the decoded method,
// entity, or error the event concerns.
type Callback func(arg interface{})

// Base is embedded by every entity that needs a status tag plus named
// callbacks: Connection, Channel, Queue, Exchange. Firing is either
// "fire-and-keep" (ExecCallback) or "fire-and-drop" (ExecCallbackOnce);
// spec.md §9 suggests a systems-language port model this as a tagged
// Once(fn)|Many(fn) variant per registration instead of deciding at fire
// time — this implementation follows spec.md §4.2's literal contract,
// where the *call site* (not the registration) chooses keep vs. drop.
type Base struct {
	mu        sync.Mutex
	status    Status
	callbacks map[string][]Callback
	self      interface{}
}

// Init must be called once after construction, passing the entity itself
// so the *Self callback variants can pass it as their first argument.
func (b *Base) Init(self interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.self = self
	if b.callbacks == nil {
		b.callbacks = make(map[string][]Callback)
	}
}

// Status returns the entity's current lifecycle tag.
func (b *Base) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// SetStatus transitions the entity to a new status tag.
func (b *Base) SetStatus(s Status) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = s
}

// DefineCallback appends a listener under name; firing order matches
// registration order.
func (b *Base) DefineCallback(name string, fn Callback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.callbacks == nil {
		b.callbacks = make(map[string][]Callback)
	}
	b.callbacks[name] = append(b.callbacks[name], fn)
}

// RedefineCallback replaces every listener registered under name with fn.
func (b *Base) RedefineCallback(name string, fn Callback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.callbacks == nil {
		b.callbacks = make(map[string][]Callback)
	}
	if fn == nil {
		delete(b.callbacks, name)
		return
	}
	b.callbacks[name] = []Callback{fn}
}

// ExecCallback fires every listener registered under name with arg and
// keeps the registration ("fire-and-keep"). A missing name is a silent
// no-op (spec.md §4.2).
func (b *Base) ExecCallback(name string, arg interface{}) {
	b.fire(name, arg, false)
}

// ExecCallbackOnce fires every listener registered under name with arg and
// then clears the registration ("fire-and-drop") — this is how the
// per-operation completion callback in spec.md §4.5 resolves: Queue.declare
// defines its callback under an op-specific name, and the channel's reply
// handler exec_callback_onces it when the *-Ok arrives.
func (b *Base) ExecCallbackOnce(name string, arg interface{}) {
	b.fire(name, arg, true)
}

func (b *Base) fire(name string, arg interface{}, drop bool) {
	b.mu.Lock()
	fns := b.callbacks[name]
	if drop {
		delete(b.callbacks, name)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(arg)
	}
}

// SelfCallback receives the owning entity alongside the reply payload —
// the *Self variants spec.md §4.2 names.
type SelfCallback func(self interface{}, arg interface{})

// DefineCallbackSelf registers a persistent listener that also receives
// the entity itself.
func (b *Base) DefineCallbackSelf(name string, fn SelfCallback) {
	b.DefineCallback(name, func(arg interface{}) {
		b.mu.Lock()
		self := b.self
		b.mu.Unlock()
		fn(self, arg)
	})
}

// HasCallback reports whether any listener is registered under name —
// used by callers that want to avoid building a reply payload when
// nothing is listening.
func (b *Base) HasCallback(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.callbacks[name]) > 0
}

// ClearCallbacks empties the entire registry — step 3 of
// handle_connection_interruption (spec.md §4.4).
func (b *Base) ClearCallbacks() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks = make(map[string][]Callback)
}
