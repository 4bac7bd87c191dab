// Package events provides a thread-safe event/callback registry.
//
// An Event owns a registry of handlers keyed by registration identity.
// Registering a callback returns a Handle that revokes exactly that
// registration when closed; closing the Event itself invalidates every
// outstanding Handle. Invoking the event broadcasts one argument value to all
// currently registered handlers.
//
// Quick example:
//
//	e := events.New[int]()
//	defer e.Close()
//
//	handle, _ := e.Add(func(v int) {
//	    // Process value...
//	})
//	defer handle.Close()
//
//	e.Invoke(42)
//
// The registry is a passive, synchronous data structure: Invoke runs every
// handler on the calling goroutine before returning, and no goroutines or
// queues are created internally. All operations are safe for concurrent use.
package events

import (
	"reflect"
	"sync/atomic"
)

// HandlerFunc is the callback signature for event handlers.
// Handlers receive their own copy of the argument value. For pointer-shaped
// payloads the pointee is shared between handlers and must not be mutated
// unless the handlers coordinate themselves.
type HandlerFunc[T any] func(args T)

// handlerKind discriminates the registered handler variants.
type handlerKind uint8

const (
	// kindReusable handlers fire on every invocation until revoked.
	kindReusable handlerKind = iota
	// kindOnce handlers fire at most once and are then auto-removed.
	kindOnce
	// kindFuncRef handlers fire on every invocation and are keyed by the
	// function's code identity rather than a fresh registration id.
	kindFuncRef
)

// keyClass separates the two identity namespaces so that sequence-minted ids
// and function code pointers can never collide.
type keyClass uint8

const (
	classBoxed keyClass = iota
	classFunc
)

// handlerKey uniquely identifies one registration. Keys have a total order
// (class, then id) used only to make iteration within one dispatch
// deterministic; the order carries no semantic meaning.
type handlerKey struct {
	class keyClass
	id    uint64
}

func (k handlerKey) less(o handlerKey) bool {
	if k.class != o.class {
		return k.class < o.class
	}
	return k.id < o.id
}

// keySeq mints one fresh, never-reused identity per boxed registration.
var keySeq atomic.Uint64

func nextBoxedKey() handlerKey {
	return handlerKey{class: classBoxed, id: keySeq.Add(1)}
}

// funcKey derives a key from the function's code identity. The same function
// registered twice yields the same key; note that two closures built from the
// same function literal share code identity and also collide.
func funcKey[T any](fn HandlerFunc[T]) handlerKey {
	return handlerKey{class: classFunc, id: uint64(reflect.ValueOf(fn).Pointer())}
}

// handler is one registry entry. The kind is fixed at registration time.
type handler[T any] struct {
	kind handlerKind
	fn   HandlerFunc[T]

	// fired marks a one-shot handler as consumed. Compare-and-swap during the
	// read phase guarantees at-most-once invocation even under concurrent
	// dispatch.
	fired atomic.Bool
}

// Stats provides registration counts for an Event.
type Stats struct {
	// Handlers is the total number of currently registered handlers.
	Handlers int

	// Reusable is the number of handlers registered via Add.
	Reusable int

	// OneShot is the number of not-yet-fired handlers registered via AddOnce.
	OneShot int

	// FuncRefs is the number of handlers registered via AddFunc.
	FuncRefs int
}
