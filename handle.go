package events

import "sync"

// Handle represents one live registration. Closing the handle removes exactly
// its entry from the registry, at most once, if the owning Event still
// exists. Defer Close right after registering to revoke the registration on
// every exit path.
type Handle[T any] struct {
	key handlerKey
	reg *registry[T]

	mu     sync.Mutex
	closed bool
}

// IsValid reports whether the Event this handle refers to still exists. It
// answers "is the event still alive", not "is my entry still registered": the
// handle's own entry may already be gone (one-shot fired, or Close was
// called) while the event lives on, and IsValid still returns true then.
func (h *Handle[T]) IsValid() bool {
	return h.reg.alive()
}

// Invoke broadcasts args to all currently registered handlers of the owning
// event, not just this handle's own callback — identical to invoking through
// the Event. Returns ErrEventDropped if the Event has been closed.
func (h *Handle[T]) Invoke(args T) error {
	if !h.reg.invoke(args) {
		return ErrEventDropped
	}
	return nil
}

// BestEffort returns a fire-and-forget view of the handle that discards
// ErrEventDropped. This is an explicit opt-in for callers that treat a
// vanished event as "nothing left to notify"; the default path is Invoke with
// its error result.
func (h *Handle[T]) BestEffort() Invoker[T] {
	return bestEffort[T]{h: h}
}

type bestEffort[T any] struct {
	h *Handle[T]
}

func (b bestEffort[T]) Invoke(args T) {
	_ = b.h.Invoke(args) //nolint:errcheck // Discarding ErrEventDropped is the point of this view
}

// Close removes this handle's entry from the registry if the Event still
// exists. Safe to call multiple times; only the first call removes.
func (h *Handle[T]) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	h.reg.remove(h.key)
}
