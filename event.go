package events

import (
	"sync"

	"github.com/pkg/errors"
)

// Event is a broadcast point: it owns the handler registry and is the entry
// point for registration and invocation. The zero value is not usable;
// construct with New.
type Event[T any] struct {
	reg       *registry[T]
	closeOnce sync.Once
}

// Invoker broadcasts an argument value to every registered handler. *Event
// implements it directly; Handle.BestEffort adapts a handle to it.
type Invoker[T any] interface {
	Invoke(args T)
}

// New creates an Event with an empty registry and optional configuration.
func New[T any](opts ...Option) *Event[T] {
	return &Event[T]{reg: newRegistry[T](newConfig(opts))}
}

// Add registers a reusable handler that fires on every invocation until its
// Handle is closed. Each call mints a fresh identity, so the same callback
// value can be added more than once.
func (e *Event[T]) Add(fn HandlerFunc[T]) (*Handle[T], error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return e.register(nextBoxedKey(), kindReusable, fn)
}

// AddOnce registers a one-shot handler: it fires at most once, and its entry
// is removed by the invocation that consumed it.
func (e *Event[T]) AddOnce(fn HandlerFunc[T]) (*Handle[T], error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return e.register(nextBoxedKey(), kindOnce, fn)
}

// AddFunc registers a handler keyed by the function's own identity.
// Registering the exact same function twice fails with
// ErrDuplicateRegistration: deduplication is by identity, not by behavior.
func (e *Event[T]) AddFunc(fn HandlerFunc[T]) (*Handle[T], error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	handle, err := e.register(funcKey(fn), kindFuncRef, fn)
	if err != nil {
		return nil, errors.Wrap(err, "function reference")
	}
	return handle, nil
}

func (e *Event[T]) register(key handlerKey, kind handlerKind, fn HandlerFunc[T]) (*Handle[T], error) {
	if err := e.reg.register(key, &handler[T]{kind: kind, fn: fn}); err != nil {
		return nil, err
	}
	return &Handle[T]{key: key, reg: e.reg}, nil
}

// Len returns the number of currently registered handlers.
func (e *Event[T]) Len() int {
	return e.reg.length()
}

// Invoke broadcasts args to every currently registered handler, each handler
// receiving its own copy of the value. Handlers run synchronously on the
// calling goroutine, in a stable but semantically arbitrary key order.
// Invoking a closed event is a no-op.
func (e *Event[T]) Invoke(args T) {
	e.reg.invoke(args)
}

// Stats returns registration counts by handler variant.
func (e *Event[T]) Stats() Stats {
	return e.reg.stats()
}

// Close tears down the registry, invalidating every outstanding Handle:
// subsequent Handle.Invoke calls return ErrEventDropped, IsValid reports
// false, and further registrations fail. Safe to call multiple times.
func (e *Event[T]) Close() {
	e.closeOnce.Do(func() {
		e.reg.close()
	})
}
