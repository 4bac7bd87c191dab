package events

import (
	"sort"
	"sync"
)

// registry is the shared, lock-guarded handler map. The owning Event holds it
// for its whole lifetime; Handles share the same pointer and observe the
// closed flag to learn whether the owner is still alive. The map is never
// accessed outside the lock.
type registry[T any] struct {
	mu           sync.RWMutex
	entries      map[handlerKey]*handler[T]
	closed       bool
	panicHandler PanicHandler
}

func newRegistry[T any](cfg config) *registry[T] {
	return &registry[T]{
		entries:      make(map[handlerKey]*handler[T], cfg.capacity),
		panicHandler: cfg.panicHandler,
	}
}

// register inserts the entry under key. Registration never overwrites: a
// duplicate key fails with ErrDuplicateRegistration and leaves the map
// unchanged. A closed registry fails with ErrEventDropped.
func (r *registry[T]) register(key handlerKey, h *handler[T]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrEventDropped
	}
	if _, exists := r.entries[key]; exists {
		return ErrDuplicateRegistration
	}
	r.entries[key] = h
	return nil
}

// remove deletes the entry for key if present. Removing an absent key is a
// no-op, not an error.
func (r *registry[T]) remove(key handlerKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

func (r *registry[T]) length() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *registry[T]) alive() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.closed
}

// close tears the registry down. All outstanding handles observe the closed
// state and become permanently invalid.
func (r *registry[T]) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.entries = nil
}

func (r *registry[T]) stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{Handlers: len(r.entries)}
	for _, h := range r.entries {
		switch h.kind {
		case kindReusable:
			s.Reusable++
		case kindOnce:
			s.OneShot++
		case kindFuncRef:
			s.FuncRefs++
		}
	}
	return s
}

// invoke broadcasts args to every registered handler, then prunes any
// one-shot entries consumed during the pass. Reports whether the registry was
// still alive.
func (r *registry[T]) invoke(args T) bool {
	spent, alive := r.dispatch(args)

	if len(spent) > 0 {
		r.mu.Lock()
		for _, key := range spent {
			delete(r.entries, key)
		}
		r.mu.Unlock()
	}
	return alive
}

// dispatch is the read phase of invocation: handlers run under the read lock
// in key order, so concurrent registrations and removals queue behind the
// write lock until the pass completes. One-shot entries are consumed here and
// handed back for the write-phase prune; the map is never mutated while it is
// being iterated.
func (r *registry[T]) dispatch(args T) (spent []handlerKey, alive bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, false
	}

	keys := make([]handlerKey, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	for _, key := range keys {
		h := r.entries[key]
		if h.kind == kindOnce {
			// A lost race means another dispatch already consumed the
			// callback; skip the call but still prune the key.
			if h.fired.CompareAndSwap(false, true) {
				r.call(h.fn, args)
			}
			spent = append(spent, key)
			continue
		}
		r.call(h.fn, args)
	}
	return spent, true
}

// call runs a single handler. Without a configured PanicHandler a panicking
// handler unwinds through Invoke on the calling goroutine; the deferred
// unlocks keep the registry usable either way.
func (r *registry[T]) call(fn HandlerFunc[T], args T) {
	if r.panicHandler != nil {
		defer func() {
			if recovered := recover(); recovered != nil {
				r.panicHandler(recovered)
			}
		}()
	}
	fn(args)
}
