package state

import "sync"

// Hub fans store-change notifications out to observers. Selection and flash
// stores share one Hub so observers see a single merged stream.
type Hub struct {
	mu        sync.Mutex
	nextID    int
	observers []observer
}

type observer struct {
	id int
	fn func()
}

// Observe registers fn to run after every store mutation and returns a
// function that removes it. The returned function is safe to call more than
// once. fn runs on the mutating goroutine and must not block.
func (h *Hub) Observe(fn func()) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.observers = append(h.observers, observer{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, o := range h.observers {
		if o.id == id {
			h.observers = append(h.observers[:i:i], h.observers[i+1:]...)
			return
		}
	}
}

// Len reports the number of registered observers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers)
}

// Notify calls every observer in registration order. Observers run outside
// the hub lock so they may call Observe or unsubscribe.
func (h *Hub) Notify() {
	if h == nil {
		return
	}
	h.mu.Lock()
	fns := make([]func(), len(h.observers))
	for i, o := range h.observers {
		fns[i] = o.fn
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
