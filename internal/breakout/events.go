package breakout

// Event is a synchronous observer list. Handlers run in subscription order
// at the moment Emit is called.
type Event[T any] struct {
	nextID   int
	handlers []eventHandler[T]
}

type eventHandler[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it.
func (e *Event[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, eventHandler[T]{id: id, fn: fn})

	return func() {
		for i, h := range e.handlers {
			if h.id == id {
				e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every handler registered when Emit starts. Handlers added or
// removed during delivery take effect from the next Emit.
func (e *Event[T]) Emit(v T) {
	if len(e.handlers) == 0 {
		return
	}
	snapshot := make([]eventHandler[T], len(e.handlers))
	copy(snapshot, e.handlers)
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Len returns the number of registered handlers.
func (e *Event[T]) Len() int {
	return len(e.handlers)
}
