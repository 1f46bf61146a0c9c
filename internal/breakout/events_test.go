package breakout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventDeliversInOrder(t *testing.T) {
	var e Event[int]
	var got []string
	e.Subscribe(func(v int) { got = append(got, "a") })
	e.Subscribe(func(v int) { got = append(got, "b") })

	e.Emit(1)

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestEventUnsubscribe(t *testing.T) {
	var e Event[string]
	calls := 0
	unsub := e.Subscribe(func(string) { calls++ })
	e.Subscribe(func(string) {})

	unsub()
	unsub()
	e.Emit("x")

	assert.Zero(t, calls)
	assert.Equal(t, 1, e.Len())
}

func TestEventSubscribeDuringEmit(t *testing.T) {
	var e Event[int]
	late := 0
	e.Subscribe(func(int) {
		e.Subscribe(func(int) { late++ })
	})

	e.Emit(1)
	assert.Zero(t, late)

	e.Emit(2)
	assert.Equal(t, 1, late)
}

func TestEventUnsubscribeDuringEmit(t *testing.T) {
	var e Event[int]
	var second func()
	calls := 0
	e.Subscribe(func(int) { second() })
	second = e.Subscribe(func(int) { calls++ })

	e.Emit(1)
	e.Emit(2)

	assert.Equal(t, 1, calls, "removal takes effect on the next emit")
}
