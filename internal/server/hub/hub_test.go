package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_FilterAndOrder(t *testing.T) {
	h := New[int]()
	even, cancelEven := h.Subscribe(func(v int) bool { return v%2 == 0 })
	all, cancelAll := h.Subscribe(nil)
	defer cancelEven()
	defer cancelAll()

	for i := 1; i <= 4; i++ {
		h.Publish(i)
	}

	assert.Equal(t, 2, <-even)
	assert.Equal(t, 4, <-even)
	for i := 1; i <= 4; i++ {
		assert.Equal(t, i, <-all)
	}
}

func TestHub_CancelIsIdempotent(t *testing.T) {
	h := New[string]()
	ch, cancel := h.Subscribe(nil)

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())

	require.NotPanics(t, func() { h.Publish("after") })
}

func TestHub_SlowSubscriberDropped(t *testing.T) {
	h := NewWithBuffer[int](2)
	ch, cancel := h.Subscribe(nil)
	defer cancel()

	h.Publish(1)
	h.Publish(2)
	h.Publish(3)

	assert.Equal(t, 0, h.Len())
	got := []int{}
	for v := range ch {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
}

func TestHub_Close(t *testing.T) {
	h := New[int]()
	ch, cancel := h.Subscribe(nil)
	h.Close()

	_, ok := <-ch
	assert.False(t, ok)
	require.NotPanics(t, cancel)
}
