package assignment

import (
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

// Feed fans values out to any number of subscribers without blocking the sender.
//
// Each subscriber owns a buffered channel. A value that does not fit in a
// subscriber's buffer is dropped for that subscriber and reported through the
// onDrop callback.
type Feed[T any] struct {
	buffer int
	onDrop func()

	subscribers      *xsync.Map[uint64, *subscriber[T]]
	nextSubscriberID atomic.Uint64
}

// NewFeed creates a feed whose subscriber channels hold buffer values.
//
// Parameters:
//   - buffer: Channel capacity per subscriber (minimum 1)
//   - onDrop: Called once per value dropped for a slow subscriber; may be nil
func NewFeed[T any](buffer int, onDrop func()) *Feed[T] {
	if onDrop == nil {
		onDrop = func() {}
	}

	return &Feed[T]{
		buffer:      max(buffer, 1),
		onDrop:      onDrop,
		subscribers: xsync.NewMap[uint64, *subscriber[T]](),
	}
}

// Subscribe registers a new subscriber.
//
// Returns:
//   - <-chan T: Channel receiving published values
//   - func(): Unsubscribe function; closes the channel and is safe to call twice
func (f *Feed[T]) Subscribe() (<-chan T, func()) {
	id := f.nextSubscriberID.Add(1)
	sub := &subscriber[T]{ch: make(chan T, f.buffer)}
	f.subscribers.Store(id, sub)

	return sub.ch, func() { f.remove(id) }
}

// SubscribeWith registers a new subscriber whose channel already holds initial.
func (f *Feed[T]) SubscribeWith(initial T) (<-chan T, func()) {
	id := f.nextSubscriberID.Add(1)
	sub := &subscriber[T]{ch: make(chan T, f.buffer)}
	sub.ch <- initial
	f.subscribers.Store(id, sub)

	return sub.ch, func() { f.remove(id) }
}

// Publish delivers v to every subscriber.
func (f *Feed[T]) Publish(v T) {
	f.subscribers.Range(func(_ uint64, sub *subscriber[T]) bool {
		if !sub.trySend(v) {
			f.onDrop()
		}

		return true
	})
}

// Len returns the number of active subscribers.
func (f *Feed[T]) Len() int {
	return f.subscribers.Size()
}

// Close unsubscribes everyone and closes their channels.
func (f *Feed[T]) Close() {
	f.subscribers.Range(func(id uint64, _ *subscriber[T]) bool {
		f.remove(id)
		return true
	})
}

func (f *Feed[T]) remove(id uint64) {
	if sub, ok := f.subscribers.LoadAndDelete(id); ok {
		sub.close()
	}
}

type subscriber[T any] struct {
	ch     chan T
	mu     sync.Mutex
	closed bool
}

// trySend reports false only when the value was dropped because the buffer was full.
func (s *subscriber[T]) trySend(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}

	select {
	case s.ch <- v:
		return true
	default:
		return false
	}
}

func (s *subscriber[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
