package actor

import (
	"sync"

	"github.com/gammazero/deque"
)

// Mailbox is an unbounded multi-producer, single-consumer queue.
//
// Send never blocks. Either side may Close the mailbox; after that Send
// fails with [ErrMailboxClosed] while TryRecv keeps returning whatever was
// queued before the close.
type Mailbox[T any] struct {
	mu     sync.Mutex
	items  deque.Deque[T]
	closed bool

	ready chan struct{}
	done  chan struct{}
}

// NewMailbox creates an empty, open mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Send enqueues v. It returns ErrMailboxClosed if the mailbox is closed.
func (m *Mailbox[T]) Send(v T) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMailboxClosed
	}
	m.items.PushBack(v)
	m.mu.Unlock()

	m.notify()
	return nil
}

// TryRecv dequeues the oldest item without blocking.
func (m *Mailbox[T]) TryRecv() (v T, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items.Len() == 0 {
		return v, false
	}
	return m.items.PopFront(), true
}

// Ready is signalled at least once after every Send. A receiver woken by it
// must drain with TryRecv, a single signal may cover several items.
func (m *Mailbox[T]) Ready() <-chan struct{} { return m.ready }

// Closed is closed once the mailbox is closed.
func (m *Mailbox[T]) Closed() <-chan struct{} { return m.done }

// IsClosed reports whether Close has been called.
func (m *Mailbox[T]) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Len returns the number of queued items.
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items.Len()
}

// Close rejects further sends. It is idempotent.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	close(m.done)
}

// Drain removes and returns every queued item.
func (m *Mailbox[T]) Drain() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, m.items.Len())
	for m.items.Len() > 0 {
		out = append(out, m.items.PopFront())
	}
	return out
}

func (m *Mailbox[T]) notify() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}
