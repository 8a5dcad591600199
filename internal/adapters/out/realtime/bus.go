// Package realtime fans committed status changes out to live subscribers.
// It backs the SSE stream endpoint: one subscription per connected client,
// keyed by order.
package realtime

import (
	"sync"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/ports"
)

// defaultBufferSize is the per-subscriber delta buffer. Slow consumers lose
// the oldest delta first; the terminal state always gets through because the
// latest delta is never dropped in favor of an older one.
const defaultBufferSize = 16

type subscriber struct {
	ch chan ports.StatusChange
}

// Bus is an in-process implementation of ports.OrderStream.
//
// Publish never blocks: a subscriber whose buffer is full has its oldest
// buffered delta dropped to make room. Deltas for one order are delivered in
// publish order because publishers already serialize per order.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]map[uint64]*subscriber
	nextID      uint64
	bufferSize  int
}

// NewBus creates a bus with the default per-subscriber buffer.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[string]map[uint64]*subscriber),
		bufferSize:  defaultBufferSize,
	}
}

// Publish delivers a change to every subscriber of the order.
func (b *Bus) Publish(change ports.StatusChange) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers[change.OrderID.String()] {
		select {
		case sub.ch <- change:
		default:
			// Buffer full: drop the oldest delta, then retry once. The
			// second send can only fail if a concurrent publisher refilled
			// the slot, in which case the newer delta is already there.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- change:
			default:
			}
		}
	}
}

// Subscribe registers a subscriber for the order's changes. The returned
// cancel func unregisters the subscriber and closes the channel; it is safe
// to call more than once.
func (b *Bus) Subscribe(orderID kernel.UUID) (<-chan ports.StatusChange, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := orderID.String()
	if b.subscribers[key] == nil {
		b.subscribers[key] = make(map[uint64]*subscriber)
	}

	id := b.nextID
	b.nextID++

	sub := &subscriber{ch: make(chan ports.StatusChange, b.bufferSize)}
	b.subscribers[key][id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			delete(b.subscribers[key], id)
			if len(b.subscribers[key]) == 0 {
				delete(b.subscribers, key)
			}
			close(sub.ch)
		})
	}

	return sub.ch, cancel
}
