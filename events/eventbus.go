package events

import (
	"sync"

	"github.com/Siasom1/shinde-chain/core/types"
)

const blockBuffer = 16

// EventBus fans out imported blocks to subscribers. Slow subscribers miss blocks
// instead of stalling the publisher.
type EventBus struct {
	mu        sync.RWMutex
	blockSubs []chan *types.Block
	closed    bool
}

func NewEventBus() *EventBus {
	return &EventBus{
		blockSubs: make([]chan *types.Block, 0),
	}
}

// -------------------- Blocks --------------------

// SubscribeBlocks returns a channel that is closed when the bus closes.
func (b *EventBus) SubscribeBlocks() <-chan *types.Block {
	ch := make(chan *types.Block, blockBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch
	}
	b.blockSubs = append(b.blockSubs, ch)
	return ch
}

// Unsubscribe removes and closes a subscription.
func (b *EventBus) Unsubscribe(sub <-chan *types.Block) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, ch := range b.blockSubs {
		if (<-chan *types.Block)(ch) == sub {
			b.blockSubs = append(b.blockSubs[:i], b.blockSubs[i+1:]...)
			close(ch)
			return
		}
	}
}

func (b *EventBus) PublishBlock(block *types.Block) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, ch := range b.blockSubs {
		// non-blocking send
		select {
		case ch <- block:
		default:
		}
	}
}

// Close closes every subscription. Publishing afterwards is a no-op.
func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.blockSubs {
		close(ch)
	}
	b.blockSubs = nil
}
