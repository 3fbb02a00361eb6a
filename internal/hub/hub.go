package hub

import (
	"sync"

	"github.com/sirupsen/logrus"

	"go-trivia-watcher/internal/logger"
	"go-trivia-watcher/pkg/models"
)

// Subscription is one client's outbound queue. The connection handler owns
// the receive side; the hub owns registration.
type Subscription struct {
	C chan models.Result
}

// Hub fans completed results out to every registered subscription. Publish
// is called from the frame processor goroutine while register/unregister
// run on connection goroutines, so the subscriber set is mutex-guarded and
// a publish iterates over a snapshot taken at call time.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
}

func New(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Register creates a subscription and adds it to the set.
func (h *Hub) Register() *Subscription {
	sub := &Subscription{C: make(chan models.Result, h.buffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unregister removes a subscription. Unknown subscriptions are a no-op, so
// every connection exit path may call it unconditionally.
func (h *Hub) Unregister(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

// Publish enqueues the result onto every subscription registered at call
// time. The enqueue never blocks: a subscriber whose queue is full misses
// the result and a warning is logged. Publish never removes subscribers.
func (h *Hub) Publish(result models.Result) {
	h.mu.RLock()
	snapshot := make([]*Subscription, 0, len(h.subs))
	for sub := range h.subs {
		snapshot = append(snapshot, sub)
	}
	h.mu.RUnlock()

	for _, sub := range snapshot {
		select {
		case sub.C <- result:
		default:
			logger.WithFields(logrus.Fields{
				"question": result.Question,
			}).Warn("Subscriber queue full, dropping result")
		}
	}
}

// Count reports the number of registered subscriptions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
