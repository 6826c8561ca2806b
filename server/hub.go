package server

import "sync"

// hub fans dispatched decisions out to websocket subscribers. A
// subscriber that cannot keep up has records dropped rather than
// blocking the service loop.
type hub struct {
	mu          sync.Mutex
	subscribers map[chan DecisionRecord]struct{}
}

func newHub() *hub {
	return &hub{subscribers: make(map[chan DecisionRecord]struct{})}
}

func (h *hub) subscribe() chan DecisionRecord {
	ch := make(chan DecisionRecord, 16)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan DecisionRecord) {
	h.mu.Lock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *hub) broadcast(record DecisionRecord) {
	h.mu.Lock()
	for ch := range h.subscribers {
		select {
		case ch <- record:
		default:
		}
	}
	h.mu.Unlock()
}
