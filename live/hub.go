package live

import "sync"

// Client is one WebSocket subscriber watching a single topic.
type Client struct {
	Send   chan []byte
	Topic  string
	UserID string
}

type broadcastMsg struct {
	Topic string
	Data  []byte
}

// Hub fans full snapshots out to every subscriber of a topic. A topic maps to
// one watched scope: "itinerary", "wishlist", or "chat:<uid>".
type Hub struct {
	topics     map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	stop       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		topics:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		stop:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.topics[c.Topic] == nil {
				h.topics[c.Topic] = make(map[*Client]bool)
			}
			h.topics[c.Topic][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.topics[c.Topic]; conns != nil {
				if conns[c] {
					delete(conns, c)
					close(c.Send)
				}
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.topics[m.Topic] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.topics[m.Topic], c)
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for topic, conns := range h.topics {
				for c := range conns {
					close(c.Send)
				}
				delete(h.topics, topic)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Publish hands the full current snapshot of a topic to every subscriber.
// Subscribers replace their whole local mirror with it; no diffs are sent.
func (h *Hub) Publish(topic string, data []byte) {
	h.broadcast <- broadcastMsg{Topic: topic, Data: data}
}

func (h *Hub) Stop() {
	close(h.stop)
}
