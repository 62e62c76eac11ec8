package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type outbound struct {
	userID  uuid.UUID
	message []byte
}

// Hub is the in-process connection registry: user id -> live connections.
// A user may hold several connections (multiple tabs); a push goes to all
// of them. Delivery is at-most-once: if nothing is connected or a client's
// buffer is full, the message is dropped.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	send       chan outbound
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		send:       make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			conns, ok := h.clients[client.userID]
			if !ok {
				conns = make(map[*Client]struct{})
				h.clients[client.userID] = conns
			}
			conns[client] = struct{}{}
			total := len(conns)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | user_id=%s connections=%d", client.userID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
				}
				if len(conns) == 0 {
					delete(h.clients, client.userID)
				}
			}
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | user_id=%s", client.userID)
			}

		case out := <-h.send:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[out.userID]))
			for c := range h.clients[out.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- out.message:
				default:
					// A blocking push here would deadlock the loop feeding
					// the channel; if the unregister buffer is also full the
					// client is simply skipped and reaped on its next miss.
					select {
					case h.unregister <- client:
					default:
					}
				}
			}
		}
	}
}

// Stop terminates the Run loop. Connected clients are not force-closed;
// their pumps exit when the server shuts the listener down.
func (h *Hub) Stop() {
	if h == nil {
		return
	}
	close(h.done)
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// SendToUser enqueues message for every live connection of userID. It never
// blocks; when the hub buffer is full the message is dropped and logged.
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- outbound{userID: userID, message: message}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS send dropped | user_id=%s reason=buffer_full", userID)
		}
	}
}

func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
