package ws

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// Event is the channel-agnostic notification envelope pushed to a user.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// UserNotifier adapts the hub to the usecase-facing send-to-user capability.
// Delivery is best-effort: marshal failures are logged and the event is
// discarded, never surfaced to the caller.
type UserNotifier struct {
	hub    *Hub
	logger *log.Logger
}

func NewUserNotifier(hub *Hub, logger *log.Logger) *UserNotifier {
	return &UserNotifier{hub: hub, logger: logger}
}

func (n *UserNotifier) SendToUser(userID uuid.UUID, eventType string, data any) {
	if n == nil || n.hub == nil {
		return
	}

	b, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		if n.logger != nil {
			n.logger.Printf("WS notify dropped | user_id=%s type=%s error=%v", userID, eventType, err)
		}
		return
	}

	n.hub.SendToUser(userID, b)
}
