package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestHubRegisterAndSend(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.Register(client)

	waitFor(t, func() bool { return hub.ConnectionCount(userID) == 1 })

	hub.SendToUser(userID, []byte(`{"type":"ping"}`))

	select {
	case msg := <-client.send:
		if string(msg) != `{"type":"ping"}` {
			t.Fatalf("message = %s", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHubSendToUnknownUserIsDropped(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	// Must not block or panic with nobody connected.
	hub.SendToUser(uuid.New(), []byte("hello"))
}

func TestHubMultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	first := NewClient(hub, nil, userID)
	second := NewClient(hub, nil, userID)
	hub.Register(first)
	hub.Register(second)

	waitFor(t, func() bool { return hub.ConnectionCount(userID) == 2 })

	hub.SendToUser(userID, []byte("fanout"))

	for _, c := range []*Client{first, second} {
		select {
		case msg := <-c.send:
			if string(msg) != "fanout" {
				t.Fatalf("message = %s", msg)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("connection missed fanout")
		}
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ConnectionCount(userID) == 1 })

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ConnectionCount(userID) == 0 })

	if _, open := <-client.send; open {
		t.Fatal("send channel still open after unregister")
	}
}

func TestHubFullClientBufferDoesNotStallLoop(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	stuck := NewClient(hub, nil, userID)
	hub.Register(stuck)
	waitFor(t, func() bool { return hub.ConnectionCount(userID) == 1 })

	// Nobody drains stuck.send, so cap(send)+1 deliveries overflow its buffer
	// and the overflow path runs while the loop keeps serving other work.
	for i := 0; i < cap(stuck.send)+16; i++ {
		hub.SendToUser(userID, []byte("backlog"))
	}

	other := uuid.New()
	healthy := NewClient(hub, nil, other)
	hub.Register(healthy)
	waitFor(t, func() bool { return hub.ConnectionCount(other) == 1 })

	hub.SendToUser(other, []byte("still alive"))
	select {
	case msg := <-healthy.send:
		if string(msg) != "still alive" {
			t.Fatalf("message = %s", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub loop stalled after client buffer overflow")
	}

	waitFor(t, func() bool { return hub.ConnectionCount(userID) == 0 })
}

func TestUserNotifierEnvelope(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ConnectionCount(userID) == 1 })

	notifier := NewUserNotifier(hub, nil)
	notifier.SendToUser(userID, "swap_status_update", map[string]string{"status": "accepted"})

	select {
	case raw := <-client.send:
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Type != "swap_status_update" {
			t.Fatalf("type = %s", ev.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestUserNotifierUnmarshalableDataIsDropped(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	notifier := NewUserNotifier(hub, nil)
	notifier.SendToUser(uuid.New(), "new_swap_request", func() {})
}
