package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/incluempleo/vinculo/inclusion/messaging"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case got := <-c.Send:
		return got
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for message")
		return nil
	}
}

func TestHub_Broadcast(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c1 := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	c2 := &Client{UserID: "u2", Send: make(chan []byte, 1)}
	h.Register(c1)
	h.Register(c2)

	h.Broadcast([]byte("hola"))

	if got := receive(t, c1); string(got) != "hola" {
		t.Errorf("c1 got %q", got)
	}
	if got := receive(t, c2); string(got) != "hola" {
		t.Errorf("c2 got %q", got)
	}
}

func TestHub_SendToUser(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	target1 := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	target2 := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	other := &Client{UserID: "u2", Send: make(chan []byte, 1)}
	h.Register(target1)
	h.Register(target2)
	h.Register(other)

	h.SendToUser(kernel.UserID("u1"), []byte("directo"))

	if got := receive(t, target1); string(got) != "directo" {
		t.Errorf("target1 got %q", got)
	}
	if got := receive(t, target2); string(got) != "directo" {
		t.Errorf("target2 got %q", got)
	}

	select {
	case got := <-other.Send:
		t.Errorf("other user received %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_Unregister(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	h.Register(c)
	h.Unregister(c)

	select {
	case _, open := <-c.Send:
		if open {
			t.Error("unregistered client channel should be closed")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for channel close")
	}
}

func TestHub_NotifyNewMessage(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	recipient := &Client{UserID: "cand-1", Send: make(chan []byte, 1)}
	h.Register(recipient)

	msg := &messaging.Message{
		ID:      kernel.MessageID("msg-1"),
		Content: "Hola",
	}
	h.NotifyNewMessage(kernel.UserID("cand-1"), msg)

	got := receive(t, recipient)
	var event struct {
		Event   string             `json:"event"`
		Message *messaging.Message `json:"message"`
	}
	if err := json.Unmarshal(got, &event); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if event.Event != "message.new" {
		t.Errorf("event = %s, want message.new", event.Event)
	}
	if event.Message == nil || event.Message.Content != "Hola" {
		t.Error("message content lost in the event payload")
	}
}
