package ws

import (
	"encoding/json"
	"sync"

	"github.com/incluempleo/vinculo/inclusion/messaging"
	"github.com/incluempleo/vinculo/pkg/kernel"
	"github.com/incluempleo/vinculo/pkg/logx"
)

// Client is one websocket connection belonging to a user. A user may
// hold several connections at once.
type Client struct {
	UserID kernel.UserID
	Send   chan []byte
}

type unicastMsg struct {
	userID kernel.UserID
	msg    []byte
}

// Hub fans messages out to connected clients. Slow clients are dropped
// rather than blocking the loop.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	register chan *Client
	unreg    chan *Client

	sendAll chan []byte
	unicast chan unicastMsg

	stop    chan struct{}
	stopped chan struct{}
}

// NewHub creates a hub; call Run on its own goroutine
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[*Client]struct{}),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		sendAll:  make(chan []byte, 1024),
		unicast:  make(chan unicastMsg, 1024),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Run is the hub loop. It owns the client set.
func (h *Hub) Run() {
	logx.Info("Websocket hub started")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			logx.Infof("Websocket client connected: user %s (%d total)", c.UserID, total)

		case c := <-h.unreg:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logx.Infof("Websocket client disconnected: user %s (%d total)", c.UserID, total)

		case msg := <-h.sendAll:
			h.deliver(msg, nil)

		case u := <-h.unicast:
			h.deliver(u.msg, &u.userID)

		case <-h.stop:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			logx.Info("Websocket hub stopped")
			return
		}
	}
}

// deliver pushes a message to every matching client, dropping the slow
// ones so the hub never blocks
func (h *Hub) deliver(msg []byte, userID *kernel.UserID) {
	var dropped []*Client

	h.mu.RLock()
	for c := range h.clients {
		if userID != nil && c.UserID != *userID {
			continue
		}
		select {
		case c.Send <- msg:
		default:
			dropped = append(dropped, c)
		}
	}
	h.mu.RUnlock()

	if len(dropped) == 0 {
		return
	}
	h.mu.Lock()
	for _, c := range dropped {
		if _, ok := h.clients[c]; ok {
			delete(h.clients, c)
			close(c.Send)
			logx.Warnf("Websocket client dropped (slow consumer): user %s", c.UserID)
		}
	}
	h.mu.Unlock()
}

// Stop shuts the hub down and waits for the loop to exit
func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unreg <- c }

// Broadcast sends a payload to every connected client
func (h *Hub) Broadcast(b []byte) { h.sendAll <- b }

// SendToUser sends a payload to every connection of one user
func (h *Hub) SendToUser(userID kernel.UserID, b []byte) {
	h.unicast <- unicastMsg{userID: userID, msg: b}
}

// ============================================================================
// Messaging Notifier
// ============================================================================

type newMessageEvent struct {
	Event   string             `json:"event"`
	Message *messaging.Message `json:"message"`
}

// NotifyNewMessage implements messaging.Notifier by pushing the message
// to the recipient's open connections
func (h *Hub) NotifyNewMessage(recipientID kernel.UserID, message *messaging.Message) {
	payload, err := json.Marshal(newMessageEvent{
		Event:   "message.new",
		Message: message,
	})
	if err != nil {
		logx.Errorf("Failed to marshal message event: %v", err)
		return
	}
	h.SendToUser(recipientID, payload)
}
