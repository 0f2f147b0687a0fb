package service

import (
	"encoding/json"
	"sync"
	"time"
)

// PushType represents the type of pushed event
type PushType string

const (
	// PushNotification carries a freshly appended notification
	PushNotification PushType = "notification"

	// PushHeartbeat keeps idle connections alive
	PushHeartbeat PushType = "heartbeat"
)

// PushEvent represents a server-sent event delivered to a user's sessions
type PushEvent struct {
	Type PushType    `json:"type"`
	Data interface{} `json:"data"`
}

// Format returns the SSE formatted string
func (e *PushEvent) Format() string {
	data, _ := json.Marshal(e.Data)
	return "event: " + string(e.Type) + "\ndata: " + string(data) + "\n\n"
}

// Subscriber represents a connected SSE client
type Subscriber struct {
	ID     string
	UserID string
	Events chan *PushEvent
	Done   chan struct{}
}

// PushHub manages per-user SSE subscriptions and best-effort delivery.
// Sends never block: a subscriber with a full buffer is skipped.
type PushHub struct {
	mu          sync.RWMutex
	subscribers map[string]map[string]*Subscriber // userID -> subscriberID -> subscriber
	heartbeat   *time.Ticker
	done        chan struct{}
}

// NewPushHub creates a new push hub
func NewPushHub() *PushHub {
	hub := &PushHub{
		subscribers: make(map[string]map[string]*Subscriber),
		done:        make(chan struct{}),
	}
	// Start heartbeat
	hub.heartbeat = time.NewTicker(30 * time.Second)
	go hub.sendHeartbeats()
	return hub
}

// Subscribe adds a new subscriber for a user
func (h *PushHub) Subscribe(userID, subscriberID string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscriber{
		ID:     subscriberID,
		UserID: userID,
		Events: make(chan *PushEvent, 100), // Buffer to prevent blocking
		Done:   make(chan struct{}),
	}

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[string]*Subscriber)
	}
	h.subscribers[userID][subscriberID] = sub

	return sub
}

// Unsubscribe removes a subscriber
func (h *PushHub) Unsubscribe(userID, subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if userSubs, ok := h.subscribers[userID]; ok {
		if sub, ok := userSubs[subscriberID]; ok {
			close(sub.Done)
			close(sub.Events)
			delete(userSubs, subscriberID)
		}
		if len(userSubs) == 0 {
			delete(h.subscribers, userID)
		}
	}
}

// SendToUser delivers an event to all of a user's subscribers
func (h *PushHub) SendToUser(userID string, event *PushEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userSubs, ok := h.subscribers[userID]
	if !ok {
		return
	}

	for _, sub := range userSubs {
		select {
		case sub.Events <- event:
			// Event sent successfully
		default:
			// Buffer full, skip this subscriber
		}
	}
}

// sendHeartbeats sends periodic heartbeats to all subscribers
func (h *PushHub) sendHeartbeats() {
	for {
		select {
		case <-h.heartbeat.C:
			event := &PushEvent{
				Type: PushHeartbeat,
				Data: map[string]string{
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				},
			}
			h.mu.RLock()
			for _, userSubs := range h.subscribers {
				for _, sub := range userSubs {
					select {
					case sub.Events <- event:
					default:
					}
				}
			}
			h.mu.RUnlock()
		case <-h.done:
			return
		}
	}
}

// Close stops the push hub
func (h *PushHub) Close() {
	close(h.done)
	h.heartbeat.Stop()

	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, userSubs := range h.subscribers {
		for _, sub := range userSubs {
			close(sub.Done)
			close(sub.Events)
		}
		delete(h.subscribers, userID)
	}
}

// SubscriberCount returns the number of subscribers for a user
func (h *PushHub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if userSubs, ok := h.subscribers[userID]; ok {
		return len(userSubs)
	}
	return 0
}
