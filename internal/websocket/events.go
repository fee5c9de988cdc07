package websocket

import "time"

// EventType represents different notification event types
type EventType string

const (
	EventFriendRequestReceived EventType = "friend_request_received"
	EventFriendRequestAccepted EventType = "friend_request_accepted"
	EventFriendRequestRejected EventType = "friend_request_rejected"
	EventFriendRemoved         EventType = "friend_removed"
)

// Notification is the message pushed to connected clients
type Notification struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// FriendEventPayload carries the counterpart of a friend-state change
type FriendEventPayload struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// NewFriendEvent builds a notification about a friend-state change involving
// the given user.
func NewFriendEvent(event EventType, userID, firstName, lastName string) Notification {
	return Notification{
		Type: event,
		Payload: FriendEventPayload{
			UserID:    userID,
			FirstName: firstName,
			LastName:  lastName,
		},
		Timestamp: time.Now(),
	}
}
