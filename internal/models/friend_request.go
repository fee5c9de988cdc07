package models

import "time"

// FriendRequest represents a directed relationship proposal between two users.
// A row in pending state is a request awaiting the receiver's answer; a row in
// accepted state is the friendship itself. Rejection, cancellation and
// unfriending delete the row, there is no retained terminal state.
type FriendRequest struct {
	ID         string    `json:"id" db:"id"`
	SenderID   string    `json:"senderId" db:"sender_id"`
	ReceiverID string    `json:"receiverId" db:"receiver_id"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// FriendRequest status constants
const (
	FriendRequestStatusPending  = "pending"
	FriendRequestStatusAccepted = "accepted"
)

// FriendRequestWithSender includes the sender's profile for incoming lists
type FriendRequestWithSender struct {
	ID       string  `json:"id"`
	SenderID string  `json:"senderId"`
	Sender   Profile `json:"sender"`
}

// Counterpart returns the other user of the pair relative to userID.
func (r *FriendRequest) Counterpart(userID string) string {
	if r.SenderID == userID {
		return r.ReceiverID
	}
	return r.SenderID
}
