package models

import "time"

// SecretMessage is a private note owned by a single user. Non-owners may
// read it only through an accepted friendship.
type SecretMessage struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
