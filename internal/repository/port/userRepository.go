package repository

import "context"

// UserDisplay carries the public fields used to annotate conversations and
// messages. The full user record belongs to the auth subsystem.
type UserDisplay struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// UserRepository resolves user display data for chat annotation.
type UserRepository interface {
	// FindDisplay returns (nil, nil) when the user does not exist.
	FindDisplay(ctx context.Context, userID int64) (*UserDisplay, error)
}
