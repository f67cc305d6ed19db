package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"roster-lookup-go/roster"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps page sessions between requests.
type SessionStore interface {
	// Create starts a new idle session.
	Create(ctx context.Context) (*roster.Session, error)
	// Get returns the session or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*roster.Session, error)
	// Save stores the session state and refreshes its expiry.
	Save(ctx context.Context, s *roster.Session) error
	// Delete discards the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id string) error
}

func newSessionID() string {
	return uuid.NewString()
}
