package storage

import (
	"context"

	"github.com/mcoot/solaropoly/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, record *model.SessionRecord) error
	GetSession(ctx context.Context, id model.SessionID) (*model.SessionRecord, error)
	DeleteSession(ctx context.Context, id model.SessionID) error

	// ListSessions returns every stored session, oldest first
	ListSessions(ctx context.Context) ([]*model.SessionRecord, error)
}
