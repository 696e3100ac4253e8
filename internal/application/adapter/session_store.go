// Package adapter defines the ports the application layer depends on.
// Implementations live under internal/integration.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/conciliador/backend/internal/domain/entity"
)

// SessionStore persists reconciliation session snapshots under an opaque
// session identifier. The core never assumes anything beyond key-value
// semantics; durability is whatever the backing store provides.
type SessionStore interface {
	// Save stores a snapshot, replacing any previous snapshot with the
	// same session ID.
	Save(ctx context.Context, snapshot *entity.SessionSnapshot) error

	// Load retrieves a snapshot by session ID. Returns
	// domainerror.ErrSessionNotFound when no snapshot exists.
	Load(ctx context.Context, id uuid.UUID) (*entity.SessionSnapshot, error)

	// Delete removes a snapshot. Deleting a missing snapshot is not an
	// error.
	Delete(ctx context.Context, id uuid.UUID) error
}
