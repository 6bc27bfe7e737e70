// Package repository defines the user record store interface and errors.
package repository

import (
	"context"

	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
)

// Store provides read/write access to user records keyed by identity.
type Store interface {
	// Load returns the record for an identity.
	// Returns ErrNotFound if the identity is unknown.
	Load(ctx context.Context, email string) (model.UserRecord, error)

	// Save writes the record for an identity, replacing any existing one.
	Save(ctx context.Context, email string, rec model.UserRecord) error

	// ChosenPath returns the path previously committed for an identity,
	// or model.PathNone if the identity never committed one.
	ChosenPath(ctx context.Context, email string) (model.Path, error)

	// SetChosenPath commits the path for an identity.
	SetChosenPath(ctx context.Context, email string, p model.Path) error

	// Delete removes the record and chosen path for an identity.
	Delete(ctx context.Context, email string) error

	// Count returns the number of identities tracked.
	Count(ctx context.Context) int

	// Close flushes pending state and releases resources.
	Close() error
}
