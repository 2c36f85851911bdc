package storage

import (
	"context"

	"github.com/poiesic/reach/core"
)

// ContactRepository provides operations for managing contact records.
// Implementations must be thread-safe and support concurrent readers;
// writes are serialized per record by the backend's own transaction
// discipline. The search core treats this repository as read-only.
type ContactRepository interface {
	// ListContacts returns every stored contact, newest first
	// (descending by creation time). This is the full-scan read the
	// search paths operate on.
	ListContacts(ctx context.Context) ([]*core.Contact, error)

	// GetContact retrieves a single contact by ID.
	// Returns ErrNotFound if the contact doesn't exist.
	GetContact(ctx context.Context, id string) (*core.Contact, error)

	// AddContacts adds one or more contacts to storage. Contacts with
	// an empty Id get a fresh one; CreatedAt and UpdatedAt are set.
	// Returns the contacts with IDs and timestamps populated.
	AddContacts(ctx context.Context, contacts ...*core.Contact) ([]*core.Contact, error)

	// UpdateContact replaces a stored contact in place. Id and
	// CreatedAt are preserved from the stored record; UpdatedAt is
	// refreshed. Returns ErrNotFound if the contact doesn't exist.
	UpdateContact(ctx context.Context, contact *core.Contact) (*core.Contact, error)

	// DeleteContacts removes contacts by their IDs, along with
	// associated indices. Returns ErrNotFound if any doesn't exist.
	DeleteContacts(ctx context.Context, ids ...string) error

	// GetContactsByNameKey retrieves contacts whose normalized name
	// hashes to the given key (core.KeyFromName). Used to flag likely
	// duplicate captures; returns an empty slice when there are none.
	GetContactsByNameKey(ctx context.Context, key uint64) ([]*core.Contact, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
