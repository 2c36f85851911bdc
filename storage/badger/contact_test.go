package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRepository_AddAndGet(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	added, err := repo.AddContacts(ctx, &core.Contact{
		Name:    "Alice Smith",
		Company: "Acme Real Estate",
		Tags:    []string{"real estate", "broker"},
	})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.NotEmpty(t, added[0].Id)
	assert.False(t, added[0].CreatedAt.IsZero())

	got, err := repo.GetContact(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got.Name)
	assert.Equal(t, "Acme Real Estate", got.Company)
	assert.Equal(t, []string{"real estate", "broker"}, got.Tags)
}

func TestContactRepository_TimestampsSurviveRoundTrip(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	added, err := repo.AddContacts(ctx, &core.Contact{Name: "Nadia Petrov"})
	require.NoError(t, err)

	got, err := repo.GetContact(ctx, added[0].Id)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(added[0].CreatedAt),
		"stored CreatedAt %v differs from returned %v", got.CreatedAt, added[0].CreatedAt)
	assert.True(t, got.UpdatedAt.Equal(added[0].UpdatedAt))

	got.Role = "Engineer"
	updated, err := repo.UpdateContact(ctx, got)
	require.NoError(t, err)

	fetched, err := repo.GetContact(ctx, updated.Id)
	require.NoError(t, err)
	assert.True(t, fetched.UpdatedAt.Equal(updated.UpdatedAt))
}

func TestContactRepository_GetMissing(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	_, err = repo.GetContact(context.Background(), "c_missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestContactRepository_ListNewestFirst(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	// Explicit creation times so ordering is deterministic
	_, err = repo.AddContacts(ctx,
		&core.Contact{Name: "Oldest", CreatedAt: now.Add(-2 * time.Hour)},
		&core.Contact{Name: "Middle", CreatedAt: now.Add(-1 * time.Hour)},
		&core.Contact{Name: "Newest", CreatedAt: now},
	)
	require.NoError(t, err)

	contacts, err := repo.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Newest", contacts[0].Name)
	assert.Equal(t, "Middle", contacts[1].Name)
	assert.Equal(t, "Oldest", contacts[2].Name)
}

func TestContactRepository_Update(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	added, err := repo.AddContacts(ctx, &core.Contact{Name: "Alice Smith"})
	require.NoError(t, err)
	contact := added[0]
	createdAt := contact.CreatedAt

	contact.Company = "Acme"
	contact.Priority = 80
	updated, err := repo.UpdateContact(ctx, contact)
	require.NoError(t, err)
	assert.Equal(t, createdAt, updated.CreatedAt)

	got, err := repo.GetContact(ctx, contact.Id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, 80, got.Priority)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestContactRepository_UpdateMissing(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	_, err = repo.UpdateContact(context.Background(), &core.Contact{Id: "c_missing", Name: "Ghost"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestContactRepository_Delete(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	added, err := repo.AddContacts(ctx, &core.Contact{Name: "Alice Smith"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteContacts(ctx, added[0].Id))

	_, err = repo.GetContact(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	contacts, err := repo.ListContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	assert.ErrorIs(t, repo.DeleteContacts(ctx, added[0].Id), storage.ErrNotFound)
}

func TestContactRepository_GetContactsByNameKey(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = repo.AddContacts(ctx,
		&core.Contact{Name: "Jane Doe", Company: "X"},
		&core.Contact{Name: "  jane doe "}, // same person, sloppier capture
		&core.Contact{Name: "John Doe"},
	)
	require.NoError(t, err)

	dupes, err := repo.GetContactsByNameKey(ctx, core.KeyFromName("Jane Doe"))
	require.NoError(t, err)
	assert.Len(t, dupes, 2)

	none, err := repo.GetContactsByNameKey(ctx, core.KeyFromName("Nobody"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestContactRepository_UpdateMovesNameIndex(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	added, err := repo.AddContacts(ctx, &core.Contact{Name: "Jane Doe"})
	require.NoError(t, err)
	contact := added[0]

	contact.Name = "Jane Doe-Smith"
	_, err = repo.UpdateContact(ctx, contact)
	require.NoError(t, err)

	old, err := repo.GetContactsByNameKey(ctx, core.KeyFromName("Jane Doe"))
	require.NoError(t, err)
	assert.Empty(t, old)

	renamed, err := repo.GetContactsByNameKey(ctx, core.KeyFromName("Jane Doe-Smith"))
	require.NoError(t, err)
	assert.Len(t, renamed, 1)
}
