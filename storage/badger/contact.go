package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage"
)

// ContactRepository implements storage.ContactRepository for BadgerDB.
type ContactRepository struct {
	backend *Backend
}

var _ storage.ContactRepository = (*ContactRepository)(nil)

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(backend *Backend) (*ContactRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &ContactRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *ContactRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ContactRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddContacts adds one or more contacts to storage.
func (r *ContactRepository) AddContacts(ctx context.Context, contacts ...*core.Contact) ([]*core.Contact, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, contact := range contacts {
			if contact.Id == "" {
				contact.Id = core.NewContactID()
			}
			// The codec persists microsecond precision; stamp at the
			// same precision so returned and stored records agree.
			if contact.CreatedAt.IsZero() {
				contact.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
			}
			contact.UpdatedAt = contact.CreatedAt

			// Store primary record
			key := makeContactKey(contact.Id)
			value := storage.MarshalContact(contact)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update creation-time index
			createdKey := makeContactCreatedKey(contact.CreatedAt, contact.Id)
			if err := tx.Set(createdKey, []byte(contact.Id)); err != nil {
				return err
			}

			// Update name index
			nameKey := makeContactNameKey(core.KeyFromName(contact.Name), contact.Id)
			if err := tx.Set(nameKey, []byte(contact.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return contacts, err
}

// UpdateContact replaces a stored contact in place.
func (r *ContactRepository) UpdateContact(ctx context.Context, contact *core.Contact) (*core.Contact, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeContactKey(contact.Id)

		// Read old record to detect index changes
		old, err := r.readContact(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		// Id and CreatedAt are immutable
		contact.Id = old.Id
		contact.CreatedAt = old.CreatedAt
		contact.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

		value := storage.MarshalContact(contact)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update name index if the normalized name changed
		oldNameKey := core.KeyFromName(old.Name)
		newNameKey := core.KeyFromName(contact.Name)
		if oldNameKey != newNameKey {
			if err := tx.Delete(makeContactNameKey(oldNameKey, contact.Id)); err != nil {
				return err
			}
			if err := tx.Set(makeContactNameKey(newNameKey, contact.Id), []byte(contact.Id)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContacts removes contacts by their IDs, along with indices.
func (r *ContactRepository) DeleteContacts(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeContactKey(id)

			contact, err := r.readContact(tx, key)
			if err != nil {
				return err
			}
			if contact == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
			if err := tx.Delete(makeContactCreatedKey(contact.CreatedAt, id)); err != nil {
				return err
			}
			if err := tx.Delete(makeContactNameKey(core.KeyFromName(contact.Name), id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetContact retrieves a single contact by ID.
func (r *ContactRepository) GetContact(ctx context.Context, id string) (*core.Contact, error) {
	var contact *core.Contact

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		c, err := r.readContact(tx, makeContactKey(id))
		if err != nil {
			return err
		}
		if c == nil {
			return storage.ErrNotFound
		}
		contact = c
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return contact, nil
}

// ListContacts returns every stored contact, newest first.
func (r *ContactRepository) ListContacts(ctx context.Context) ([]*core.Contact, error) {
	var contacts []*core.Contact

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// The creation-time index stores inverted timestamps, so plain
		// lexicographic iteration is already newest-first.
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(contactCreatedPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id string
			err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			contact, err := r.readContact(tx, makeContactKey(id))
			if err != nil {
				return err
			}
			if contact != nil {
				contacts = append(contacts, contact)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetContactsByNameKey retrieves contacts whose normalized name hashes
// to the given key.
func (r *ContactRepository) GetContactsByNameKey(ctx context.Context, nameKey uint64) ([]*core.Contact, error) {
	contacts := []*core.Contact{}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialContactNameKey(nameKey)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id string
			err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			contact, err := r.readContact(tx, makeContactKey(id))
			if err != nil {
				return err
			}
			if contact != nil {
				contacts = append(contacts, contact)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// readContact reads and deserializes a contact within a transaction.
// Returns nil (no error) when the key does not exist.
func (r *ContactRepository) readContact(tx *badger.Txn, key []byte) (*core.Contact, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var contact *core.Contact
	err = item.Value(func(val []byte) error {
		c, err := storage.UnmarshalContact(val)
		if err != nil {
			return err
		}
		contact = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}
