// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package retag

import (
	"context"

	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage"
)

const (
	// DefaultBatchSize is the default number of contacts to process in each batch
	DefaultBatchSize = 50
)

// ContactIterator iterates over all contacts in batches.
type ContactIterator struct {
	repo      storage.ContactRepository
	batchSize int
}

// NewContactIterator creates a new contact iterator.
// batchSize: number of contacts to process in each batch (must be > 0)
func NewContactIterator(repo storage.ContactRepository, batchSize int) *ContactIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ContactIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all contacts, calling fn for each batch.
// Iteration stops on first error from fn or when all contacts are processed.
// Context cancellation is checked between batches.
func (it *ContactIterator) ForEach(ctx context.Context, fn func([]*core.Contact) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	contacts, err := it.repo.ListContacts(ctx)
	if err != nil {
		return err
	}

	if len(contacts) == 0 {
		return nil
	}

	for i := 0; i < len(contacts); i += it.batchSize {
		end := i + it.batchSize
		if end > len(contacts) {
			end = len(contacts)
		}

		if err := fn(contacts[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
