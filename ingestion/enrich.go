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


package ingestion

import (
	"context"
	"log/slog"

	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage"
)

// Enricher looks up public profile data for an email address.
// Implemented by enrich.Client; mocked in tests.
type Enricher interface {
	Lookup(ctx context.Context, email string) (*core.Enrichment, error)
}

// enrichProcessor attaches external enrichment data to contacts that
// have an email address and no enrichment yet.
type enrichProcessor struct {
	contactRepository storage.ContactRepository
	enricher          Enricher
	logger            *slog.Logger
}

var _ processor = (*enrichProcessor)(nil)

func newEnrichProcessor(
	contactRepository storage.ContactRepository,
	enricher Enricher,
	logger *slog.Logger,
) (*enrichProcessor, error) {
	if contactRepository == nil {
		return nil, ErrContactRepositoryRequired
	}
	return &enrichProcessor{
		contactRepository: contactRepository,
		enricher:          enricher,
		logger:            logger.With("component", "enrich-processor"),
	}, nil
}

func (e *enrichProcessor) process(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		contact, err := e.contactRepository.GetContact(ctx, id)
		if err != nil {
			e.logger.Warn("contact disappeared before enrichment", "id", id, "err", err)
			continue
		}

		if contact.Email == "" || contact.Enrichment != nil {
			continue
		}

		enrichment, err := e.enricher.Lookup(ctx, contact.Email)
		if err != nil {
			e.logger.Warn("enrichment lookup failed", "id", id, "err", err)
			continue
		}
		if enrichment == nil {
			continue
		}

		contact.Enrichment = enrichment
		if _, err := e.contactRepository.UpdateContact(ctx, contact); err != nil {
			e.logger.Error("error saving enrichment", "id", id, "err", err)
		}
	}
	return nil
}
