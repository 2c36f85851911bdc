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
	"strings"

	"github.com/poiesic/reach/ai"
	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage"
)

// extractProcessor fills in contact fields and tags from the captured
// free-text context using the profile extractor.
type extractProcessor struct {
	contactRepository storage.ContactRepository
	extractor         ai.ProfileExtractor
	logger            *slog.Logger
}

var _ processor = (*extractProcessor)(nil)

func newExtractProcessor(
	contactRepository storage.ContactRepository,
	extractor ai.ProfileExtractor,
	logger *slog.Logger,
) (*extractProcessor, error) {
	if contactRepository == nil {
		return nil, ErrContactRepositoryRequired
	}
	if extractor == nil {
		return nil, ErrAIProviderRequired
	}
	return &extractProcessor{
		contactRepository: contactRepository,
		extractor:         extractor,
		logger:            logger.With("component", "extract-processor"),
	}, nil
}

// process extracts a profile for each contact and merges it into the
// stored record. Only empty fields are filled; the extractor never
// overwrites what the user typed. Tags are unioned.
func (x *extractProcessor) process(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		contact, err := x.contactRepository.GetContact(ctx, id)
		if err != nil {
			x.logger.Warn("contact disappeared before extraction", "id", id, "err", err)
			continue
		}

		if contact.RawContext == "" {
			continue
		}

		profile, err := x.extractor.ExtractProfile(ctx, contact.RawContext, "")
		if err != nil {
			x.logger.Error("profile extraction failed", "id", id, "err", err)
			continue
		}

		mergeProfile(contact, profile)

		if _, err := x.contactRepository.UpdateContact(ctx, contact); err != nil {
			x.logger.Error("error saving extracted profile", "id", id, "err", err)
			continue
		}
		x.logger.Debug("profile merged", "id", id, "tags", len(contact.Tags))
	}
	return nil
}

// mergeProfile fills empty contact fields from the extracted profile
// and unions tags, keeping contact tags first.
func mergeProfile(contact *core.Contact, profile *ai.ExtractedProfile) {
	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = strings.TrimSpace(src)
		}
	}
	fill(&contact.Email, profile.Email)
	fill(&contact.Phone, profile.Phone)
	fill(&contact.Company, profile.Company)
	fill(&contact.Role, profile.Role)
	fill(&contact.Location, profile.Location)
	fill(&contact.Industry, profile.Industry)
	fill(&contact.EventType, profile.EventType)

	seen := make(map[string]bool, len(contact.Tags))
	for _, tag := range contact.Tags {
		seen[strings.ToLower(tag)] = true
	}
	for _, tag := range profile.Tags {
		if !seen[strings.ToLower(tag)] {
			seen[strings.ToLower(tag)] = true
			contact.Tags = append(contact.Tags, tag)
		}
	}
}
