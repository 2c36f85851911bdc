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
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/reach/ai"
	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage"
)

// Pipeline orchestrates the capture and post-processing of contacts.
// It manages concurrent profile extraction and enrichment lookups.
type Pipeline struct {
	contactRepository storage.ContactRepository
	extractPool       *ants.Pool
	enrichPool        *ants.Pool
	extractProc       processor
	enrichProc        processor
	enricher          Enricher
	logger            *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pools
		if p.extractPool != nil {
			p.extractPool.Release()
		}
		if p.enrichPool != nil {
			p.enrichPool.Release()
		}

		// Create new pools
		extractPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		enrichPool, err := ants.NewPool(size)
		if err != nil {
			extractPool.Release()
			return err
		}

		p.extractPool = extractPool
		p.enrichPool = enrichPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithEnricher enables asynchronous enrichment lookups for captured
// contacts that carry an email address. Without it, enrichment is
// skipped entirely.
func WithEnricher(enricher Enricher) Option {
	return func(p *Pipeline) error {
		p.enricher = enricher
		return nil
	}
}

// NewPipeline creates a new capture pipeline.
func NewPipeline(
	contactRepository storage.ContactRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if contactRepository == nil {
		return nil, ErrContactRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	extractPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	enrichPool, err := ants.NewPool(poolSize)
	if err != nil {
		extractPool.Release()
		return nil, err
	}

	p := &Pipeline{
		contactRepository: contactRepository,
		extractPool:       extractPool,
		enrichPool:        enrichPool,
		logger:            slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	extractProc, err := newExtractProcessor(contactRepository, provider.ProfileExtractor(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.extractProc = extractProc

	if p.enricher != nil {
		enrichProc, err := newEnrichProcessor(contactRepository, p.enricher, p.logger)
		if err != nil {
			p.Release()
			return nil, err
		}
		p.enrichProc = enrichProc
	}

	return p, nil
}

// CaptureRequest holds the fields captured for a new contact.
type CaptureRequest struct {
	Name            string
	Email           string
	Phone           string
	Company         string
	Role            string
	Location        string
	Industry        string
	EventType       string
	MeetingLocation string
	MetDate         *time.Time
	Priority        int
	Tags            []string
	RawContext      string
}

// Capture stores a new contact and schedules profile extraction and
// enrichment asynchronously. Errors during async processing are logged
// but never fail the capture.
//
// A capture whose normalized name collides with an existing contact is
// stored anyway; duplicates are collapsed at browse time.
func (p *Pipeline) Capture(ctx context.Context, req *CaptureRequest) (*core.Contact, error) {
	contact := &core.Contact{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		Role:            req.Role,
		Location:        req.Location,
		Industry:        req.Industry,
		EventType:       req.EventType,
		MeetingLocation: req.MeetingLocation,
		MetDate:         req.MetDate,
		Priority:        req.Priority,
		Tags:            req.Tags,
		RawContext:      req.RawContext,
	}

	if err := core.ValidateContact(contact); err != nil {
		return nil, err
	}

	existing, err := p.contactRepository.GetContactsByNameKey(ctx, core.KeyFromName(contact.Name))
	if err == nil && len(existing) > 0 {
		p.logger.Warn("capturing duplicate contact name",
			"name", contact.Name, "existing", len(existing))
	}

	added, err := p.contactRepository.AddContacts(ctx, contact)
	if err != nil {
		return nil, err
	}
	contact = added[0]

	id := contact.Id
	p.extractPool.Submit(func() {
		if err := p.extractProc.process(context.Background(), id); err != nil {
			p.logger.Error("error processing profile extraction", "err", err)
		}
	})

	if p.enrichProc != nil {
		p.enrichPool.Submit(func() {
			if err := p.enrichProc.process(context.Background(), id); err != nil {
				p.logger.Error("error processing enrichment", "err", err)
			}
		})
	}

	return contact, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.extractPool != nil {
		p.extractPool.Release()
	}
	if p.enrichPool != nil {
		p.enrichPool.Release()
	}
}
