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


package reach

import (
	"io"
	"log/slog"

	"github.com/poiesic/reach/ai"
	"github.com/poiesic/reach/ai/openai"
	"github.com/poiesic/reach/enrich"
	"github.com/poiesic/reach/ingestion"
	"github.com/poiesic/reach/retag"
	"github.com/poiesic/reach/search"
	"github.com/poiesic/reach/storage"
	"github.com/poiesic/reach/storage/badger"
)

// Database bundles the contact store and the AI provider and hands out
// the pipelines built on them. It is the main entry point for
// embedding the contact subsystem in a host application.
type Database struct {
	backend     *badger.Backend
	contactRepo storage.ContactRepository
	provider    ai.AIProvider
	enricher    ingestion.Enricher
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig     *ai.Config
	enrichAPIKey string
}

// WithAIConfig overrides the default AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithEnrichAPIKey enables contact enrichment lookups using the given
// provider API key. Without it captured contacts are never enriched.
func WithEnrichAPIKey(apiKey string) DatabaseOption {
	return func(o *databaseOptions) {
		o.enrichAPIKey = apiKey
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create contact repository
	contactRepo, err := badger.NewContactRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		backend.Close()
		return nil, err
	}

	db := &Database{
		backend:     backend,
		contactRepo: contactRepo,
		provider:    provider,
		logger:      slog.Default(),
	}

	if options.enrichAPIKey != "" {
		enricher, err := enrich.NewClient(options.enrichAPIKey)
		if err != nil {
			provider.Close()
			backend.Close()
			return nil, err
		}
		db.enricher = enricher
	}

	return db, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ContactRepository() storage.ContactRepository {
	return db.contactRepo
}

func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

func (db *Database) NewSearchPipeline(opts ...search.Option) (*search.Pipeline, error) {
	return search.NewPipeline(db.contactRepo, db.provider, opts...)
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	if db.enricher != nil {
		opts = append([]ingestion.Option{ingestion.WithEnricher(db.enricher)}, opts...)
	}
	return ingestion.NewPipeline(db.contactRepo, db.provider, opts...)
}

func (db *Database) NewRetagger(config *retag.Config, progress io.Writer) *retag.Retagger {
	return retag.NewRetagger(db.contactRepo, db.provider.ProfileExtractor(), config, progress)
}
