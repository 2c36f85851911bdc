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
	"fmt"
	"io"
	"time"

	"github.com/poiesic/reach/ai"
	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage"
)

// Config holds configuration for the retagging operation.
type Config struct {
	// BatchSize is the number of contacts to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of contacts)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      50,
		ReportInterval: 50,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Retagger orchestrates the retagging of all contacts in a database.
type Retagger struct {
	repo      storage.ContactRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *ContactIterator
}

// NewRetagger creates a new retagger.
// progress: where to write progress output (typically os.Stderr)
func NewRetagger(repo storage.ContactRepository, extractor ai.ProfileExtractor, config *Config, progress io.Writer) *Retagger {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, extractor, config.MaxRetries, config.RetryDelay)
	iterator := NewContactIterator(repo, config.BatchSize)

	return &Retagger{
		repo:      repo,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
	}
}

// Run executes the retagging operation.
// Every contact with captured context gets its tags regenerated with
// the configured extractor. Progress is reported to the configured writer.
func (r *Retagger) Run(ctx context.Context) error {
	allContacts, err := r.repo.ListContacts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	total := len(allContacts)
	if total == 0 {
		fmt.Fprintf(r.progress, "No contacts found in database (0 contacts)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting retagging of %d contacts (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	retagged := 0

	err = r.iterator.ForEach(ctx, func(contacts []*core.Contact) error {
		n, err := r.processor.Process(ctx, contacts)
		retagged += n
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(contacts)
		tracker.Update(processed)
		return nil
	})

	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Retagging complete. Retagged %d of %d contacts in %v (%.1f contacts/sec)\n",
		retagged, total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
