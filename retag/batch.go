package retag

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/reach/ai"
	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage"
)

// BatchProcessor regenerates tags for batches of contacts.
type BatchProcessor struct {
	repo           storage.ContactRepository
	extractor      ai.ProfileExtractor
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for extraction API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.ContactRepository, extractor ai.ProfileExtractor, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		extractor:      extractor,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process regenerates tags for a batch of contacts and updates them in
// the database. Contacts without captured context keep their tags as-is.
// Returns the number of contacts actually retagged.
func (bp *BatchProcessor) Process(ctx context.Context, contacts []*core.Contact) (int, error) {
	retagged := 0

	for _, contact := range contacts {
		if contact.RawContext == "" {
			continue
		}

		var profile *ai.ExtractedProfile
		err := RetryWithBackoff(ctx, func() error {
			var err error
			profile, err = bp.extractor.ExtractProfile(ctx, contact.RawContext, "")
			return err
		}, bp.maxRetries, bp.retryBaseDelay)

		if err != nil {
			return retagged, fmt.Errorf("failed to extract tags for %s after %d attempts: %w",
				contact.Id, bp.maxRetries, err)
		}

		contact.Tags = profile.Tags
		if _, err := bp.repo.UpdateContact(ctx, contact); err != nil {
			return retagged, fmt.Errorf("failed to update contact %s: %w", contact.Id, err)
		}
		retagged++
	}

	return retagged, nil
}
