package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/reach/ai"
	"github.com/poiesic/reach/ai/mock"
	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnricher implements Enricher for testing.
type testEnricher struct {
	enrichment  *core.Enrichment
	shouldError bool
	calls       int
}

func (e *testEnricher) Lookup(ctx context.Context, email string) (*core.Enrichment, error) {
	e.calls++
	if e.shouldError {
		return nil, errors.New("enricher error")
	}
	return e.enrichment, nil
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached before timeout")
}

func TestNewPipeline(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		p, err := NewPipeline(repo, provider)
		require.NoError(t, err)
		defer p.Release()
		assert.NotNil(t, p)
	})

	t.Run("with pool size", func(t *testing.T) {
		p, err := NewPipeline(repo, provider, WithPoolSize(2))
		require.NoError(t, err)
		defer p.Release()
		assert.NotNil(t, p)
	})

	t.Run("nil contact repository", func(t *testing.T) {
		_, err := NewPipeline(nil, provider)
		assert.Equal(t, ErrContactRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(repo, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestCapture_StoresContact(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	p, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	defer p.Release()

	contact, err := p.Capture(context.Background(), &CaptureRequest{
		Name:     "Ana Silva",
		Company:  "Acme",
		Priority: 70,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, contact.Id)

	stored, err := repo.GetContact(context.Background(), contact.Id)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", stored.Name)
	assert.Equal(t, "Acme", stored.Company)
}

func TestCapture_RejectsInvalidContact(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	p, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	defer p.Release()

	_, err = p.Capture(context.Background(), &CaptureRequest{Name: "  "})
	assert.ErrorIs(t, err, core.ErrEmptyName)

	_, err = p.Capture(context.Background(), &CaptureRequest{Name: "Bo", Priority: 101})
	assert.ErrorIs(t, err, core.ErrPriorityRange)
}

func TestCapture_ExtractsProfileAsynchronously(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	extractor := mock.NewMockProfileExtractor()
	extractor.ExtractProfileFunc = func(ctx context.Context, captureContext, cardText string) (*ai.ExtractedProfile, error) {
		return &ai.ExtractedProfile{
			Company:  "Beacon Robotics",
			Industry: "Robotics",
			Tags:     []string{"robotics", "hardware"},
		}, nil
	}
	provider := mock.NewMockProviderWithServices(
		mock.NewMockIntentParser(), mock.NewMockExplainer(), extractor)

	p, err := NewPipeline(repo, provider)
	require.NoError(t, err)
	defer p.Release()

	contact, err := p.Capture(context.Background(), &CaptureRequest{
		Name:       "Ben Okafor",
		Company:    "Typed Corp", // already set, must not be overwritten
		Tags:       []string{"robotics"},
		RawContext: "met at a robotics meetup, builds warehouse arms",
	})
	require.NoError(t, err)

	waitFor(t, 2*time.Second, func() bool {
		stored, err := repo.GetContact(context.Background(), contact.Id)
		return err == nil && stored.Industry == "Robotics"
	})

	stored, err := repo.GetContact(context.Background(), contact.Id)
	require.NoError(t, err)
	assert.Equal(t, "Typed Corp", stored.Company)
	assert.Equal(t, []string{"robotics", "hardware"}, stored.Tags)
}

func TestCapture_SkipsExtractionWithoutContext(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	extractor := mock.NewMockProfileExtractor()
	provider := mock.NewMockProviderWithServices(
		mock.NewMockIntentParser(), mock.NewMockExplainer(), extractor)

	p, err := NewPipeline(repo, provider)
	require.NoError(t, err)
	defer p.Release()

	_, err = p.Capture(context.Background(), &CaptureRequest{Name: "Cara"})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, extractor.CallCount())
}

func TestCapture_EnrichesByEmail(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	enricher := &testEnricher{
		enrichment: &core.Enrichment{Bio: "Investor", EmployerName: "Nexus"},
	}

	p, err := NewPipeline(repo, mock.NewMockProvider(), WithEnricher(enricher))
	require.NoError(t, err)
	defer p.Release()

	contact, err := p.Capture(context.Background(), &CaptureRequest{
		Name:  "Dana Voss",
		Email: "dana@nexus.vc",
	})
	require.NoError(t, err)

	waitFor(t, 2*time.Second, func() bool {
		stored, err := repo.GetContact(context.Background(), contact.Id)
		return err == nil && stored.Enrichment != nil
	})

	stored, err := repo.GetContact(context.Background(), contact.Id)
	require.NoError(t, err)
	assert.Equal(t, "Investor", stored.Enrichment.Bio)
}

func TestCapture_EnricherFailureLeavesContactIntact(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	enricher := &testEnricher{shouldError: true}

	p, err := NewPipeline(repo, mock.NewMockProvider(), WithEnricher(enricher))
	require.NoError(t, err)
	defer p.Release()

	contact, err := p.Capture(context.Background(), &CaptureRequest{
		Name:  "Elio Park",
		Email: "elio@example.com",
	})
	require.NoError(t, err)

	waitFor(t, 2*time.Second, func() bool { return enricher.calls > 0 })

	stored, err := repo.GetContact(context.Background(), contact.Id)
	require.NoError(t, err)
	assert.Nil(t, stored.Enrichment)
}

func TestCapture_DuplicateNameStillStored(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	p, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	defer p.Release()

	_, err = p.Capture(context.Background(), &CaptureRequest{Name: "Faye Wong"})
	require.NoError(t, err)
	_, err = p.Capture(context.Background(), &CaptureRequest{Name: "  faye wong "})
	require.NoError(t, err)

	contacts, err := repo.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}
