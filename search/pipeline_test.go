package search

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/poiesic/reach/ai/mock"
	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, provider)
		require.NoError(t, err)
		assert.NotNil(t, pipeline)
	})

	t.Run("with custom logger", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, provider, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, pipeline)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, provider, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, pipeline)
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

func seedContacts(t *testing.T, repo interface {
	AddContacts(ctx context.Context, contacts ...*core.Contact) ([]*core.Contact, error)
}, contacts ...*core.Contact) {
	t.Helper()
	_, err := repo.AddContacts(context.Background(), contacts...)
	require.NoError(t, err)
}

func TestVoiceSearch_EmptyStore(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)

	response, err := pipeline.VoiceSearch(context.Background(), "anyone from fintech")
	require.NoError(t, err)
	assert.Equal(t, SourceEmpty, response.Source)
	assert.Empty(t, response.Results)
	assert.Equal(t, "You don't have any contacts yet. Add some contacts first!", response.Explanation)
	assert.Equal(t, "Go to 'Add Contact' to start building your network.", response.SuggestedFollowUp)
}

func TestVoiceSearch_EmptyQuery(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)

	_, err = pipeline.VoiceSearch(context.Background(), "   ")
	assert.ErrorIs(t, err, core.ErrEmptyQuery)
}

func TestVoiceSearch_AgentPath(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	seedContacts(t, repo,
		&core.Contact{Name: "Ana Silva", Company: "Acme"},
		&core.Contact{Name: "Ben Okafor", Company: "Bolt Freight"},
	)

	parser := mock.NewMockIntentParser()
	parser.ParseIntentFunc = func(ctx context.Context, query string) (*core.SearchIntent, error) {
		return &core.SearchIntent{
			Type:    core.IntentCompany,
			Filters: core.IntentFilters{Company: "acme"},
		}, nil
	}
	explainer := mock.NewMockExplainer()
	explainer.ExplainResultsFunc = func(ctx context.Context, query string, top *core.ScoredContact, totalMatches int) (string, error) {
		return "Ana from Acme is your best match.", nil
	}
	provider := mock.NewMockProviderWithServices(parser, explainer, mock.NewMockProfileExtractor())

	pipeline, err := NewPipeline(repo, provider)
	require.NoError(t, err)

	response, err := pipeline.VoiceSearch(context.Background(), "who works at acme")
	require.NoError(t, err)

	assert.Equal(t, SourceAgent, response.Source)
	require.Len(t, response.Results, 1)
	assert.Equal(t, "Ana Silva", response.Results[0].Contact.Name)
	assert.Equal(t, 8.0, response.Results[0].Score)
	assert.Equal(t, 8.0, response.TopScore)
	assert.Equal(t, 1, response.TotalMatches)
	assert.Equal(t, "Ana from Acme is your best match.", response.Explanation)
	require.NotNil(t, response.Intent)
	assert.Equal(t, "who works at acme", response.Intent.OriginalQuery)
}

func TestVoiceSearch_ParserFailureFallsBack(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	seedContacts(t, repo,
		&core.Contact{Name: "Carla Reyes", Industry: "Robotics"},
	)

	parser := mock.NewMockIntentParser()
	parser.ParseIntentFunc = func(ctx context.Context, query string) (*core.SearchIntent, error) {
		return nil, errors.New("model unavailable")
	}
	provider := mock.NewMockProviderWithServices(parser, mock.NewMockExplainer(), mock.NewMockProfileExtractor())

	pipeline, err := NewPipeline(repo, provider)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	response, err := pipeline.VoiceSearchWithMonitor(context.Background(), "robotics people", monitor)
	require.NoError(t, err)

	assert.True(t, monitor.parseFailed)
	require.NotNil(t, monitor.intent)
	assert.Equal(t, core.IntentGeneral, monitor.intent.Type)
	assert.Equal(t, []string{"robotics", "people"}, monitor.intent.Keywords)

	require.Len(t, response.Results, 1)
	assert.Equal(t, "Carla Reyes", response.Results[0].Contact.Name)
}

func TestVoiceSearch_ExplainerFailureUsesTemplate(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	seedContacts(t, repo,
		&core.Contact{Name: "Dmitri Volkov", Company: "Nexus Capital"},
	)

	explainer := mock.NewMockExplainer()
	explainer.ExplainResultsFunc = func(ctx context.Context, query string, top *core.ScoredContact, totalMatches int) (string, error) {
		return "", errors.New("model unavailable")
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockIntentParser(), explainer, mock.NewMockProfileExtractor())

	pipeline, err := NewPipeline(repo, provider)
	require.NoError(t, err)

	response, err := pipeline.VoiceSearch(context.Background(), "nexus")
	require.NoError(t, err)
	assert.Equal(t, `Found 1 contact matching "nexus"`, response.Explanation)
}

func TestVoiceSearch_FollowUpWhenFewResults(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	seedContacts(t, repo,
		&core.Contact{Name: "Elena Moss", Industry: "Climate Tech"},
	)

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)

	response, err := pipeline.VoiceSearch(context.Background(), "climate tech founders berlin")
	require.NoError(t, err)
	require.NotEmpty(t, response.Results)
	assert.Equal(t,
		`You might also try searching for "climate" or "tech" with different terms.`,
		response.SuggestedFollowUp)
}

func TestVoiceSearch_NoMatches(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	seedContacts(t, repo,
		&core.Contact{Name: "Farid Khan"},
	)

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)

	response, err := pipeline.VoiceSearch(context.Background(), "underwater basketweaving")
	require.NoError(t, err)
	assert.Empty(t, response.Results)
	assert.Equal(t,
		`I couldn't find any contacts matching "underwater basketweaving". Try searching with different keywords or check if you have added contacts that match this description.`,
		response.Explanation)
	assert.Equal(t, "Try searching by name, company, or industry", response.SuggestedFollowUp)
}

func TestVoiceSearch_CapsAtTenResults(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	contacts := make([]*core.Contact, 0, 15)
	for i := 0; i < 15; i++ {
		contacts = append(contacts, &core.Contact{
			Name:    "Orbit Person",
			Company: "Orbit Systems",
		})
	}
	seedContacts(t, repo, contacts...)

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)

	response, err := pipeline.VoiceSearch(context.Background(), "orbit systems")
	require.NoError(t, err)
	assert.Len(t, response.Results, 10)
	assert.Equal(t, 10, response.TotalMatches)
}

func TestSimpleSearch(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	seedContacts(t, repo,
		&core.Contact{Name: "Gina Torres", Company: "Helios"},
		&core.Contact{Name: "Hank Li", Role: "Helios Advisor"},
		&core.Contact{Name: "Iris West", Tags: []string{"helios alumni"}},
	)

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)

	response, err := pipeline.SimpleSearch(context.Background(), "helios")
	require.NoError(t, err)

	assert.Equal(t, SourceSimple, response.Source)
	require.Len(t, response.Results, 3)

	// Whole-query company hit (3) + keyword company bonus (1) wins over
	// role (2) and tag (1) hits.
	assert.Equal(t, "Gina Torres", response.Results[0].Contact.Name)
	assert.Equal(t, 4.0, response.Results[0].Score)
	assert.Equal(t, []string{"Company"}, response.Results[0].MatchReasons)

	assert.Equal(t, "Hank Li", response.Results[1].Contact.Name)
	assert.Equal(t, "Iris West", response.Results[2].Contact.Name)
	assert.Equal(t, []string{"Tags"}, response.Results[2].MatchReasons)

	assert.Equal(t, `Found 3 contacts matching "helios"`, response.Explanation)
	assert.Equal(t, 4.0, response.TopScore)
}

func TestSimpleSearch_EmptyStore(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)

	response, err := pipeline.SimpleSearch(context.Background(), "anyone")
	require.NoError(t, err)
	assert.Equal(t, SourceEmpty, response.Source)
}

func TestSimpleSearch_NoMatches(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	seedContacts(t, repo, &core.Contact{Name: "Jobe"})

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)

	response, err := pipeline.SimpleSearch(context.Background(), "quasar")
	require.NoError(t, err)
	assert.Empty(t, response.Results)
	assert.Equal(t, `No contacts found for "quasar"`, response.Explanation)
	assert.Zero(t, response.TopScore)
}

func TestSearch_FieldWeighted(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	seedContacts(t, repo,
		&core.Contact{Name: "Kim Natt", Company: "Lumen Works"},
		&core.Contact{Name: "Lumen Ko"},
	)

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)

	results, err := pipeline.Search(context.Background(), "lumen")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Lumen Ko", results[0].Contact.Name)
	assert.Equal(t, "Kim Natt", results[1].Contact.Name)
}

func TestFallbackIntent(t *testing.T) {
	intent := FallbackIntent("Find AI folks in Berlin")
	assert.Equal(t, core.IntentGeneral, intent.Type)
	assert.Equal(t, []string{"find", "folks", "berlin"}, intent.Keywords)
	assert.Equal(t, "Find AI folks in Berlin", intent.OriginalQuery)
	assert.Equal(t, core.IntentFilters{}, intent.Filters)
}

// recordingMonitor captures pipeline callbacks for assertions.
type recordingMonitor struct {
	started     bool
	parseFailed bool
	intent      *core.SearchIntent
	scored      []*core.ScoredContact
	response    *Response
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) Start(_ string)                        { m.started = true }
func (m *recordingMonitor) AfterIntentParse(i *core.SearchIntent) { m.intent = i }
func (m *recordingMonitor) IntentParseFailed(_ error)             { m.parseFailed = true }
func (m *recordingMonitor) AfterScoring(s []*core.ScoredContact)  { m.scored = s }
func (m *recordingMonitor) Finish(r *Response)                    { m.response = r }
