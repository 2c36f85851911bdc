package openai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/poiesic/reach/core"
)

func scoredContactFixture() *core.ScoredContact {
	return &core.ScoredContact{
		Contact:      &core.Contact{Name: "Ana Silva", Company: "Helios Energy"},
		Score:        8,
		MatchReasons: []string{"Name match"},
		Relevance:    core.RelevanceHigh,
	}
}

// stubModel records whether the call context carried a deadline and
// returns a canned completion.
type stubModel struct {
	response    string
	sawDeadline bool
}

func (s *stubModel) GenerateContent(ctx context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	_, s.sawDeadline = ctx.Deadline()
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: s.response}},
	}, nil
}

func (s *stubModel) Call(ctx context.Context, _ string, _ ...llms.CallOption) (string, error) {
	_, s.sawDeadline = ctx.Deadline()
	return s.response, nil
}

func TestCallTimeoutBoundsEveryService(t *testing.T) {
	t.Run("intent parser", func(t *testing.T) {
		stub := &stubModel{response: `{"type":"general","keywords":["robotics"]}`}
		parser := newIntentParser(stub, time.Second)

		_, err := parser.ParseIntent(context.Background(), "robotics people")
		require.NoError(t, err)
		assert.True(t, stub.sawDeadline, "parse call should carry a deadline")
	})

	t.Run("explainer", func(t *testing.T) {
		stub := &stubModel{response: "Ana matches your query."}
		explainer := newExplainer(stub, time.Second)

		_, err := explainer.ExplainResults(context.Background(), "ana",
			scoredContactFixture(), 1)
		require.NoError(t, err)
		assert.True(t, stub.sawDeadline, "explain call should carry a deadline")
	})

	t.Run("profile extractor", func(t *testing.T) {
		stub := &stubModel{response: `{"tags":["robotics","hardware"]}`}
		extractor := newProfileExtractor(stub, time.Second)

		_, err := extractor.ExtractProfile(context.Background(), "met at a robotics fair", "")
		require.NoError(t, err)
		assert.True(t, stub.sawDeadline, "extract call should carry a deadline")
	})

	t.Run("zero timeout leaves parent context unbounded", func(t *testing.T) {
		stub := &stubModel{response: `{"tags":[]}`}
		extractor := newProfileExtractor(stub, 0)

		_, err := extractor.ExtractProfile(context.Background(), "context", "")
		require.NoError(t, err)
		assert.False(t, stub.sawDeadline)
	})
}

func TestCallContext(t *testing.T) {
	parent := context.Background()

	ctx, cancel := callContext(parent, 0)
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	assert.False(t, hasDeadline)
	assert.Equal(t, parent, ctx)

	ctx, cancel = callContext(parent, time.Minute)
	defer cancel()
	_, hasDeadline = ctx.Deadline()
	assert.True(t, hasDeadline)
}
