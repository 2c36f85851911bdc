package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSON(t *testing.T) {
	t.Run("restores missing opening quotes on keys", func(t *testing.T) {
		repaired := repairJSON(`{type": "company", keywords": ["plaid", "fintech"]}`)

		var payload intentPayload
		require.NoError(t, json.Unmarshal([]byte(repaired), &payload))
		assert.Equal(t, "company", payload.Type)
		assert.Equal(t, []string{"plaid", "fintech"}, payload.Keywords)
	})

	t.Run("valid JSON passes through unchanged", func(t *testing.T) {
		in := `{"type": "name", "filters": {"name": "Ana Silva"}}`
		assert.Equal(t, in, repairJSON(in))
	})

	t.Run("key values containing colons are untouched", func(t *testing.T) {
		in := `{"company": "Acme: West", "tags": ["9:00 standup"]}`
		assert.Equal(t, in, repairJSON(in))
	})
}
