package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryTerms(t *testing.T) {
	t.Run("lowercases and drops short words", func(t *testing.T) {
		assert.Equal(t, []string{"acme", "robotics"}, queryTerms("a Acme Robotics", 1))
	})

	t.Run("length cutoff counts bytes", func(t *testing.T) {
		// A single multi-byte rune is longer than one byte and survives
		// the >1 filter.
		assert.Equal(t, []string{"日", "acme"}, queryTerms("日 x acme", 1))
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Empty(t, queryTerms("   ", 1))
	})
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("Helios Energy", "helios"))
	assert.False(t, containsFold("Helios Energy", ""))
	assert.False(t, containsFold("", "x"))
}
