package browse

import (
	"testing"

	"github.com/poiesic/reach/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe_NameNormalization(t *testing.T) {
	contacts := []*core.Contact{
		{Id: "c_1", Name: "Jane Doe"},
		{Id: "c_2", Name: "  jane doe "},
		{Id: "c_3", Name: "JANE DOE"},
	}

	deduped := Dedupe(contacts)
	require.Len(t, deduped, 1)
	assert.Equal(t, "c_1", deduped[0].Id)
}

func TestDedupe_MoreCompleteRecordWins(t *testing.T) {
	contacts := []*core.Contact{
		{Id: "c_sparse", Name: "Jane Doe"},
		{Id: "c_rich", Name: "jane doe", Company: "Acme", Role: "CTO", Tags: []string{"fintech"}},
	}

	deduped := Dedupe(contacts)
	require.Len(t, deduped, 1)
	assert.Equal(t, "c_rich", deduped[0].Id)
}

func TestDedupe_TieKeepsFirstRecord(t *testing.T) {
	contacts := []*core.Contact{
		{Id: "c_first", Name: "Jane Doe", Company: "Acme"},
		{Id: "c_second", Name: "jane doe", Role: "CTO"},
	}

	// Completeness 1 vs 1; earlier record stays
	deduped := Dedupe(contacts)
	require.Len(t, deduped, 1)
	assert.Equal(t, "c_first", deduped[0].Id)
}

func TestDedupe_PreservesFirstOccurrenceOrder(t *testing.T) {
	contacts := []*core.Contact{
		{Id: "c_a", Name: "Ann"},
		{Id: "c_b", Name: "Bob"},
		{Id: "c_b2", Name: "bob", Tags: []string{"golang", "devops"}},
		{Id: "c_c", Name: "Cat"},
	}

	deduped := Dedupe(contacts)
	require.Len(t, deduped, 3)
	assert.Equal(t, "Ann", deduped[0].Name)
	assert.Equal(t, "c_b2", deduped[1].Id) // richer Bob replaces in place
	assert.Equal(t, "Cat", deduped[2].Name)
}

func TestTagCounts(t *testing.T) {
	contacts := []*core.Contact{
		{Id: "c_1", Name: "Ann", Tags: []string{"Fintech", "golang"}},
		{Id: "c_2", Name: "Bob", Tags: []string{"fintech ", ""}},
		{Id: "c_3", Name: "Cat", Tags: []string{"fintech"}},
	}

	counts := TagCounts(contacts)
	require.Len(t, counts, 2)
	assert.Equal(t, TagCount{Tag: "fintech", Count: 3}, counts[0])
	assert.Equal(t, TagCount{Tag: "golang", Count: 1}, counts[1])
}

func TestTagCounts_RunsOverDedupedList(t *testing.T) {
	contacts := []*core.Contact{
		{Id: "c_1", Name: "Ann", Tags: []string{"ai"}},
		{Id: "c_dup", Name: "ann", Tags: []string{"ai"}},
	}

	// The duplicate Ann must not double-count her tags; tie on
	// completeness keeps the first record.
	counts := TagCounts(contacts)
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].Count)
}

func TestTagCounts_TiesSortAlphabetically(t *testing.T) {
	contacts := []*core.Contact{
		{Id: "c_1", Name: "Ann", Tags: []string{"zeta", "alpha"}},
	}

	counts := TagCounts(contacts)
	require.Len(t, counts, 2)
	assert.Equal(t, "alpha", counts[0].Tag)
	assert.Equal(t, "zeta", counts[1].Tag)
}

func TestTagCounts_Empty(t *testing.T) {
	assert.Empty(t, TagCounts(nil))
}
