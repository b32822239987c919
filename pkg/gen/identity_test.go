package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webplanner/pkg/plan/types"
)

func TestEnsureUniqueSuggestionIDs_RepairsDuplicates(t *testing.T) {
	in := types.PlanContent{Suggestions: []types.Suggestion{
		{ID: "x", Title: "first"},
		{ID: "x", Title: "second"},
		{ID: "y", Title: "third"},
	}}
	out := EnsureUniqueSuggestionIDs(in)

	require.Len(t, out.Suggestions, 3)
	ids := map[string]bool{}
	for _, s := range out.Suggestions {
		assert.NotEmpty(t, s.ID)
		assert.False(t, ids[s.ID], "id %q repeated", s.ID)
		ids[s.ID] = true
	}
	// order and fields preserved; already-unique ids untouched
	assert.Equal(t, "x", out.Suggestions[0].ID)
	assert.Equal(t, "first", out.Suggestions[0].Title)
	assert.Equal(t, "second", out.Suggestions[1].Title)
	assert.NotEqual(t, "x", out.Suggestions[1].ID)
	assert.Equal(t, "y", out.Suggestions[2].ID)
	assert.Equal(t, "third", out.Suggestions[2].Title)
}

func TestEnsureUniqueSuggestionIDs_FillsMissing(t *testing.T) {
	in := types.PlanContent{Suggestions: []types.Suggestion{
		{ID: "", Title: "a"},
		{ID: "  ", Title: "b"},
		{ID: "keep", Title: "c"},
	}}
	out := EnsureUniqueSuggestionIDs(in)

	assert.NotEmpty(t, out.Suggestions[0].ID)
	assert.NotEmpty(t, out.Suggestions[1].ID)
	assert.NotEqual(t, out.Suggestions[0].ID, out.Suggestions[1].ID)
	assert.Equal(t, "keep", out.Suggestions[2].ID)
}

func TestEnsureUniqueSuggestionIDs_EmptyList(t *testing.T) {
	out := EnsureUniqueSuggestionIDs(types.PlanContent{PlanText: "text"})
	assert.Equal(t, "text", out.PlanText)
	assert.Empty(t, out.Suggestions)
}
