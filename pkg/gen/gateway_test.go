package gen

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webplanner/pkg/ai"
	"webplanner/pkg/plan/types"
)

// scriptedClient serves canned responses in order and records every prompt.
type scriptedClient struct {
	responses []string
	err       error
	prompts   []string
}

func (s *scriptedClient) Complete(prompt string, opts ai.Options) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("script exhausted")
	}
	out := s.responses[0]
	s.responses = s.responses[1:]
	return out, nil
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestSynthesizeRefinedPlan_AnnotatesSelection(t *testing.T) {
	refined := types.PlanContent{
		PlanText:    "# Refined",
		Suggestions: []types.Suggestion{{ID: "", Title: "new idea"}},
	}
	client := &scriptedClient{responses: []string{mustJSON(t, refined)}}
	gw := New(client)

	out := gw.SynthesizeRefinedPlan(RefineInput{
		Description: "a bakery finder app",
		Previous: types.PlanContent{
			PlanText: "# Old",
			Suggestions: []types.Suggestion{
				{ID: "a", Title: "alpha"},
				{ID: "b", Title: "beta"},
			},
		},
		CombinedFeedback: "make it better",
		SelectedIDs:      []string{"b"},
	})
	require.NotNil(t, out)

	// the model saw exactly the caller's selection snapshot
	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, `{"id":"b","title":"beta","selected":true}`)
	assert.Contains(t, prompt, `{"id":"a","title":"alpha","selected":false}`)
	assert.Contains(t, prompt, "make it better")

	// new suggestions got fresh ids that do not collide with the old ones
	require.Len(t, out.Suggestions, 1)
	assert.NotEmpty(t, out.Suggestions[0].ID)
	assert.NotEqual(t, "a", out.Suggestions[0].ID)
	assert.NotEqual(t, "b", out.Suggestions[0].ID)
}

func TestSynthesizeRefinedPlan_FencedFallback(t *testing.T) {
	refined := types.PlanContent{PlanText: "# Refined"}
	client := &scriptedClient{responses: []string{"```json\n" + mustJSON(t, refined) + "\n```"}}
	gw := New(client)

	out := gw.SynthesizeRefinedPlan(RefineInput{Previous: types.PlanContent{PlanText: "# Old"}})
	require.NotNil(t, out)
	assert.Equal(t, "# Refined", out.PlanText)
}

func TestSynthesizeRefinedPlan_NilOnProse(t *testing.T) {
	client := &scriptedClient{responses: []string{"sorry, I cannot help with that"}}
	gw := New(client)
	assert.Nil(t, gw.SynthesizeRefinedPlan(RefineInput{}))
}

func TestSynthesizeRefinedPlan_NilOnUpstreamError(t *testing.T) {
	client := &scriptedClient{err: ai.ErrRateLimited}
	gw := New(client)
	assert.Nil(t, gw.SynthesizeRefinedPlan(RefineInput{}))
}

func TestSynthesizeResearch_NoFencedFallback(t *testing.T) {
	rd := types.ResearchData{TargetAudience: types.TargetAudience{Description: "Urban millennials"}}
	client := &scriptedClient{responses: []string{"```json\n" + mustJSON(t, rd) + "\n```"}}
	gw := New(client)
	// research parsing is strict: fenced output is a failure for this call
	assert.Nil(t, gw.SynthesizeResearch("a bakery finder app"))
}

func TestSynthesizeResearch_Direct(t *testing.T) {
	rd := types.ResearchData{TargetAudience: types.TargetAudience{Description: "Urban millennials"}}
	client := &scriptedClient{responses: []string{mustJSON(t, rd)}}
	gw := New(client)
	out := gw.SynthesizeResearch("a bakery finder app")
	require.NotNil(t, out)
	assert.Equal(t, "Urban millennials", out.TargetAudience.Description)
}

func TestSynthesizeInitialPlan_SanitizesDiagrams(t *testing.T) {
	content := types.PlanContent{
		PlanText: "# Plan\n```mermaid\ngraph TD\n  A[x]\n  <!-- note -->\n```",
	}
	client := &scriptedClient{responses: []string{mustJSON(t, content)}}
	gw := New(client)

	out := gw.SynthesizeInitialPlan("idea", &types.ResearchData{}, "")
	require.NotNil(t, out)
	assert.NotContains(t, out.PlanText, "<!--")
	assert.NotContains(t, out.PlanText, "-->")
	assert.Contains(t, out.PlanText, "A[x]")
}

func TestSynthesizeOneShotPrompt_EmptyIsFailure(t *testing.T) {
	client := &scriptedClient{responses: []string{"   \n  "}}
	gw := New(client)
	assert.Empty(t, gw.SynthesizeOneShotPrompt(OneShotInput{PlanText: "# Plan"}))
}
