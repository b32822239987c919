// pkg/gen/gateway.go

package gen

import (
	"errors"
	"log"
	"strings"

	"webplanner/pkg/ai"
	"webplanner/pkg/plan/types"
)

// Gateway wraps the completion client with the plan synthesis capabilities.
// Every method collapses upstream failures (transport errors,
// empty completions, unparsable JSON) to a nil/empty result after logging;
// callers surface a domain-level error instead. The gateway never retries.
type Gateway struct {
	llm ai.Client
}

func New(llm ai.Client) *Gateway { return &Gateway{llm: llm} }

// RefineInput carries everything the refined-plan prompt embeds. Previous is
// the prior version's content as stored; the gateway annotates its
// suggestions from SelectedIDs before building the prompt.
type RefineInput struct {
	Description      string
	Previous         types.PlanContent
	CombinedFeedback string
	SelectedIDs      []string
	Research         *types.ResearchData
	KBContext        string
}

type OneShotInput struct {
	PlanText     string
	Research     *types.ResearchData
	Prompts      types.ImplementationPrompts
	TargetEditor string
	DatabaseInfo string
	UserProfile  string
}

func (g *Gateway) SynthesizeResearch(description string) *types.ResearchData {
	raw, err := g.llm.Complete(renderResearchPrompt(description), ai.Options{JSONMode: true})
	if err != nil {
		g.logUpstream("research", err)
		return nil
	}
	// No fenced-block fallback here: malformed research is irrecoverable for
	// this call.
	var rd types.ResearchData
	if err := strictUnmarshal(raw, &rd); err != nil {
		log.Printf("[gen] research: unparsable response: %v; raw: %.500s", err, raw)
		return nil
	}
	return &rd
}

func (g *Gateway) SynthesizeInitialPlan(description string, research *types.ResearchData, kbCtx string) *types.PlanContent {
	raw, err := g.llm.Complete(renderInitialPlanPrompt(description, research, kbCtx), ai.Options{JSONMode: true})
	if err != nil {
		g.logUpstream("initial-plan", err)
		return nil
	}
	var pc types.PlanContent
	if err := strictUnmarshal(raw, &pc); err != nil {
		log.Printf("[gen] initial-plan: unparsable response: %v; raw: %.500s", err, raw)
		return nil
	}
	pc.PlanText = StripDiagramComments(pc.PlanText)
	pc = EnsureUniqueSuggestionIDs(pc)
	return &pc
}

func (g *Gateway) SynthesizeRefinedPlan(in RefineInput) *types.PlanContent {
	annotated := annotateSelected(in.Previous, in.SelectedIDs)
	raw, err := g.llm.Complete(renderRefinedPlanPrompt(in, annotated), ai.Options{JSONMode: true})
	if err != nil {
		g.logUpstream("refined-plan", err)
		return nil
	}
	var pc types.PlanContent
	if !ParseStructuredResponse(raw, &pc) {
		log.Printf("[gen] refined-plan: unparsable response after fence extraction; raw: %.500s", raw)
		return nil
	}
	pc.PlanText = StripDiagramComments(pc.PlanText)
	pc = EnsureUniqueSuggestionIDs(pc)
	return &pc
}

func (g *Gateway) SynthesizeImplementationPrompts(planText string) types.ImplementationPrompts {
	raw, err := g.llm.Complete(renderImplementationPromptsPrompt(planText), ai.Options{JSONMode: true})
	if err != nil {
		g.logUpstream("implementation-prompts", err)
		return nil
	}
	var ip types.ImplementationPrompts
	if err := strictUnmarshal(raw, &ip); err != nil {
		log.Printf("[gen] implementation-prompts: unparsable response: %v; raw: %.500s", err, raw)
		return nil
	}
	return ip
}

func (g *Gateway) SynthesizeOneShotPrompt(in OneShotInput) string {
	raw, err := g.llm.Complete(renderOneShotPrompt(in), ai.Options{})
	if err != nil {
		g.logUpstream("one-shot", err)
		return ""
	}
	return strings.TrimSpace(raw)
}

func (g *Gateway) RefineOneShotPrompt(existing, feedback, targetEditor string) string {
	raw, err := g.llm.Complete(renderRefineOneShotPrompt(existing, feedback, targetEditor), ai.Options{})
	if err != nil {
		g.logUpstream("refine-one-shot", err)
		return ""
	}
	return strings.TrimSpace(raw)
}

// annotateSelected returns a copy of content whose suggestions carry the
// caller's selection snapshot.
func annotateSelected(content types.PlanContent, selectedIDs []string) types.PlanContent {
	sel := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		sel[id] = struct{}{}
	}
	out := make([]types.Suggestion, len(content.Suggestions))
	for i, s := range content.Suggestions {
		_, s.Selected = sel[s.ID]
		out[i] = s
	}
	content.Suggestions = out
	return content
}

func (g *Gateway) logUpstream(capability string, err error) {
	switch {
	case errors.Is(err, ai.ErrAuth):
		log.Printf("[gen] %s: auth/config error: %v", capability, err)
	case errors.Is(err, ai.ErrRateLimited):
		log.Printf("[gen] %s: rate limited: %v", capability, err)
	default:
		log.Printf("[gen] %s: completion failed: %v", capability, err)
	}
}
