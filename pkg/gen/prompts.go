// pkg/gen/prompts.go

package gen

import (
	"encoding/json"
	"fmt"
	"strings"

	"webplanner/pkg/plan/types"
)

func renderResearchPrompt(description string) string {
	return fmt.Sprintf(`Research the market for the following website idea and report your findings.

Requirements:
- Base the analysis only on the idea below; do not invent the product's features.
- Keep every list to at most 6 entries.
- Respond ONLY as JSON in exactly this shape:
{"targetAudience":{"description":"...","demographics":["..."]},"competitorAnalysis":[{"name":"...","strengths":["..."],"weaknesses":["..."]}],"keywords":["..."],"technologyTrends":["..."],"apiIntegrations":["..."],"uniqueValueProposition":"...","monetizationStrategies":["..."]}

WEBSITE IDEA:
%s
`, description)
}

func renderInitialPlanPrompt(description string, research *types.ResearchData, kbCtx string) string {
	rj, _ := json.Marshal(research)
	return fmt.Sprintf(`Write a complete implementation plan for the website idea below.

Requirements:
- "planText" is a markdown document: overview, feature list, architecture, data model, milestones. Include at least one fenced mermaid diagram where it helps.
- "suggestions" is a list of discrete optional improvements the user may accept later. Leave "id" empty and "selected" false.
- Respond ONLY as JSON: {"planText":"...","suggestions":[{"id":"","title":"...","description":"...","category":"feature|design|tech|monetization|other","selected":false}]}

WEBSITE IDEA:
%s

RESEARCH FINDINGS:
%s
%s`, description, string(rj), renderKBSection(kbCtx))
}

func renderRefinedPlanPrompt(in RefineInput, annotated types.PlanContent) string {
	pj, _ := json.Marshal(annotated)
	rj, _ := json.Marshal(in.Research)
	return fmt.Sprintf(`Revise the implementation plan below according to the user's feedback.

Requirements:
- Suggestions marked "selected": true were accepted by the user: fold them into the plan body.
- Keep the "id" of every suggestion you carry forward unchanged; leave "id" empty on new suggestions.
- Keep unrelated parts of the plan stable; do not rewrite sections the feedback does not touch.
- Respond ONLY as JSON: {"planText":"...","suggestions":[{"id":"...","title":"...","description":"...","category":"...","selected":false}]}

WEBSITE IDEA:
%s

PREVIOUS PLAN:
%s

RESEARCH FINDINGS:
%s

USER FEEDBACK:
%s
%s`, in.Description, string(pj), string(rj), in.CombinedFeedback, renderKBSection(in.KBContext))
}

func renderImplementationPromptsPrompt(planText string) string {
	return fmt.Sprintf(`Break the implementation plan below into ordered, copy-pastable prompts for an AI coding assistant.

Requirements:
- Group prompts by category ("frontend", "backend", "database", plus others if warranted).
- Each prompt must be self-contained and reference concrete parts of the plan.
- Respond ONLY as JSON mapping category to a list: {"frontend":[{"title":"...","promptText":"..."}],"backend":[...],"database":[...]}

PLAN:
%s
`, planText)
}

func renderOneShotPrompt(in OneShotInput) string {
	rj, _ := json.Marshal(in.Research)
	ipj, _ := json.Marshal(in.Prompts)
	var b strings.Builder
	fmt.Fprintf(&b, `Produce ONE single build prompt that instructs %s to implement this entire application in one pass.

Respond with the prompt text only, no preamble, no JSON.

PLAN:
%s

RESEARCH FINDINGS:
%s

IMPLEMENTATION PROMPTS:
%s
`, editorName(in.TargetEditor), in.PlanText, string(rj), string(ipj))
	if strings.TrimSpace(in.DatabaseInfo) != "" {
		fmt.Fprintf(&b, "\nDATABASE:\n%s\n", in.DatabaseInfo)
	}
	if strings.TrimSpace(in.UserProfile) != "" {
		fmt.Fprintf(&b, "\nDEVELOPER PROFILE:\n%s\n", in.UserProfile)
	}
	return b.String()
}

func renderRefineOneShotPrompt(existing, feedback, targetEditor string) string {
	return fmt.Sprintf(`Rewrite the build prompt below for %s according to the user's feedback. Keep everything the feedback does not touch. Respond with the revised prompt text only.

CURRENT PROMPT:
%s

FEEDBACK:
%s
`, editorName(targetEditor), existing, feedback)
}

func renderKBSection(kbCtx string) string {
	if strings.TrimSpace(kbCtx) == "" {
		return ""
	}
	return "\nREFERENCE NOTES:\n" + kbCtx + "\n"
}

func editorName(editor string) string {
	if strings.TrimSpace(editor) == "" {
		return "an AI code editor"
	}
	return editor
}
