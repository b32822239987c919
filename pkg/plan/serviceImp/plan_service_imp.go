package serviceImp

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"webplanner/entities"
	"webplanner/pkg/activity"
	"webplanner/pkg/gen"
	planrepo "webplanner/pkg/plan/repository"
	"webplanner/pkg/plan/service"
	"webplanner/pkg/plan/types"
)

// Generator is the slice of the generation gateway the orchestrator needs.
// *gen.Gateway satisfies it.
type Generator interface {
	SynthesizeResearch(description string) *types.ResearchData
	SynthesizeInitialPlan(description string, research *types.ResearchData, kbCtx string) *types.PlanContent
	SynthesizeRefinedPlan(in gen.RefineInput) *types.PlanContent
	SynthesizeImplementationPrompts(planText string) types.ImplementationPrompts
	SynthesizeOneShotPrompt(in gen.OneShotInput) string
	RefineOneShotPrompt(existing, feedback, targetEditor string) string
}

type kbSearcher interface {
	Search(query string, k int) ([]entities.ResearchChunk, error)
}

type PlanSvc struct {
	gw       Generator
	repoPlan planrepo.PlanRepository
	recorder *activity.Recorder
	kb       kbSearcher
}

func NewPlanService(gw Generator, pr planrepo.PlanRepository, rec *activity.Recorder, kb kbSearcher) *PlanSvc {
	return &PlanSvc{gw: gw, repoPlan: pr, recorder: rec, kb: kb}
}

var _ service.PlanService = (*PlanSvc)(nil)

func (s *PlanSvc) GenerateInitialPlan(project *entities.Project) (*entities.Plan, error) {
	research := s.gw.SynthesizeResearch(describeProject(project))
	if research == nil {
		return nil, service.ErrGenerationFailed
	}
	kbCtx := s.kbContext(project)
	content := s.gw.SynthesizeInitialPlan(describeProject(project), research, kbCtx)
	if content == nil {
		return nil, service.ErrGenerationFailed
	}
	if strings.TrimSpace(content.PlanText) == "" {
		return nil, service.ErrMalformedOutput
	}
	if content.Suggestions == nil {
		content.Suggestions = []types.Suggestion{}
	}

	p, err := s.persist(project, *content, *research, entities.PlanTypeInitial, nil)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(entities.ActivityPlanVersionCreated, project.UserID, project.ProjectID, &p.PlanID,
		fmt.Sprintf("initial plan created (version %d)", p.Version))
	return p, nil
}

// Refine runs the full refinement pipeline: load the latest version, build the
// combined feedback narrative, synthesize a refined plan, validate it and
// persist it as the next version. Every successful call creates a new version;
// there is deliberately no idempotence here.
func (s *PlanSvc) Refine(project *entities.Project, req service.RefineRequest) (*entities.Plan, error) {
	prev, err := s.repoPlan.LatestByProject(project.ProjectID)
	if err != nil {
		return nil, err
	}
	if req.LatestVersionID != "" && req.LatestVersionID != fmt.Sprint(prev.PlanID) {
		log.Printf("[plan] refine project %d: caller saw version id %s, latest is %d", project.ProjectID, req.LatestVersionID, prev.PlanID)
	}

	var prevContent types.PlanContent
	if err := json.Unmarshal([]byte(prev.ContentJSON), &prevContent); err != nil {
		return nil, fmt.Errorf("%w: latest version has unreadable plan content", planrepo.ErrNotFound)
	}
	research := parseResearch(prev.ResearchJSON)

	combined := buildCombinedFeedback(req.UserWrittenFeedback, prevContent.Suggestions, req.SelectedSuggestionIDs)

	content := s.gw.SynthesizeRefinedPlan(gen.RefineInput{
		Description:      describeProject(project),
		Previous:         prevContent,
		CombinedFeedback: combined,
		SelectedIDs:      req.SelectedSuggestionIDs,
		Research:         &research,
		KBContext:        s.kbContext(project),
	})
	if content == nil {
		return nil, service.ErrGenerationFailed
	}
	if strings.TrimSpace(content.PlanText) == "" {
		return nil, service.ErrMalformedOutput
	}
	if content.Suggestions == nil {
		content.Suggestions = []types.Suggestion{}
	}

	p, err := s.persist(project, *content, research, entities.PlanTypeRefined, &combined)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(entities.ActivityPlanVersionCreated, project.UserID, project.ProjectID, &p.PlanID,
		fmt.Sprintf("plan refined to version %d", p.Version))
	return p, nil
}

func (s *PlanSvc) ListVersions(projectID uint) ([]planrepo.VersionMeta, error) {
	return s.repoPlan.ListMetaByProject(projectID)
}

func (s *PlanSvc) VersionsWithContent(projectID uint) ([]entities.Plan, error) {
	return s.repoPlan.ListByProject(projectID)
}

// ImplementationPrompts returns the per-version derived prompt set, computing
// and caching it on first request. The cache column stays NULL on synthesis
// failure so a later request can retry.
func (s *PlanSvc) ImplementationPrompts(project *entities.Project, planID uint) (types.ImplementationPrompts, error) {
	p, err := s.repoPlan.FindByID(planID)
	if err != nil {
		return nil, err
	}
	if p.ProjectID != project.ProjectID {
		return nil, planrepo.ErrNotFound
	}
	if p.PromptsJSON != nil {
		var ip types.ImplementationPrompts
		if err := json.Unmarshal([]byte(*p.PromptsJSON), &ip); err == nil {
			return ip, nil
		}
		log.Printf("[plan] version %d: cached prompts unreadable, recomputing", planID)
	}

	var content types.PlanContent
	if err := json.Unmarshal([]byte(p.ContentJSON), &content); err != nil {
		return nil, fmt.Errorf("%w: version has unreadable plan content", planrepo.ErrNotFound)
	}
	ip := s.gw.SynthesizeImplementationPrompts(content.PlanText)
	if ip == nil {
		return nil, service.ErrGenerationFailed
	}
	b, _ := json.Marshal(ip)
	if err := s.repoPlan.SetCachedPrompts(planID, string(b)); err != nil {
		return nil, err
	}
	return ip, nil
}

func (s *PlanSvc) OneShotPrompt(project *entities.Project, opts service.OneShotOptions) (string, error) {
	p, err := s.repoPlan.LatestByProject(project.ProjectID)
	if err != nil {
		return "", err
	}
	if p.OneShotPrompt != nil && strings.TrimSpace(*p.OneShotPrompt) != "" {
		return *p.OneShotPrompt, nil
	}

	var content types.PlanContent
	if err := json.Unmarshal([]byte(p.ContentJSON), &content); err != nil {
		return "", fmt.Errorf("%w: version has unreadable plan content", planrepo.ErrNotFound)
	}
	research := parseResearch(p.ResearchJSON)
	prompts, err := s.ImplementationPrompts(project, p.PlanID)
	if err != nil {
		return "", err
	}
	editor := opts.TargetEditor
	if editor == "" {
		editor = project.CodeEditor
	}
	out := s.gw.SynthesizeOneShotPrompt(gen.OneShotInput{
		PlanText:     content.PlanText,
		Research:     &research,
		Prompts:      prompts,
		TargetEditor: editor,
		DatabaseInfo: opts.DatabaseInfo,
		UserProfile:  opts.UserProfile,
	})
	if strings.TrimSpace(out) == "" {
		return "", service.ErrGenerationFailed
	}
	if err := s.repoPlan.SetCachedOneShot(p.PlanID, out); err != nil {
		return "", err
	}
	return out, nil
}

func (s *PlanSvc) RefineOneShot(project *entities.Project, feedback, targetEditor string) (string, error) {
	p, err := s.repoPlan.LatestByProject(project.ProjectID)
	if err != nil {
		return "", err
	}
	if p.OneShotPrompt == nil || strings.TrimSpace(*p.OneShotPrompt) == "" {
		return "", service.ErrNothingToRefine
	}
	if targetEditor == "" {
		targetEditor = project.CodeEditor
	}
	out := s.gw.RefineOneShotPrompt(*p.OneShotPrompt, feedback, targetEditor)
	if strings.TrimSpace(out) == "" {
		return "", service.ErrGenerationFailed
	}
	if err := s.repoPlan.OverwriteOneShot(p.PlanID, out); err != nil {
		return "", err
	}
	return out, nil
}

func (s *PlanSvc) persist(project *entities.Project, content types.PlanContent, research types.ResearchData, planType string, feedback *string) (*entities.Plan, error) {
	cb, _ := json.Marshal(content)
	rb, _ := json.Marshal(research)
	p := &entities.Plan{
		ProjectID:    project.ProjectID,
		PlanType:     planType,
		ContentJSON:  string(cb),
		ResearchJSON: string(rb),
		FeedbackText: feedback,
	}
	var err error
	if planType == entities.PlanTypeInitial {
		err = s.repoPlan.CreateInitial(p)
	} else {
		err = s.repoPlan.CreateRefined(p)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// buildCombinedFeedback merges the per-section free text (blank sections
// skipped, section order stable) with a narrative of the accepted suggestions.
func buildCombinedFeedback(sections map[string]string, suggestions []types.Suggestion, selectedIDs []string) string {
	var b strings.Builder

	keys := make([]string, 0, len(sections))
	for k := range sections {
		if strings.TrimSpace(sections[k]) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "### %s\n%s\n\n", k, strings.TrimSpace(sections[k]))
	}

	sel := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		sel[id] = struct{}{}
	}
	var accepted []types.Suggestion
	for _, sg := range suggestions {
		if _, ok := sel[sg.ID]; ok {
			accepted = append(accepted, sg)
		}
	}
	if len(accepted) > 0 {
		b.WriteString("Accepted suggestions:\n")
		for _, sg := range accepted {
			if sg.Description != "" {
				fmt.Fprintf(&b, "- %s: %s\n", sg.Title, sg.Description)
			} else {
				fmt.Fprintf(&b, "- %s\n", sg.Title)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// parseResearch never blocks a refinement on missing or corrupt research; a
// zero-value ResearchData stands in.
func parseResearch(raw string) types.ResearchData {
	var rd types.ResearchData
	if strings.TrimSpace(raw) == "" {
		return rd
	}
	if err := json.Unmarshal([]byte(raw), &rd); err != nil {
		log.Printf("[plan] research data unreadable, continuing without: %v", err)
		return types.ResearchData{}
	}
	return rd
}

func describeProject(p *entities.Project) string {
	var b strings.Builder
	b.WriteString(p.Description)
	if strings.TrimSpace(p.TargetAudience) != "" {
		fmt.Fprintf(&b, "\n\nTarget audience: %s", p.TargetAudience)
	}
	if strings.TrimSpace(p.KeyGoals) != "" {
		fmt.Fprintf(&b, "\nKey goals: %s", p.KeyGoals)
	}
	return b.String()
}

func (s *PlanSvc) kbContext(project *entities.Project) string {
	if s.kb == nil {
		return ""
	}
	query := project.Name + " " + project.Description
	chunks, err := s.kb.Search(query, 6)
	if err != nil {
		log.Printf("[plan] kb search failed: %v", err)
		return ""
	}
	var ctx string
	for _, ch := range chunks {
		if len(ctx) > 6000 {
			break
		}
		ctx += "\n---\n" + ch.Text
	}
	return ctx
}
