// pkg/ai/mock_client.go

package ai

import "strings"

type mockClient struct{}

// NewMock returns a canned client used when no LLM endpoint is configured.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Complete(prompt string, opts Options) (string, error) {
	switch {
	case strings.Contains(prompt, `"competitorAnalysis"`):
		return `{"targetAudience":{"description":"Early adopters (mock)"},"competitorAnalysis":[],"keywords":["mock"],"technologyTrends":[],"apiIntegrations":[],"uniqueValueProposition":"Mock UVP","monetizationStrategies":["subscriptions"]}`, nil
	case strings.Contains(prompt, `"promptText"`):
		return `{"frontend":[{"title":"Scaffold UI","promptText":"Build the main screens (mock)."}],"backend":[{"title":"API skeleton","promptText":"Stand up the API (mock)."}]}`, nil
	case strings.Contains(prompt, `"suggestions"`):
		return `{"planText":"# Implementation Plan (mock)\n\nA generated placeholder plan.","suggestions":[{"id":"","title":"Add user accounts","description":"Basic signup and login.","category":"feature","selected":false}]}`, nil
	default:
		return "One-shot build prompt (mock).", nil
	}
}
