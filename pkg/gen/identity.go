// pkg/gen/identity.go

package gen

import (
	"strings"

	"github.com/google/uuid"

	"webplanner/pkg/plan/types"
)

// EnsureUniqueSuggestionIDs repairs suggestion identity in a plan document:
// a missing id, or one already seen earlier in the list, is replaced with a
// fresh uuid. Order and every other field are preserved.
func EnsureUniqueSuggestionIDs(content types.PlanContent) types.PlanContent {
	if len(content.Suggestions) == 0 {
		return content
	}
	seen := make(map[string]struct{}, len(content.Suggestions))
	out := make([]types.Suggestion, len(content.Suggestions))
	for i, s := range content.Suggestions {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			id = uuid.NewString()
		} else if _, dup := seen[id]; dup {
			id = uuid.NewString()
		}
		seen[id] = struct{}{}
		s.ID = id
		out[i] = s
	}
	content.Suggestions = out
	return content
}
