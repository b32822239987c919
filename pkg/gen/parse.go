// pkg/gen/parse.go

package gen

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Matches a fenced code block with an optional language tag and captures its
// interior. Models often wrap the requested JSON in one of these.
var fencedBlockRe = regexp.MustCompile("(?s)```[a-zA-Z0-9]*[ \t]*\r?\n(.*?)```")

// ParseStructuredResponse decodes an AI completion that was asked for strict
// JSON. Stage one is a direct unmarshal of the whole response; stage two
// extracts the first fenced code block and unmarshals its contents. Returns
// false when neither stage yields valid JSON for v.
func ParseStructuredResponse(raw string, v any) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return true
	}
	m := fencedBlockRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	return json.Unmarshal([]byte(strings.TrimSpace(m[1])), v) == nil
}

// strictUnmarshal is the single-stage variant for capabilities with no
// fenced-block fallback.
func strictUnmarshal(raw string, v any) error {
	return json.Unmarshal([]byte(strings.TrimSpace(raw)), v)
}
