// pkg/gen/sanitize.go

package gen

import "regexp"

// Diagram renderers treat HTML-style comments inside fenced diagram blocks as
// syntax errors, and models like to leave them in.
var (
	diagramBlockRe = regexp.MustCompile("(?s)```(?:mermaid|plantuml|dot|graphviz)[^\n]*\n.*?```")
	htmlCommentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// StripDiagramComments removes HTML comment delimiters from the interior of
// every fenced diagram block in planText. Text outside diagram blocks is left
// untouched.
func StripDiagramComments(planText string) string {
	return diagramBlockRe.ReplaceAllStringFunc(planText, func(block string) string {
		return htmlCommentRe.ReplaceAllString(block, "")
	})
}
