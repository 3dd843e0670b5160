package vanilla

import (
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	markdownPolicyOnce sync.Once
	markdownPolicy     *bluemonday.Policy
)

// RenderMarkdown converts Markdown text to sanitised HTML. Absolute links
// open in a new tab.
func RenderMarkdown(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	// gomarkdown parsers keep state and must not be reused.
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags,
	})
	raw := markdown.ToHTML([]byte(text), p, renderer)
	return strings.TrimSpace(markdownSanitizer().Sanitize(string(raw)))
}

func markdownSanitizer() *bluemonday.Policy {
	markdownPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		markdownPolicy = policy
	})
	return markdownPolicy
}

func markdownFilter(input any, _ any) (any, error) {
	text, _ := input.(string)
	return RenderMarkdown(text), nil
}
