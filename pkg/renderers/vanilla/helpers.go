package vanilla

import (
	"net/url"
	"strings"
)

func controlID(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ""
	}
	return "fb-" + trimmed
}

func buttonControlID(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ""
	}
	return "fb-btn-" + trimmed
}

// joinURL appends segment to prefix with exactly one slash between them.
func joinURL(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(segment, "/")
}

// resolveLink resolves a relative link against the page path. Absolute
// links and unparsable input are returned as given.
func resolveLink(pagePath, link string) string {
	if strings.TrimSpace(pagePath) == "" {
		return link
	}
	base, err := url.Parse(pagePath)
	if err != nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil || ref.IsAbs() {
		return link
	}
	return base.ResolveReference(ref).String()
}

func languageOf(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return "en"
	}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		return strings.ToLower(locale[:idx])
	}
	return strings.ToLower(locale)
}
