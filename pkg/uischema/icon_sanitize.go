package uischema

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var iconShapes = []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}

var buttonIconPolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AllowElements(append([]string{"svg", "g", "title"}, iconShapes...)...)
	p.AllowAttrs("xmlns", "viewBox", "width", "height", "aria-hidden", "focusable", "role").OnElements("svg")
	p.AllowAttrs("fill", "stroke", "stroke-width", "stroke-linecap", "stroke-linejoin", "class").
		OnElements(append([]string{"svg", "g"}, iconShapes...)...)
	p.AllowAttrs("d", "cx", "cy", "r", "rx", "ry", "x", "y", "x1", "y1", "x2", "y2", "points").
		OnElements(iconShapes...)
	return p
})

// sanitizeIconMarkup keeps inline SVG drawing markup and drops everything
// else. Input that is not an <svg> element yields "".
func sanitizeIconMarkup(raw string) string {
	cleaned := strings.TrimSpace(buttonIconPolicy().Sanitize(strings.TrimSpace(raw)))
	if !strings.HasPrefix(strings.ToLower(cleaned), "<svg") {
		return ""
	}
	return cleaned
}
