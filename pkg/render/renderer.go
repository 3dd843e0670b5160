package render

import (
	"context"

	"github.com/goliatone/go-formbind/pkg/model"
)

// Renderer converts an app page into a byte representation (HTML, plain
// text for terminals, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page model.Page, options RenderOptions) ([]byte, error)
}
