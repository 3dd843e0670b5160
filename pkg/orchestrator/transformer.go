package orchestrator

import (
	"context"

	"github.com/goliatone/go-formbind/pkg/model"
)

// Transformer mutates a page copy before UI schema decorators run.
// Implementations can relabel fields, inject metadata, or reorder nodes.
type Transformer interface {
	Transform(ctx context.Context, page *model.Page) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, page *model.Page) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, page *model.Page) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, page)
}
