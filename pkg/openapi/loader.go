package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Load parses and validates an encoded document, e.g. one fetched from a
// running server's /openapi.json.
func Load(ctx context.Context, raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return Document{}, fmt.Errorf("openapi: validate: %w", err)
	}

	var operations []Operation
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if op == nil {
					continue
				}
				operations = append(operations, Operation{
					ID:         op.OperationID,
					Method:     strings.ToUpper(method),
					Path:       path,
					Summary:    op.Summary,
					Extensions: op.Extensions,
				})
			}
		}
	}
	return newDocument(raw, operations)
}
