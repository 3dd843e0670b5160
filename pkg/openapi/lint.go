package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formbind/pkg/model"
)

const extensionNamespace = "x-formbind"

// Violation is one lint finding on an operation.
type Violation struct {
	Operation string
	Key       string
	Message   string
}

func (v Violation) String() string {
	if v.Key == "" {
		return fmt.Sprintf("%s: %s", v.Operation, v.Message)
	}
	return fmt.Sprintf("%s > %s: %s", v.Operation, v.Key, v.Message)
}

// Lint checks the x-formbind extensions of every operation: only known keys,
// a valid trigger, string lists for inputs and outputs, and a binding on
// every event route. Findings are sorted by operation and key.
func Lint(doc Document) []Violation {
	var result []Violation
	for _, op := range doc.Operations() {
		result = append(result, lintOperation(op)...)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Operation == result[j].Operation {
			if result[i].Key == result[j].Key {
				return result[i].Message < result[j].Message
			}
			return result[i].Key < result[j].Key
		}
		return result[i].Operation < result[j].Operation
	})
	return result
}

func lintOperation(op Operation) []Violation {
	name := op.ID
	if name == "" {
		name = op.Method + " " + op.Path
	}

	var result []Violation
	add := func(key, format string, args ...any) {
		result = append(result, Violation{Operation: name, Key: key, Message: fmt.Sprintf(format, args...)})
	}

	for key, value := range op.Extensions {
		if !strings.HasPrefix(key, extensionNamespace) {
			continue
		}
		switch key {
		case extensionBinding, extensionSource:
			if s, ok := value.(string); !ok || strings.TrimSpace(s) == "" {
				add(key, "must be a non-empty string (got %T)", value)
			}
		case extensionTrigger:
			s, _ := value.(string)
			if !model.Trigger(s).Valid() {
				add(key, "unsupported trigger %v", value)
			}
		case extensionInputs, extensionOutputs:
			if _, ok := stringList(value); !ok {
				add(key, "must be a list of field IDs (got %T)", value)
			}
		default:
			add(key, "unsupported extension (supported: %s)", strings.Join(supportedExtensions(), ", "))
		}
	}

	if isEventOperation(op.ID) {
		binding, _ := op.Extensions[extensionBinding].(string)
		if binding == "" {
			add(extensionBinding, "event route carries no binding")
		} else if !strings.HasSuffix(op.Path, "/"+binding) {
			add(extensionBinding, "binding %q does not match path %s", binding, op.Path)
		}
	}
	return result
}

func isEventOperation(id string) bool {
	return strings.HasPrefix(id, "event-") || strings.HasPrefix(id, "api-event-")
}

func stringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func supportedExtensions() []string {
	return []string{extensionBinding, extensionInputs, extensionOutputs, extensionSource, extensionTrigger}
}
