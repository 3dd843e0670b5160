package binding

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrArity reports a mismatch between field lists and a function signature.
var ErrArity = errors.New("binding: arity mismatch")

// ConfigError reports an invalid binding declaration. It is returned at
// registration time; a binding that registered successfully never fails with
// a ConfigError later.
type ConfigError struct {
	Binding string
	Reason  string
	Err     error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("binding")
	if e.Binding != "" {
		fmt.Fprintf(&b, " %q", e.Binding)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ArgumentError reports an input value that could not be converted or
// validated. Index is the position in the binding inputs; FieldID is set once
// the binding resolves the position to a field.
type ArgumentError struct {
	Index   int
	FieldID string
	Err     error
}

func (e *ArgumentError) Error() string {
	if e.FieldID != "" {
		return fmt.Sprintf("binding: input %q: %v", e.FieldID, e.Err)
	}
	return fmt.Sprintf("binding: argument %d: %v", e.Index, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic recovered from a backend function.
type PanicError struct {
	Func  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("binding: %s panicked: %v", e.Func, e.Value)
}

// FieldErrors flattens an invocation error into messages keyed by field ID
// plus form-level messages. Argument errors land on their field; everything
// else is form-level.
func FieldErrors(err error) (map[string][]string, []string) {
	if err == nil {
		return nil, nil
	}
	fields := make(map[string][]string)
	var form []string
	collectFieldErrors(err, fields, &form)
	if len(fields) == 0 {
		fields = nil
	}
	return fields, form
}

func collectFieldErrors(err error, fields map[string][]string, form *[]string) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			collectFieldErrors(inner, fields, form)
		}
		return
	}
	var argErr *ArgumentError
	if errors.As(err, &argErr) && argErr.FieldID != "" {
		fields[argErr.FieldID] = append(fields[argErr.FieldID], argErr.Err.Error())
		return
	}
	*form = append(*form, err.Error())
}

// ValidationError lets a backend function reject its inputs with messages
// keyed by field ID, JSON pointer ("/data/0") or form-level keys. Servers
// resolve the keys against the page before showing them.
type ValidationError struct {
	Payload map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Payload))
	for key := range e.Payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, strings.Join(e.Payload[key], "; ")))
	}
	return "binding: validation failed: " + strings.Join(parts, ", ")
}
