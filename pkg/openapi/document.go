package openapi

import (
	"errors"
	"sort"
)

// Document wraps the encoded OpenAPI payload together with the operations it
// declares. By exposing this type instead of kin-openapi structs the public
// API stays decoupled from the library.
type Document struct {
	raw        []byte
	operations []Operation
}

// Operation is the subset of operation metadata callers need to list or test
// routes.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
	// Extensions holds the operation's x- properties. Loaded documents carry
	// decoded JSON values ([]any rather than []string).
	Extensions map[string]any
}

func newDocument(raw []byte, operations []Operation) (Document, error) {
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	ops := append([]Operation(nil), operations...)
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path == ops[j].Path {
			return ops[i].Method < ops[j].Method
		}
		return ops[i].Path < ops[j].Path
	})
	return Document{raw: append([]byte(nil), raw...), operations: ops}, nil
}

// Raw returns a copy of the JSON payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Operations lists the declared operations sorted by path and method.
func (d Document) Operations() []Operation {
	return append([]Operation(nil), d.operations...)
}

// Operation looks up an operation by ID.
func (d Document) Operation(id string) (Operation, bool) {
	for _, op := range d.operations {
		if op.ID == id {
			return op, true
		}
	}
	return Operation{}, false
}
