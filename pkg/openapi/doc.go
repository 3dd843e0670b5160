// Package openapi describes the HTTP surface of an app as an OpenAPI 3
// document: one form-encoded and one JSON endpoint per binding plus the
// service routes. Documents are built with kin-openapi and validated before
// they are returned; callers only see the Document wrapper.
package openapi
