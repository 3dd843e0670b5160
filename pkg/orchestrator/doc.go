// Package orchestrator wires the decorate → theme → render pipeline for a
// built app so callers can turn an app into HTML or terminal text with a
// single call.
package orchestrator
