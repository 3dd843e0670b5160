// Package uischema loads UI overlays that relabel an app without touching its
// code: page title and description, field labels, placeholders, help texts
// and widget hints, and button labels, variants and icons. Overlays are YAML
// or JSON documents keyed by app name and are applied as a model.Decorator.
package uischema
