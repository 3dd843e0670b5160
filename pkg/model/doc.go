// Package model defines the typed UI model shared by bindings, apps and
// renderers. A Field describes one input or output element (textbox, number,
// slider, dropdown, radio, checkbox, markdown) with a stable ID, a label and an
// optional default. Fields are immutable once an app is built; only their
// current value changes, and that value lives in the event source (an HTTP
// submission or a terminal prompt), never on the Field itself.
//
// Page is the renderable component tree: layout containers (rows, columns,
// groups) holding fields, buttons and markdown blocks, plus the list of event
// subscriptions renderers need to wire triggers to bindings.
//
// CoerceValue and Validate convert submitted values (raw form text or decoded
// JSON) into each field's value domain: string, float64 or bool.
package model
