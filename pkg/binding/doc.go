// Package binding implements the declarative field-to-parameter binding: an
// ordered list of input fields maps onto the positional parameters of a
// backend function, and an ordered list of output fields maps onto its
// positional results.
//
// The signature is inspected once in New. Arity mismatches (inputs vs
// parameters, outputs vs results) and kind mismatches (a checkbox feeding a
// string parameter, a text result written to a number field) are rejected
// there as *ConfigError, so a registered binding can only fail at invocation
// time because of user input (*ArgumentError), a function error, or a
// recovered panic (*PanicError).
//
// Invocation is a single synchronous call. Overlapping invocations are not
// coordinated; backend functions are expected to be pure.
package binding
