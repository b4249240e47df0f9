// Package schema defines the format-agnostic model for registry schema
// documents: color-space types and manipulation functions.
//
// A document's on-disk shape is a flat JSON object discriminated by its
// "kind" field. Decoding splits it into a tagged union (Type or Function
// payload) so every consumer dispatches on Kind exhaustively instead of
// probing for payload fields at runtime.
package schema
