// Package ref parses schema reference strings into normalized
// (kind, identifier) pairs.
//
// References appear in three shapes across the registry: fully-qualified
// URIs, relative category paths, and bare slugs. Every consumer of a
// reference goes through Parse so that the dedup key and the qualification
// rules live in exactly one place.
package ref
