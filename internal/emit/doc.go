// Package emit serializes bundling results into their output artifact
// shapes: the full-registry JSON document and the importable Go module
// generated from a selective bundle.
package emit
