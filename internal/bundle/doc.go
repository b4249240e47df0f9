// Package bundle turns resolved schema sets into self-contained artifacts.
//
// The inliner replaces every external script reference with its literal body
// and rewrites cross-schema identifiers into fully-qualified registry URIs.
// On top of it sit the two bundling modes: Selective, which walks the
// dependency graph from a requested set, and BuildRegistry, which takes the
// whole store.
//
// The error policy is asymmetric on purpose. A dependency that cannot be
// found during discovery degrades to a warning, because the goal is to
// bundle as much as is resolvable. A script file that cannot be read while
// inlining a document in the resolved set aborts the whole run, because a
// partially-inlined schema is worse than no schema.
package bundle
