// Package resolver walks the schema dependency graph.
//
// Given a set of requested schemas it discovers the full transitive closure
// of required schemas: conversion endpoints for color types, explicit
// requirement lists for functions. The walk is memoized on a visited set
// keyed by "kind:identifier", which both deduplicates shared dependencies
// and terminates cycles.
//
// Missing or unresolvable dependencies degrade to warnings on the result's
// Diagnostics, so that as much as is resolvable still gets bundled. A
// missing requested schema is a hard error.
package resolver
