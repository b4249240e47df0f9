// Package store reads schema documents and script files from an on-disk
// schema store. It is pure read-only I/O: no graph logic, no caching, no
// mutation of the store, which keeps loads idempotent and concurrent
// bundling runs independent.
package store
