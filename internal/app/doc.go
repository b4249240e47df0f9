// Package app wires the bundler together: it assembles the job model from
// the CLI flags and the optional HCL config file, opens the schema store,
// and runs each registry and bundle job to produce its output artifact.
package app
