// Package hclcfg loads chromabundle's HCL bundle-config files.
//
// A config file names the schema store, the registry base URL, and a set of
// jobs: `bundle` blocks for selective bundles and `registry` blocks for
// full-registry artifacts. The HCL-specific structures are decoded here and
// translated into a format-agnostic Model before the rest of the
// application sees them.
package hclcfg
