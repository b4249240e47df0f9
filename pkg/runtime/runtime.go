// Package runtime holds the configuration object that bundled schema
// modules register themselves against.
//
// The bundler core never calls into this package; it only generates code
// that does. It lives under pkg/ because generated modules outside this
// repository import it.
package runtime

import "fmt"

// Entry is one bundled schema: its fully-qualified registry URI and the
// fully-inlined document as JSON text.
type Entry struct {
	URI    string
	Schema string
}

// Config collects registered schemas for a DSL interpreter instance.
type Config struct {
	schemas map[string]string
	order   []string
}

// NewConfig returns an empty runtime configuration.
func NewConfig() *Config {
	return &Config{schemas: make(map[string]string)}
}

// Register adds a schema under its URI. Registering the same URI twice
// indicates a corrupt bundle and panics rather than silently overwriting.
func (c *Config) Register(uri string, schema string) {
	if _, exists := c.schemas[uri]; exists {
		panic(fmt.Sprintf("schema with URI '%s' already registered", uri))
	}
	c.schemas[uri] = schema
	c.order = append(c.order, uri)
}

// Schema returns the schema registered under uri.
func (c *Config) Schema(uri string) (string, bool) {
	s, ok := c.schemas[uri]
	return s, ok
}

// URIs returns every registered URI in registration order.
func (c *Config) URIs() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of registered schemas.
func (c *Config) Len() int {
	return len(c.order)
}
