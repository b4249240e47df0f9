// Package testutil provides shared fixtures for building throwaway schema
// stores in tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteSchema writes a metadata document and its script files into a store
// rooted at root, under <root>/<kind>/<slug>/.
func WriteSchema(t *testing.T, root, kind, slug, doc string, scripts map[string]string) {
	t.Helper()

	dir := filepath.Join(root, kind, slug)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.json"), []byte(doc), 0o600))
	for name, body := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
}

// TypeDoc returns a minimal color type document with the given conversions.
// Each conversion pair is (source, target, scriptFile).
func TypeDoc(slug string, conversions ...[3]string) string {
	doc := fmt.Sprintf(`{"kind": "type", "id": %q, "name": %q`, slug, slug)
	if len(conversions) > 0 {
		doc += `, "conversions": [`
		for i, c := range conversions {
			if i > 0 {
				doc += ", "
			}
			doc += fmt.Sprintf(`{"source": %q, "target": %q, "lossless": true, "script": {"file": %q}}`, c[0], c[1], c[2])
		}
		doc += `]`
	}
	return doc + `}`
}

// FunctionDoc returns a minimal function document requiring the given
// schema references.
func FunctionDoc(slug, scriptFile string, requires ...string) string {
	doc := fmt.Sprintf(`{"kind": "function", "id": %q, "keyword": %q, "script": {"file": %q}`, slug, slug, scriptFile)
	if len(requires) > 0 {
		doc += `, "requires": [`
		for i, r := range requires {
			if i > 0 {
				doc += ", "
			}
			doc += fmt.Sprintf("%q", r)
		}
		doc += `]`
	}
	return doc + `}`
}
