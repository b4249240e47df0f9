package emit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/template"

	"github.com/vk/chromabundle/internal/bundle"
	"github.com/vk/chromabundle/internal/ctxlog"
)

// DefaultModulePackage is the package name for generated modules when the
// config does not choose one.
const DefaultModulePackage = "schemas"

var moduleTemplate = template.Must(template.New("module").Parse(`// Code generated by chromabundle. DO NOT EDIT.

// Package {{.Package}} bundles {{.Count}} schema document(s) for registration
// against a runtime configuration.
package {{.Package}}

import "github.com/vk/chromabundle/pkg/runtime"

// Entries holds every schema in this bundle, fully inlined.
var Entries = []runtime.Entry{
{{- range .Entries}}
	{
		URI:    {{.URI}},
		Schema: {{.Schema}},
	},
{{- end}}
}

// NewRuntime returns a fresh runtime configuration with every bundled
// schema registered.
func NewRuntime() *runtime.Config {
	cfg := runtime.NewConfig()
	for _, e := range Entries {
		cfg.Register(e.URI, e.Schema)
	}
	return cfg
}
`))

type moduleEntry struct {
	URI    string
	Schema string
}

type moduleData struct {
	Package string
	Count   int
	Entries []moduleEntry
}

// WriteModule generates an importable Go module from a selective bundle: a
// source file exporting the bundled schemas as a literal array plus a
// factory that registers all of them. The exported array has exactly one
// entry per resolved dependency and every URI in it is unique and fully
// qualified.
func WriteModule(ctx context.Context, w io.Writer, pkg string, res *bundle.Result) error {
	if pkg == "" {
		pkg = DefaultModulePackage
	}

	seen := make(map[string]struct{}, len(res.Documents))
	data := moduleData{Package: pkg, Count: len(res.Documents)}
	for _, doc := range res.Documents {
		if _, dup := seen[doc.URI]; dup {
			return fmt.Errorf("bundle contains duplicate URI %s", doc.URI)
		}
		seen[doc.URI] = struct{}{}

		encoded, err := json.Marshal(doc.Schema)
		if err != nil {
			return fmt.Errorf("failed to serialize schema %s: %w", doc.Ref.Key(), err)
		}
		data.Entries = append(data.Entries, moduleEntry{
			URI:    strconv.Quote(doc.URI),
			Schema: strconv.Quote(string(encoded)),
		})
	}

	if err := moduleTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render module source: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Importable module written.", "package", pkg, "entries", data.Count)
	return nil
}
