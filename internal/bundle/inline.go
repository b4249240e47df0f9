package bundle

import (
	"context"
	"fmt"

	"github.com/vk/chromabundle/internal/ctxlog"
	"github.com/vk/chromabundle/internal/ref"
	"github.com/vk/chromabundle/internal/schema"
)

// DefaultBaseURL is the registry root used to qualify identifiers when the
// caller does not supply one.
const DefaultBaseURL = "https://registry.chromabundle.dev/schemas"

// ScriptMissingError reports a script file that could not be read while
// inlining a document. Unlike a missing schema dependency this is always
// fatal: a partially-inlined document indicates a corrupt store and must
// never be emitted.
type ScriptMissingError struct {
	Ref  ref.Ref
	File string
	Err  error
}

func (e *ScriptMissingError) Error() string {
	return fmt.Sprintf("schema %s references script file %q that cannot be read: %v", e.Ref.Key(), e.File, e.Err)
}

func (e *ScriptMissingError) Unwrap() error {
	return e.Err
}

// Source is everything the bundler needs from the schema store: document
// loading for the dependency walk and script reading for inlining.
type Source interface {
	Load(ctx context.Context, r ref.Ref) (*schema.Document, error)
	ReadScript(ctx context.Context, r ref.Ref, name string) (string, error)
}

// Inline returns a copy of doc in which every external script reference is
// replaced with the literal script body read from the schema's own store
// directory, and every cross-schema identifier is rewritten to a
// fully-qualified registry URI under baseURL.
//
// Inlining is purely textual: script bodies are not parsed or validated.
// Rewriting is idempotent, an identifier that already carries a scheme is
// left alone, and the $self sentinel is never touched.
func Inline(ctx context.Context, src Source, r ref.Ref, doc *schema.Document, baseURL string) (*schema.Document, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	out := doc.Clone()

	for _, script := range out.ScriptRefs() {
		if script.Inlined() {
			continue
		}
		if script.File == "" {
			return nil, &ScriptMissingError{Ref: r, File: "", Err: fmt.Errorf("script reference has neither file nor source")}
		}
		body, err := src.ReadScript(ctx, r, script.File)
		if err != nil {
			return nil, &ScriptMissingError{Ref: r, File: script.File, Err: err}
		}
		script.Source = body
		script.File = ""
	}

	switch out.Kind {
	case schema.KindType:
		for i := range out.Type.Conversions {
			conv := &out.Type.Conversions[i]
			conv.Source = qualify(conv.Source, baseURL)
			conv.Target = qualify(conv.Target, baseURL)
		}
	case schema.KindFunction:
		for i, req := range out.Function.Requires {
			out.Function.Requires[i] = qualify(req, baseURL)
		}
	}

	ctxlog.FromContext(ctx).Debug("Inlined schema document.", "schema", r.Key())
	return out, nil
}

// qualify rewrites a cross-schema identifier into its fully-qualified form.
// $self, already-qualified URIs, and identifiers that do not parse are
// returned unchanged; the resolver has already warned about the latter.
func qualify(raw string, baseURL string) string {
	if raw == schema.SelfRef || ref.Qualified(raw) {
		return raw
	}
	r, err := ref.Parse(raw)
	if err != nil {
		return raw
	}
	return r.QualifiedURI(baseURL)
}
