package bundle

import (
	"context"
	"fmt"

	"github.com/vk/chromabundle/internal/ctxlog"
	"github.com/vk/chromabundle/internal/ref"
	"github.com/vk/chromabundle/internal/resolver"
	"github.com/vk/chromabundle/internal/schema"
)

// Document pairs a fully-inlined schema document with its reference and the
// fully-qualified URI it will be registered under.
type Document struct {
	Ref    ref.Ref
	URI    string
	Schema *schema.Document
}

// Result is the outcome of one selective bundling invocation. It is created
// fresh per invocation and immutable once returned; there is no cache shared
// across invocations, which keeps runs reproducible.
type Result struct {
	// RequestedSchemas holds the canonical "kind/identifier" paths the
	// caller asked for, in request order.
	RequestedSchemas []string
	// ResolvedDependencies holds the sorted, deduplicated canonical paths
	// of every schema in the transitive closure, one per (kind, identifier)
	// pair. It is always a superset of RequestedSchemas and its length
	// equals len(Documents).
	ResolvedDependencies []string
	// Documents holds exactly one fully-inlined document per resolved
	// schema, sorted by reference key.
	Documents []Document
	// Resolution carries the dependency tree and the warnings recorded
	// while walking.
	Resolution *resolver.Result
}

// Selective resolves the transitive dependency closure of the requested
// schemas, inlines every document in the closure, and assembles the bundle.
//
// Discovery-phase problems (missing or unresolvable dependencies) surface as
// warnings on the result; inlining-phase problems on documents in the
// resolved set abort the whole operation. The caller receives either a
// complete bundle or an error, never a partially-inlined artifact.
func Selective(ctx context.Context, src Source, requested []ref.Ref, baseURL string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Selective bundling started.", "requested", len(requested))

	res, err := resolver.Resolve(ctx, src, requested)
	if err != nil {
		return nil, err
	}

	refs := res.Refs()
	docs := make([]Document, 0, len(refs))
	for _, rr := range refs {
		doc, err := src.Load(ctx, rr)
		if err != nil {
			// The walk already loaded this schema once; failing now means
			// the store changed under us.
			return nil, fmt.Errorf("failed to reload resolved schema %s: %w", rr.Key(), err)
		}
		inlined, err := Inline(ctx, src, rr, doc, baseURL)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{
			Ref:    rr,
			URI:    rr.QualifiedURI(effectiveBaseURL(baseURL)),
			Schema: inlined,
		})
	}

	requestedIDs := make([]string, 0, len(requested))
	for _, r := range requested {
		requestedIDs = append(requestedIDs, r.Path())
	}

	out := &Result{
		RequestedSchemas:     requestedIDs,
		ResolvedDependencies: res.Identifiers(),
		Documents:            docs,
		Resolution:           res,
	}
	logger.Info("Selective bundle assembled.",
		"requested", len(requestedIDs),
		"resolved", len(out.ResolvedDependencies),
		"documents", len(out.Documents),
		"warnings", len(res.Diagnostics.Warnings()))
	return out, nil
}

func effectiveBaseURL(baseURL string) string {
	if baseURL == "" {
		return DefaultBaseURL
	}
	return baseURL
}
