package resolver

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/chromabundle/internal/ctxlog"
	"github.com/vk/chromabundle/internal/diag"
	"github.com/vk/chromabundle/internal/ref"
	"github.com/vk/chromabundle/internal/schema"
)

// Loader loads one schema document by reference. The store satisfies this;
// tests substitute in-memory fakes.
type Loader interface {
	Load(ctx context.Context, r ref.Ref) (*schema.Document, error)
}

// Node is one node in the resolved dependency graph. It is built once during
// resolution and never mutated afterwards.
type Node struct {
	Kind         schema.Kind
	Identifier   string
	Dependencies []ref.Ref
}

// Result is the outcome of a dependency walk: the deduplicated identifier
// sets per kind, the dependency tree for display, and the warnings raised
// for edges that had to be dropped.
type Result struct {
	Roots               []ref.Ref
	TypeIdentifiers     map[string]struct{}
	FunctionIdentifiers map[string]struct{}
	Tree                map[string]*Node
	Diagnostics         diag.Diagnostics
}

// Refs returns every resolved schema as a reference, sorted by key. The
// underlying sets are order-independent; sorting happens here, at the
// display/consumption boundary.
func (r *Result) Refs() []ref.Ref {
	refs := make([]ref.Ref, 0, len(r.TypeIdentifiers)+len(r.FunctionIdentifiers))
	for id := range r.TypeIdentifiers {
		refs = append(refs, ref.Ref{Kind: schema.KindType, Identifier: id, RawURI: id})
	}
	for id := range r.FunctionIdentifiers {
		refs = append(refs, ref.Ref{Kind: schema.KindFunction, Identifier: id, RawURI: id})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Key() < refs[j].Key() })
	return refs
}

// Identifiers returns the sorted, deduplicated canonical "kind/identifier"
// paths of every resolved schema. Uniqueness is per (kind, identifier): a
// type and a function sharing a slug are two entries.
func (r *Result) Identifiers() []string {
	ids := make([]string, 0, len(r.TypeIdentifiers)+len(r.FunctionIdentifiers))
	for _, rr := range r.Refs() {
		ids = append(ids, rr.Path())
	}
	sort.Strings(ids)
	return ids
}

// Contains reports whether the resolved set includes the given reference.
func (r *Result) Contains(rr ref.Ref) bool {
	switch rr.Kind {
	case schema.KindType:
		_, ok := r.TypeIdentifiers[rr.Identifier]
		return ok
	case schema.KindFunction:
		_, ok := r.FunctionIdentifiers[rr.Identifier]
		return ok
	}
	return false
}

// workItem pairs a loaded document with its graph node for expansion.
type workItem struct {
	ref  ref.Ref
	doc  *schema.Document
	node *Node
}

// Resolve walks the dependency graph from the given seeds and returns the
// full transitive closure of required schemas.
//
// Seeds that cannot be loaded are fatal. Dependencies discovered during the
// walk degrade gracefully: an unresolvable or missing dependency drops that
// edge with a warning, and the walk still returns everything that was
// resolvable elsewhere. Cycles terminate via the visited set; a schema is
// never expanded twice.
func Resolve(ctx context.Context, loader Loader, seeds []ref.Ref) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolve: starting dependency walk.", "seeds", len(seeds))

	res := &Result{
		TypeIdentifiers:     make(map[string]struct{}),
		FunctionIdentifiers: make(map[string]struct{}),
		Tree:                make(map[string]*Node),
	}

	visited := make(map[string]struct{})
	failed := make(map[string]struct{})
	var stack []workItem

	// Seeds are what the caller explicitly asked for: a missing seed is a
	// hard error, never a warning.
	for _, seed := range seeds {
		if _, ok := visited[seed.Key()]; ok {
			continue
		}
		visited[seed.Key()] = struct{}{}

		doc, err := loader.Load(ctx, seed)
		if err != nil {
			return nil, fmt.Errorf("failed to load requested schema %s: %w", seed.Key(), err)
		}
		node := &Node{Kind: seed.Kind, Identifier: seed.Identifier}
		res.addSchema(seed, node)
		res.Roots = append(res.Roots, seed)
		stack = append(stack, workItem{ref: seed, doc: doc, node: node})
	}

	// Explicit worklist instead of recursion: registry sizes are small, but
	// a pathological store must not blow the stack.
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		seenEdges := make(map[string]struct{})
		for _, raw := range requirementEdges(item.doc) {
			edge, err := ref.Parse(raw)
			if err != nil {
				logger.Warn("Dropping unresolvable dependency reference.", "schema", item.ref.Key(), "reference", raw, "error", err)
				res.Diagnostics.Warnf(diag.CodeUnresolvableReference, raw, "dropped dependency of %s: %v", item.ref.Key(), err)
				continue
			}

			key := edge.Key()
			if _, dup := seenEdges[key]; dup {
				continue
			}
			seenEdges[key] = struct{}{}

			if _, ok := visited[key]; ok {
				// Already expanded or already known missing. Either way the
				// subtree is not walked again; the edge is only recorded if
				// the target actually resolved.
				if _, bad := failed[key]; !bad {
					item.node.Dependencies = append(item.node.Dependencies, edge)
				}
				continue
			}
			visited[key] = struct{}{}

			doc, err := loader.Load(ctx, edge)
			if err != nil {
				failed[key] = struct{}{}
				logger.Warn("Dropping missing dependency.", "schema", item.ref.Key(), "dependency", key, "error", err)
				res.Diagnostics.Warnf(diag.CodeSchemaNotFound, key, "dropped dependency of %s: %v", item.ref.Key(), err)
				continue
			}

			node := &Node{Kind: edge.Kind, Identifier: edge.Identifier}
			res.addSchema(edge, node)
			item.node.Dependencies = append(item.node.Dependencies, edge)
			stack = append(stack, workItem{ref: edge, doc: doc, node: node})
		}
	}

	logger.Debug("Resolve: dependency walk complete.",
		"types", len(res.TypeIdentifiers),
		"functions", len(res.FunctionIdentifiers),
		"warnings", len(res.Diagnostics.Warnings()))
	return res, nil
}

func (r *Result) addSchema(rr ref.Ref, node *Node) {
	switch rr.Kind {
	case schema.KindType:
		r.TypeIdentifiers[rr.Identifier] = struct{}{}
	case schema.KindFunction:
		r.FunctionIdentifiers[rr.Identifier] = struct{}{}
	}
	r.Tree[rr.Key()] = node
}

// requirementEdges extracts the raw dependency references of a document:
// conversion endpoints for a type, the requires list for a function. The
// $self sentinel denotes the document itself and is never an edge.
func requirementEdges(doc *schema.Document) []string {
	var edges []string
	switch doc.Kind {
	case schema.KindType:
		for _, conv := range doc.Type.Conversions {
			if conv.Source != schema.SelfRef {
				edges = append(edges, conv.Source)
			}
			if conv.Target != schema.SelfRef {
				edges = append(edges, conv.Target)
			}
		}
	case schema.KindFunction:
		edges = append(edges, doc.Function.Requires...)
	}
	return edges
}
