package bundle

import (
	"context"
	"time"

	"github.com/vk/chromabundle/internal/ctxlog"
	"github.com/vk/chromabundle/internal/ref"
	"github.com/vk/chromabundle/internal/schema"
)

// Scanner enumerates every schema document a store declares. The store
// satisfies this; Scan fails on duplicate identities.
type Scanner interface {
	Scan(ctx context.Context) ([]ref.Ref, error)
}

// RegistryMetadata describes a full-registry artifact.
type RegistryMetadata struct {
	TotalSchemas int       `json:"totalSchemas"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// Registry is the full-registry output artifact: every document in the
// store, fully inlined, grouped by kind.
type Registry struct {
	Version   string             `json:"version"`
	Types     []*schema.Document `json:"types"`
	Functions []*schema.Document `json:"functions"`
	Metadata  RegistryMetadata   `json:"metadata"`
}

// BuildRegistry walks the entire store and assembles the full-registry
// artifact. Unlike selective bundling there is no dependency walk: every
// document the store declares is included and inlined. A duplicate
// (kind, identifier) in the store fails the scan, and any unreadable script
// file fails the build.
func BuildRegistry(ctx context.Context, src Source, scanner Scanner, version string, baseURL string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building full registry artifact.", "version", version)

	refs, err := scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	reg := &Registry{
		Version:   version,
		Types:     []*schema.Document{},
		Functions: []*schema.Document{},
		Metadata: RegistryMetadata{
			TotalSchemas: len(refs),
			GeneratedAt:  time.Now().UTC(),
		},
	}

	for _, rr := range refs {
		doc, err := src.Load(ctx, rr)
		if err != nil {
			return nil, err
		}
		inlined, err := Inline(ctx, src, rr, doc, baseURL)
		if err != nil {
			return nil, err
		}
		switch rr.Kind {
		case schema.KindType:
			reg.Types = append(reg.Types, inlined)
		case schema.KindFunction:
			reg.Functions = append(reg.Functions, inlined)
		}
	}

	logger.Info("Full registry artifact built.",
		"version", version,
		"types", len(reg.Types),
		"functions", len(reg.Functions))
	return reg, nil
}
