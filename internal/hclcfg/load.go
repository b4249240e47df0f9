package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/chromabundle/internal/ctxlog"
)

// DefaultRegistryVersion is stamped into registry artifacts when the config
// does not pin one.
const DefaultRegistryVersion = "0.0.0-dev"

// Load parses a bundle config file and translates it into the agnostic model.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading bundle config.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root rootSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	model, err := translate(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	logger.Debug("Bundle config loaded.", "bundles", len(model.Bundles), "registries", len(model.Registries))
	return model, nil
}

// translate converts the HCL-specific schema into the agnostic model,
// evaluating expression attributes to concrete values.
func translate(root *rootSchema) (*Model, error) {
	model := &Model{
		StorePath: root.StorePath,
		BaseURL:   root.BaseURL,
	}

	for _, b := range root.Bundles {
		if len(b.Schemas) == 0 {
			return nil, fmt.Errorf("bundle %q lists no schemas", b.Name)
		}
		if b.Output == "" {
			return nil, fmt.Errorf("bundle %q has no output path", b.Name)
		}
		model.Bundles = append(model.Bundles, &BundleJob{
			Name:    b.Name,
			Schemas: append([]string(nil), b.Schemas...),
			Output:  b.Output,
			Package: b.Package,
		})
	}

	for _, r := range root.Registries {
		if r.Output == "" {
			return nil, fmt.Errorf("registry %q has no output path", r.Name)
		}
		version := DefaultRegistryVersion
		if r.Version != nil {
			val, diags := r.Version.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("registry %q: invalid version expression: %w", r.Name, diags)
			}
			if !val.IsNull() {
				if val.Type() != cty.String {
					return nil, fmt.Errorf("registry %q: version must be a string, got %s", r.Name, val.Type().FriendlyName())
				}
				version = val.AsString()
			}
		}
		model.Registries = append(model.Registries, &RegistryJob{
			Name:    r.Name,
			Output:  r.Output,
			Version: version,
		})
	}

	return model, nil
}
