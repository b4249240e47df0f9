package hclcfg

import "github.com/hashicorp/hcl/v2"

// bundleBlock represents a `bundle` block: one selective bundling job.
type bundleBlock struct {
	Name    string   `hcl:"name,label"`
	Schemas []string `hcl:"schemas"`
	Output  string   `hcl:"output"`
	Package string   `hcl:"package,optional"`
}

// registryBlock represents a `registry` block: one full-registry artifact.
type registryBlock struct {
	Name    string         `hcl:"name,label"`
	Output  string         `hcl:"output"`
	Version hcl.Expression `hcl:"version,optional"`
}

// rootSchema is the top-level structure of a bundle config file.
type rootSchema struct {
	StorePath  string           `hcl:"store_path,optional"`
	BaseURL    string           `hcl:"base_url,optional"`
	Bundles    []*bundleBlock   `hcl:"bundle,block"`
	Registries []*registryBlock `hcl:"registry,block"`
}
