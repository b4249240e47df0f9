package hclcfg

// BundleJob is one selective bundling job from the config file.
type BundleJob struct {
	Name    string
	Schemas []string
	Output  string
	Package string
}

// RegistryJob is one full-registry artifact job from the config file.
type RegistryJob struct {
	Name    string
	Output  string
	Version string
}

// Model is the format-agnostic configuration model the app consumes. The
// HCL-specific shapes never leave this package.
type Model struct {
	StorePath  string
	BaseURL    string
	Bundles    []*BundleJob
	Registries []*RegistryJob
}
