package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath is an optional HCL bundle-config file. Ad-hoc flags below
	// are used when it is absent.
	ConfigPath string

	StorePath      string // schema store root
	Schemas        []string
	Output         string // ad-hoc selective bundle output, empty means stdout
	RegistryOutput string // ad-hoc full-registry output
	BaseURL        string
	Version        string
	PrintTree      bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config. At least one job source must be present: a
// config file, requested schemas, or a registry output path.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && len(cfg.Schemas) == 0 && cfg.RegistryOutput == "" {
		return nil, errors.New("nothing to do: provide a config file, -schema flags, or -registry")
	}
	if cfg.StorePath == "" {
		return nil, errors.New("store path cannot be empty")
	}
	return &cfg, nil
}
