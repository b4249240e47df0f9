package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/chromabundle/internal/ctxlog"
	"github.com/vk/chromabundle/internal/hclcfg"
	"github.com/vk/chromabundle/internal/store"
)

// App encapsulates the bundler's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	model  *hclcfg.Model
	store  *store.Store
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. Artifacts and tree
// output go to outW; logs go to logW.
func NewApp(outW, logW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := buildModel(ctx, appConfig)
	if err != nil {
		return nil, err
	}

	storePath := model.StorePath
	if storePath == "" {
		storePath = appConfig.StorePath
	}
	logger.Debug("Job model assembled.",
		"store", storePath,
		"bundles", len(model.Bundles),
		"registries", len(model.Registries))

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		model:  model,
		store:  store.New(storePath),
	}, nil
}

// buildModel loads the config file when one is given and folds the ad-hoc
// CLI flags into job entries alongside it.
func buildModel(ctx context.Context, appConfig *Config) (*hclcfg.Model, error) {
	model := &hclcfg.Model{}
	if appConfig.ConfigPath != "" {
		loaded, err := hclcfg.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			return nil, err
		}
		model = loaded
	}

	if model.BaseURL == "" {
		model.BaseURL = appConfig.BaseURL
	}

	if len(appConfig.Schemas) > 0 {
		model.Bundles = append(model.Bundles, &hclcfg.BundleJob{
			Name:    "cli",
			Schemas: appConfig.Schemas,
			Output:  appConfig.Output,
		})
	}
	if appConfig.RegistryOutput != "" {
		version := appConfig.Version
		if version == "" {
			version = hclcfg.DefaultRegistryVersion
		}
		model.Registries = append(model.Registries, &hclcfg.RegistryJob{
			Name:    "cli",
			Output:  appConfig.RegistryOutput,
			Version: version,
		})
	}
	return model, nil
}
