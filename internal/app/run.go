package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/chromabundle/internal/bundle"
	"github.com/vk/chromabundle/internal/ctxlog"
	"github.com/vk/chromabundle/internal/diag"
	"github.com/vk/chromabundle/internal/emit"
	"github.com/vk/chromabundle/internal/hclcfg"
	"github.com/vk/chromabundle/internal/ref"
)

// Run executes every registry and bundle job in the model.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	for _, job := range a.model.Registries {
		if err := a.runRegistryJob(ctx, job); err != nil {
			return fmt.Errorf("registry job %q failed: %w", job.Name, err)
		}
	}

	var diags diag.Diagnostics
	for _, job := range a.model.Bundles {
		jobDiags, err := a.runBundleJob(ctx, job)
		if err != nil {
			return fmt.Errorf("bundle job %q failed: %w", job.Name, err)
		}
		diags.Merge(jobDiags)
	}
	if !diags.Empty() {
		a.logger.Warn("Run finished with warnings.", "count", len(diags.Warnings()))
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) runRegistryJob(ctx context.Context, job *hclcfg.RegistryJob) error {
	a.logger.Info("Building full registry artifact.", "job", job.Name, "output", job.Output)

	reg, err := bundle.BuildRegistry(ctx, a.store, a.store, job.Version, a.model.BaseURL)
	if err != nil {
		return err
	}
	return a.writeArtifact(job.Output, func(w io.Writer) error {
		return emit.WriteRegistry(ctx, w, reg)
	})
}

func (a *App) runBundleJob(ctx context.Context, job *hclcfg.BundleJob) (*diag.Diagnostics, error) {
	a.logger.Info("Building selective bundle.", "job", job.Name, "schemas", job.Schemas)

	requested := make([]ref.Ref, 0, len(job.Schemas))
	for _, raw := range job.Schemas {
		r, err := ref.Parse(raw)
		if err != nil {
			// A requested schema that cannot even be parsed is fatal; only
			// discovered dependencies degrade to warnings.
			return nil, err
		}
		requested = append(requested, r)
	}

	res, err := bundle.Selective(ctx, a.store, requested, a.model.BaseURL)
	if err != nil {
		return nil, err
	}
	for _, warning := range res.Resolution.Diagnostics.Warnings() {
		a.logger.Warn("Bundling warning.", "job", job.Name, "code", warning.Code, "subject", warning.Subject, "detail", warning.Message)
	}

	if a.config.PrintTree {
		if err := res.Resolution.RenderTree(a.outW); err != nil {
			return nil, err
		}
	}

	err = a.writeArtifact(job.Output, func(w io.Writer) error {
		return emit.WriteModule(ctx, w, job.Package, res)
	})
	if err != nil {
		return nil, err
	}
	return &res.Resolution.Diagnostics, nil
}

// writeArtifact writes to the given path, creating parent directories as
// needed. An empty path writes to the app's output stream.
func (a *App) writeArtifact(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(a.outW)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	a.logger.Info("Artifact written.", "path", path)
	return nil
}
