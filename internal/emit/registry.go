package emit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vk/chromabundle/internal/bundle"
	"github.com/vk/chromabundle/internal/ctxlog"
)

// WriteRegistry serializes a full-registry artifact as indented JSON.
func WriteRegistry(ctx context.Context, w io.Writer, reg *bundle.Registry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize registry artifact: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write registry artifact: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Registry artifact written.", "bytes", len(data), "schemas", reg.Metadata.TotalSchemas)
	return nil
}
