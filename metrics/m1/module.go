// Package m1 implements the PNG file size metric.
//
// The file size (in bytes) of the screenshot saved as PNG is a classic
// proxy for visual complexity (color variability / color range). The size
// is derived from the Base64 payload length without decoding.
package m1

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uimetricsgo/internal/imgutil"
	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Metric computes the PNG file size in bytes.
type Metric struct{}

// Execute returns one measure: the PNG file size in bytes (int, [0, +inf)).
func (Metric) Execute(ctx context.Context, image *metric.GuiImage, params metric.Params) ([]cty.Value, error) {
	size := imgutil.DecodedSize(image.Data)
	return []cty.Value{cty.NumberIntVal(int64(size))}, nil
}

// Register registers the implementation with the engine.
func (m *Module) Register(t *registry.Table) {
	t.RegisterMetric("m1", Metric{})
}
