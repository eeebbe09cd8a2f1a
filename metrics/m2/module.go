// Package m2 implements the JPEG file size metric.
//
// The screenshot is re-encoded as JPEG at a configurable quality and the
// encoded byte size is reported. Like PNG file size, it approximates visual
// complexity, but is more sensitive to continuous-tone content.
package m2

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uimetricsgo/internal/imgutil"
	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Metric computes the JPEG file size in bytes.
type Metric struct{}

// Execute returns one measure: the JPEG file size in bytes (int, [0, +inf)).
func (Metric) Execute(ctx context.Context, image *metric.GuiImage, params metric.Params) ([]cty.Value, error) {
	img, err := imgutil.Decode(image.Data)
	if err != nil {
		return nil, err
	}

	quality := params.Int("quality", imgutil.DefaultJPEGQuality)
	encoded, err := imgutil.EncodeJPEG(img, quality)
	if err != nil {
		return nil, err
	}

	return []cty.Value{cty.NumberIntVal(int64(len(encoded)))}, nil
}

// Register registers the implementation with the engine.
func (m *Module) Register(t *registry.Table) {
	t.RegisterMetric("m2", Metric{})
}
