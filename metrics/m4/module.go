// Package m4 implements the luminance standard deviation metric.
//
// Per-pixel Rec. 709 luma is computed over the whole screenshot and the
// population standard deviation is reported. Higher values indicate stronger
// contrast between light and dark regions.
package m4

import (
	"context"
	"math"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uimetricsgo/internal/imgutil"
	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Metric computes the standard deviation of pixel luminance.
type Metric struct{}

// Execute returns one measure: the luminance standard deviation
// (float, [0, 255]).
func (Metric) Execute(ctx context.Context, image *metric.GuiImage, params metric.Params) ([]cty.Value, error) {
	img, err := imgutil.Decode(image.Data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		// A degenerate image produces no output rather than an error.
		return nil, nil
	}

	var sum float64
	luma := make([]float64, 0, pixels)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			l := imgutil.Luminance(r, g, b)
			luma = append(luma, l)
			sum += l
		}
	}

	mean := sum / float64(pixels)
	var variance float64
	for _, l := range luma {
		d := l - mean
		variance += d * d
	}
	variance /= float64(pixels)

	return []cty.Value{cty.NumberFloatVal(math.Sqrt(variance))}, nil
}

// Register registers the implementation with the engine.
func (m *Module) Register(t *registry.Table) {
	t.RegisterMetric("m4", Metric{})
}
