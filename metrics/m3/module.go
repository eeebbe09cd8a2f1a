// Package m3 implements the distinct RGB values metric.
//
// It counts the number of distinct RGB values in the screenshot after color
// reduction: colors covering no more than a threshold number of pixels are
// discarded as noise. The threshold defaults to five pixels for desktop GUIs
// and two for mobile GUIs, and can be overridden per run.
package m3

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uimetricsgo/internal/imgutil"
	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
)

const (
	thresholdDesktop = 5
	thresholdMobile  = 2
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Metric counts distinct RGB values after color reduction.
type Metric struct{}

// Execute returns one measure: the number of distinct RGB values
// (int, [0, +inf)).
func (Metric) Execute(ctx context.Context, image *metric.GuiImage, params metric.Params) ([]cty.Value, error) {
	img, err := imgutil.Decode(image.Data)
	if err != nil {
		return nil, err
	}

	fallback := thresholdDesktop
	if image.GuiType == metric.GuiTypeMobile {
		fallback = thresholdMobile
	}
	threshold := params.Int("color_reduction_threshold", fallback)

	histogram := make(map[[3]uint8]int)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
			histogram[key]++
		}
	}

	distinct := 0
	for _, count := range histogram {
		if count > threshold {
			distinct++
		}
	}

	return []cty.Value{cty.NumberIntVal(int64(distinct))}, nil
}

// Register registers the implementation with the engine.
func (m *Module) Register(t *registry.Table) {
	t.RegisterMetric("m3", Metric{})
}
