// Package metric defines the contract between the execution engine and
// individual metric implementations.
//
// A metric is a named, independently pluggable computation that produces
// zero or more measures from a single GUI screenshot. The engine depends on
// exactly one capability from a metric author: the Execute method. Anything
// satisfying the Metric interface can be registered under an identifier and
// driven by the engine without engine changes.
package metric

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// GuiType tags a screenshot as a desktop or mobile capture. The numeric
// values are part of the external contract (desktop=0, mobile=1).
type GuiType int

const (
	GuiTypeDesktop GuiType = 0
	GuiTypeMobile  GuiType = 1
)

// String returns the canonical lower-case name used in manifests.
func (t GuiType) String() string {
	switch t {
	case GuiTypeDesktop:
		return "desktop"
	case GuiTypeMobile:
		return "mobile"
	default:
		return fmt.Sprintf("gui_type(%d)", int(t))
	}
}

// ParseGuiType maps a manifest string to a GuiType.
func ParseGuiType(s string) (GuiType, error) {
	switch s {
	case "desktop":
		return GuiTypeDesktop, nil
	case "mobile":
		return GuiTypeMobile, nil
	default:
		return 0, fmt.Errorf("unknown gui type %q (want \"desktop\" or \"mobile\")", s)
	}
}

// GuiImage is a preprocessed screenshot handed to the engine by a capture
// collaborator: a Base64-encoded PNG payload plus its GUI-type tag. The
// engine and metrics treat it as read-only; it is never mutated or
// persisted.
type GuiImage struct {
	// Data is the Base64-encoded PNG payload.
	Data []byte

	// GuiType records whether the capture is a desktop or mobile screen.
	GuiType GuiType
}

// Params carries the fully resolved parameters for one invocation: manifest
// defaults merged with run-supplied overrides, override winning key by key.
type Params map[string]cty.Value

// Number returns the named parameter as a float64, or fallback when the
// parameter is absent, null, or not a number.
func (p Params) Number(name string, fallback float64) float64 {
	v, ok := p[name]
	if !ok || v.IsNull() || !v.Type().Equals(cty.Number) {
		return fallback
	}
	f, _ := v.AsBigFloat().Float64()
	return f
}

// Int returns the named parameter as an int, or fallback.
func (p Params) Int(name string, fallback int) int {
	return int(p.Number(name, float64(fallback)))
}

// Text returns the named parameter as a string, or fallback.
func (p Params) Text(name string, fallback string) string {
	v, ok := p[name]
	if !ok || v.IsNull() || !v.Type().Equals(cty.String) {
		return fallback
	}
	return v.AsString()
}

// Metric is the single capability a plugin must provide.
//
// Execute computes the metric against the supplied image and returns an
// ordered sequence of measures (cty numbers or strings). Returning a nil or
// empty slice with a nil error is valid: it means the metric legitimately
// produced no output for this image. Implementations should honor ctx
// cancellation on long computations, but the engine does not rely on it;
// a runaway invocation is abandoned at the deadline.
//
// Implementations must be stateless and safe for concurrent use: the engine
// may invoke several metrics, or the same metric for different runs, in
// parallel.
type Metric interface {
	Execute(ctx context.Context, image *GuiImage, params Params) ([]cty.Value, error)
}
