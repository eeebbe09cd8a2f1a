package testutil

import (
	"context"
	"errors"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uimetricsgo/internal/metric"
)

// StaticMetric returns a fixed measure list on every invocation.
type StaticMetric struct {
	Measures []cty.Value
}

// Execute implements metric.Metric.
func (m *StaticMetric) Execute(_ context.Context, _ *metric.GuiImage, _ metric.Params) ([]cty.Value, error) {
	return m.Measures, nil
}

// FailingMetric always returns the configured error.
type FailingMetric struct {
	Err error
}

// Execute implements metric.Metric.
func (m *FailingMetric) Execute(_ context.Context, _ *metric.GuiImage, _ metric.Params) ([]cty.Value, error) {
	if m.Err == nil {
		return nil, errors.New("failing metric invoked")
	}
	return nil, m.Err
}

// PanickyMetric panics on invocation, for exercising panic isolation.
type PanickyMetric struct{}

// Execute implements metric.Metric.
func (m *PanickyMetric) Execute(_ context.Context, _ *metric.GuiImage, _ metric.Params) ([]cty.Value, error) {
	panic("intentional test panic")
}

// BlockingMetric never returns, for exercising the per-metric deadline: the
// engine abandons it and its goroutine exits with the test process.
type BlockingMetric struct {
	// Started is closed once the metric begins executing, when set.
	Started chan struct{}
}

// Execute implements metric.Metric.
func (m *BlockingMetric) Execute(context.Context, *metric.GuiImage, metric.Params) ([]cty.Value, error) {
	if m.Started != nil {
		close(m.Started)
	}
	select {}
}

// EchoParamsMetric reports the resolved value of a single named parameter,
// for asserting default/override precedence end to end.
type EchoParamsMetric struct {
	Param string
}

// Execute implements metric.Metric.
func (m *EchoParamsMetric) Execute(_ context.Context, _ *metric.GuiImage, params metric.Params) ([]cty.Value, error) {
	v, ok := params[m.Param]
	if !ok {
		return nil, errors.New("parameter not resolved: " + m.Param)
	}
	return []cty.Value{v}, nil
}
