package app

import (
	"github.com/vk/uimetricsgo/internal/registry"
	"github.com/vk/uimetricsgo/metrics/m1"
	"github.com/vk/uimetricsgo/metrics/m2"
	"github.com/vk/uimetricsgo/metrics/m3"
	"github.com/vk/uimetricsgo/metrics/m4"
)

// coreMetrics is the default registration table content: every built-in
// metric implementation shipped with the engine. Third-party metrics are
// added by passing extra modules to NewApp; no engine change is required.
var coreMetrics = []registry.Module{
	&m1.Module{},
	&m2.Module{},
	&m3.Module{},
	&m4.Module{},
}
