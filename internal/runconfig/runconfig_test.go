package runconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uimetricsgo/internal/catalog"
	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
	"github.com/vk/uimetricsgo/internal/runconfig"
	"github.com/vk/uimetricsgo/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func buildRegistry(t *testing.T, descriptors map[string]*catalog.Descriptor) *registry.Registry {
	t.Helper()
	table := registry.NewTable()
	for id := range descriptors {
		table.RegisterMetric(id, &testutil.StaticMetric{})
	}
	ctx, _ := testutil.NewTestContext(t)
	return registry.Build(ctx, descriptors, registry.NewLoader(table))
}

func TestLoad(t *testing.T) {
	t.Run("well-formed document", func(t *testing.T) {
		path := writeConfig(t, `
metrics:
  - id: m1
    enabled: true
  - id: m2
    enabled: false
    parameters:
      quality: 85
`)
		raw, err := runconfig.Load(path)
		require.NoError(t, err)
		require.Len(t, raw.Metrics, 2)

		assert.Equal(t, "m1", raw.Metrics[0].Id)
		assert.True(t, raw.Metrics[0].Enabled)
		assert.Equal(t, "m2", raw.Metrics[1].Id)
		assert.False(t, raw.Metrics[1].Enabled)
		assert.Equal(t, 85, raw.Metrics[1].Parameters["quality"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runconfig.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorContains(t, err, "failed to read run configuration")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := runconfig.Load(writeConfig(t, "metrics: [unclosed"))
		assert.ErrorContains(t, err, "failed to parse run configuration")
	})

	t.Run("entry without id", func(t *testing.T) {
		_, err := runconfig.Load(writeConfig(t, `
metrics:
  - enabled: true
`))
		assert.ErrorContains(t, err, "entry 0 has no id")
	})
}

func TestResolve(t *testing.T) {
	reg := buildRegistry(t, map[string]*catalog.Descriptor{
		"m2": {
			Id:       "m2",
			Name:     "JPEG file size",
			GuiTypes: []metric.GuiType{metric.GuiTypeDesktop},
			Defaults: map[string]cty.Value{
				"quality":   cty.NumberIntVal(70),
				"grayscale": cty.False,
			},
		},
	})

	t.Run("defaults merged with overrides", func(t *testing.T) {
		raw := &runconfig.Raw{Metrics: []runconfig.RawEntry{{
			Id:         "m2",
			Enabled:    true,
			Parameters: map[string]any{"quality": 85},
		}}}

		cfg, err := runconfig.Resolve(raw, reg)
		require.NoError(t, err)
		require.Len(t, cfg.Entries, 1)

		entry := cfg.Entries[0]
		assert.False(t, entry.Missing)
		assert.True(t, cty.NumberIntVal(85).RawEquals(entry.Params["quality"]), "override wins")
		assert.True(t, cty.False.RawEquals(entry.Params["grayscale"]), "untouched default survives")
	})

	t.Run("disabled entries are dropped", func(t *testing.T) {
		raw := &runconfig.Raw{Metrics: []runconfig.RawEntry{
			{Id: "m2", Enabled: false},
		}}

		cfg, err := runconfig.Resolve(raw, reg)
		require.NoError(t, err)
		assert.Empty(t, cfg.Entries)
	})

	t.Run("unknown identifiers are retained with the missing marker", func(t *testing.T) {
		raw := &runconfig.Raw{Metrics: []runconfig.RawEntry{
			{Id: "m2", Enabled: true},
			{Id: "m9", Enabled: true},
		}}

		cfg, err := runconfig.Resolve(raw, reg)
		require.NoError(t, err)
		require.Len(t, cfg.Entries, 2)

		assert.False(t, cfg.Entries[0].Missing)
		assert.Equal(t, "m9", cfg.Entries[1].Id)
		assert.True(t, cfg.Entries[1].Missing)
		assert.Nil(t, cfg.Entries[1].Params)
	})

	t.Run("document order is preserved", func(t *testing.T) {
		raw := &runconfig.Raw{Metrics: []runconfig.RawEntry{
			{Id: "m9", Enabled: true},
			{Id: "m2", Enabled: true},
			{Id: "m8", Enabled: true},
		}}

		cfg, err := runconfig.Resolve(raw, reg)
		require.NoError(t, err)

		ids := make([]string, 0, len(cfg.Entries))
		for _, e := range cfg.Entries {
			ids = append(ids, e.Id)
		}
		assert.Equal(t, []string{"m9", "m2", "m8"}, ids)
	})

	t.Run("structured parameter values", func(t *testing.T) {
		raw := &runconfig.Raw{Metrics: []runconfig.RawEntry{{
			Id:      "m2",
			Enabled: true,
			Parameters: map[string]any{
				"weights": []any{1, 2.5, "low"},
				"options": map[string]any{"strict": true},
			},
		}}}

		cfg, err := runconfig.Resolve(raw, reg)
		require.NoError(t, err)

		params := cfg.Entries[0].Params
		want := cty.TupleVal([]cty.Value{
			cty.NumberIntVal(1),
			cty.NumberFloatVal(2.5),
			cty.StringVal("low"),
		})
		assert.True(t, want.RawEquals(params["weights"]))
		assert.True(t, cty.ObjectVal(map[string]cty.Value{
			"strict": cty.True,
		}).RawEquals(params["options"]))
	})

	t.Run("unsupported parameter type", func(t *testing.T) {
		raw := &runconfig.Raw{Metrics: []runconfig.RawEntry{{
			Id:         "m2",
			Enabled:    true,
			Parameters: map[string]any{"bad": make(chan int)},
		}}}

		_, err := runconfig.Resolve(raw, reg)
		assert.ErrorContains(t, err, "unsupported parameter value of type chan int")
	})
}

func TestResolveIsPure(t *testing.T) {
	reg := buildRegistry(t, map[string]*catalog.Descriptor{
		"m1": {
			Id:       "m1",
			Name:     "PNG file size",
			GuiTypes: []metric.GuiType{metric.GuiTypeDesktop},
			Defaults: map[string]cty.Value{"x": cty.NumberIntVal(1)},
		},
	})

	raw := &runconfig.Raw{Metrics: []runconfig.RawEntry{
		{Id: "m1", Enabled: true, Parameters: map[string]any{"y": 2}},
	}}

	first, err := runconfig.Resolve(raw, reg)
	require.NoError(t, err)
	second, err := runconfig.Resolve(raw, reg)
	require.NoError(t, err)

	assert.Equal(t, first, second, "resolving twice must yield the same plan")
}
