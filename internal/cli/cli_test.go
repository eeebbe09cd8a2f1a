package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/uimetricsgo/internal/engine"
)

func TestParseSingleImageMode(t *testing.T) {
	out := &bytes.Buffer{}

	config, shouldExit, err := Parse([]string{"-image", "shot.png"}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "shot.png", config.ImagePath)
	assert.Equal(t, "desktop", config.GuiType)
	assert.Equal(t, "metrics.yaml", config.ConfigPath)
	assert.Equal(t, "metrics", config.MetricsPath)
	assert.Equal(t, engine.DefaultTimeout, config.Timeout)
	assert.Equal(t, engine.DefaultWorkers, config.Workers)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.Watch)
}

func TestParseImagePathSources(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"long flag", []string{"-image", "shot.png"}},
		{"shorthand flag", []string{"-i", "shot.png"}},
		{"positional argument", []string{"shot.png"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			require.False(t, shouldExit)
			assert.Equal(t, "shot.png", config.ImagePath)
		})
	}
}

func TestParseModes(t *testing.T) {
	t.Run("batch mode", func(t *testing.T) {
		config, _, err := Parse([]string{"-evaluate-dir", "designs/"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "designs/", config.EvaluateDir)
	})

	t.Run("serve mode", func(t *testing.T) {
		config, _, err := Parse([]string{"-serve-addr", ":8888"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, ":8888", config.ServeAddr)
	})

	t.Run("modes are mutually exclusive", func(t *testing.T) {
		_, _, err := Parse([]string{"-image", "shot.png", "-serve-addr", ":8888"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "mutually exclusive")
	})
}

func TestParseOptions(t *testing.T) {
	config, _, err := Parse([]string{
		"-image", "shot.png",
		"-gui-type", "mobile",
		"-config", "custom.yaml",
		"-metrics-path", "plugins",
		"-output", "out.json",
		"-watch",
		"-timeout", "3s",
		"-workers", "2",
		"-log-format", "text",
		"-log-level", "debug",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "mobile", config.GuiType)
	assert.Equal(t, "custom.yaml", config.ConfigPath)
	assert.Equal(t, "plugins", config.MetricsPath)
	assert.Equal(t, "out.json", config.OutputPath)
	assert.True(t, config.Watch)
	assert.Equal(t, 3*time.Second, config.Timeout)
	assert.Equal(t, 2, config.Workers)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad gui type", []string{"-image", "x.png", "-gui-type", "tablet"}, "invalid gui-type"},
		{"bad log format", []string{"-image", "x.png", "-log-format", "xml"}, "invalid log-format"},
		{"bad log level", []string{"-image", "x.png", "-log-level", "loud"}, "invalid log-level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}

func TestParseNoInputPrintsUsage(t *testing.T) {
	out := &bytes.Buffer{}

	config, shouldExit, err := Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseHelpFlag(t *testing.T) {
	out := &bytes.Buffer{}

	_, shouldExit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseUnknownFlag(t *testing.T) {
	_, _, err := Parse([]string{"-definitely-not-a-flag"}, &bytes.Buffer{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
