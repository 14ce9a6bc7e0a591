package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{"ENDPOINT", "PURPOSE_CODE", "USER_AGENT", "TIMEOUT", "COLOR", "INPUT_ENCODING", "STATIONS", "STATIONS_ENDPOINT"} {
		t.Setenv(environmentPrefix+name, "")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	isolate(t)

	path := writeConfig(t, `
remote:
  endpoint: http://localhost:9000/query
  timeout: 3s
color: never
input_encoding: gbk
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/query", cfg.Remote.Endpoint)
	assert.Equal(t, "ADULT", cfg.Remote.PurposeCode)
	assert.Equal(t, 3*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, "gbk", cfg.InputEncoding)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "color: never\n")
	t.Setenv("TICKETS_COLOR", "always")
	t.Setenv("TICKETS_PURPOSE_CODE", "0X00")
	t.Setenv("TICKETS_TIMEOUT", "1m")
	t.Setenv("TICKETS_STATIONS", "/tmp/station_name.js")
	t.Setenv("TICKETS_STATIONS_ENDPOINT", "http://localhost:9000/station_name.js")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/station_name.js", cfg.Stations)
	assert.Equal(t, "http://localhost:9000/station_name.js", cfg.Remote.StationsEndpoint)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.Equal(t, "0X00", cfg.Remote.PurposeCode)
	assert.Equal(t, time.Minute, cfg.Remote.Timeout)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{name: "bad color", contents: "color: sometimes\n"},
		{name: "bad endpoint", contents: "remote:\n  endpoint: not a url\n"},
		{name: "bad stations endpoint", contents: "remote:\n  stations_endpoint: \"\"\n"},
		{name: "zero timeout", contents: "remote:\n  timeout: 0s\n"},
		{name: "malformed yaml", contents: "remote: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			_, err := Load(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadBadTimeoutEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("TICKETS_TIMEOUT", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "TICKETS_TIMEOUT")
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	assert.True(t, Config{Color: ColorAlways}.ColorEnabled(nil))
	assert.False(t, Config{Color: ColorNever}.ColorEnabled(os.Stdout))
	assert.False(t, Config{Color: ColorAuto}.ColorEnabled(nil))

	file, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer file.Close()
	assert.False(t, Config{Color: ColorAuto}.ColorEnabled(file))
}
