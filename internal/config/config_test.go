package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
version: 1
default: disk
sensors:
  disk:
    type: script
    command: df -h
    parser: lines
    rate: 30s
    format: "{0}"
  services:
    type: service
    units:
      - nginx.service
      - postgresql.service
    strip_prefix: my
serve:
  listen: "0.0.0.0:9700"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "disk", cfg.Default)
	assert.Len(t, cfg.Sensors, 2)

	disk := cfg.Sensors["disk"]
	assert.Equal(t, "script", disk.Type)
	assert.Equal(t, "df -h", disk.Command)
	assert.Equal(t, 30*time.Second, disk.Rate)

	svc := cfg.Sensors["services"]
	assert.Equal(t, "service", svc.Type)
	assert.Equal(t, []string{"nginx.service", "postgresql.service"}, svc.Units)
	assert.Equal(t, "my", svc.StripPrefix)

	assert.Equal(t, "0.0.0.0:9700", cfg.Serve.Listen)
}

func TestLoadDefaultsMergedIn(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9666", cfg.Serve.Listen)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ConfigFileName))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "peek init")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: [unclosed\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFindExplicitPath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1\n")

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFindExplicitPathMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFindCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version: 1\n")
	t.Chdir(dir)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFindWalksToParent(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version: 1\n")

	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestValidate(t *testing.T) {
	script := SensorConfig{Type: "script", Command: "df"}
	service := SensorConfig{Type: "service", Units: []string{"a.service"}}

	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name: "valid config",
			cfg: &Config{Version: 1, Default: "disk",
				Sensors: map[string]SensorConfig{"disk": script, "svc": service}},
		},
		{
			name:    "version too new",
			cfg:     &Config{Version: CurrentConfigVersion + 1},
			wantErr: "newer than this build",
		},
		{
			name: "script without command",
			cfg: &Config{Version: 1,
				Sensors: map[string]SensorConfig{"x": {Type: "script"}}},
			wantErr: "has no command",
		},
		{
			name: "service without units",
			cfg: &Config{Version: 1,
				Sensors: map[string]SensorConfig{"x": {Type: "service"}}},
			wantErr: "has no units",
		},
		{
			name: "missing type",
			cfg: &Config{Version: 1,
				Sensors: map[string]SensorConfig{"x": {}}},
			wantErr: "has no type",
		},
		{
			name: "unknown type",
			cfg: &Config{Version: 1,
				Sensors: map[string]SensorConfig{"x": {Type: "disk"}}},
			wantErr: "unknown type",
		},
		{
			name: "multi-character separator",
			cfg: &Config{Version: 1,
				Sensors: map[string]SensorConfig{"x": {Type: "script", Command: "df", Separator: "ab"}}},
			wantErr: "single character",
		},
		{
			name: "negative rate",
			cfg: &Config{Version: 1,
				Sensors: map[string]SensorConfig{"x": {Type: "script", Command: "df", Rate: -time.Second}}},
			wantErr: "negative rate",
		},
		{
			name: "negative max_lines",
			cfg: &Config{Version: 1,
				Sensors: map[string]SensorConfig{"x": {Type: "script", Command: "df", MaxLines: -1}}},
			wantErr: "negative max_lines",
		},
		{
			name: "default points at missing sensor",
			cfg: &Config{Version: 1, Default: "ghost",
				Sensors: map[string]SensorConfig{"disk": script}},
			wantErr: "Default sensor not defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEffectiveRate(t *testing.T) {
	assert.Equal(t, DefaultRate, SensorConfig{}.EffectiveRate())
	assert.Equal(t, 30*time.Second, SensorConfig{Rate: 30 * time.Second}.EffectiveRate())
}

func TestEffectiveFormat(t *testing.T) {
	tests := []struct {
		name string
		sc   SensorConfig
		want string
	}{
		{"explicit format wins", SensorConfig{Type: "service", Format: "{1}"}, "{1}"},
		{"service default is summary", SensorConfig{Type: "service"}, "{8}"},
		{"script default is first row", SensorConfig{Type: "script"}, "{0}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sc.EffectiveFormat())
		})
	}
}

func TestInstanceFlattening(t *testing.T) {
	sc := SensorConfig{
		Type:      "script",
		Command:   "df -h",
		Parser:    "table",
		Separator: ";",
		MaxLines:  10,
		MaxOutput: 2048,
		Timeout:   3 * time.Second,
	}

	cfg := sc.Instance("disk")

	assert.Equal(t, "disk", cfg["name"])
	assert.Equal(t, "df -h", cfg["command"])
	assert.Equal(t, "table", cfg["parser"])
	assert.Equal(t, ";", cfg["separator"])
	assert.Equal(t, "10", cfg["max_lines"])
	assert.Equal(t, "2048", cfg["max_output"])
	assert.Equal(t, "3s", cfg["timeout"])
}

func TestInstanceFlatteningService(t *testing.T) {
	sc := SensorConfig{
		Type:        "service",
		Units:       []string{"a.service", "b.service"},
		StripPrefix: "my",
	}

	cfg := sc.Instance("svc")

	assert.Equal(t, "a.service,b.service", cfg["units"])
	assert.Equal(t, "my", cfg["strip_prefix"])
	assert.NotContains(t, cfg, "command")
	assert.NotContains(t, cfg, "timeout")
}

func TestInstanceOmitsZeroValues(t *testing.T) {
	cfg := SensorConfig{Type: "script", Command: "true"}.Instance("x")

	assert.NotContains(t, cfg, "max_lines")
	assert.NotContains(t, cfg, "max_output")
	assert.NotContains(t, cfg, "separator")
}
