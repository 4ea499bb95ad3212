package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/plume/internal/logger"
)

// noEnvFile points at a file that does not exist so a stray .env in the
// package directory cannot leak into tests
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plume.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{File: writeConfig(t, "{}\n"), EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, logger.FormatConsole, cfg.Log.Format)
	assert.Nil(t, cfg.Generate.Seed)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.False(t, cfg.Output.Extract)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 10.0, cfg.Server.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(8<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, logger.LevelInfo, cfg.LogLevel())
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
generate:
  seed: 42
  templates: ./my-templates
output:
  dir: ./dist
  extract: true
server:
  port: 9000
  read_timeout: 5s
`)

	cfg, err := Load(LoadOptions{File: path, EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, logger.LevelDebug, cfg.LogLevel())
	assert.Equal(t, logger.FormatJSON, cfg.Log.Format)
	require.NotNil(t, cfg.Generate.Seed)
	assert.Equal(t, uint64(42), *cfg.Generate.Seed)
	assert.Equal(t, "./my-templates", cfg.Generate.Templates)
	assert.Equal(t, "./dist", cfg.Output.Dir)
	assert.True(t, cfg.Output.Extract)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("PLUME_SERVER_PORT", "9100")
	t.Setenv("PLUME_OUTPUT_FORCE", "true")

	cfg, err := Load(LoadOptions{File: path, EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.True(t, cfg.Output.Force)
}

func TestLoad_DotEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PLUME_LOG_LEVEL=warn\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("PLUME_LOG_LEVEL") })

	cfg, err := Load(LoadOptions{File: writeConfig(t, "{}\n"), EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, logger.LevelWarn, cfg.LogLevel())
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	path := writeConfig(t, "output:\n  dir: ./from-file\n")
	t.Setenv("PLUME_OUTPUT_DIR", "./from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("out", ".", "")
	flags.Uint64("seed", 0, "")
	require.NoError(t, flags.Parse([]string{"--out", "./from-flag", "--seed", "7"}))

	cfg, err := Load(LoadOptions{
		File:    path,
		EnvFile: noEnvFile(t),
		Flags: map[string]*pflag.Flag{
			KeyOutputDir: flags.Lookup("out"),
			KeySeed:      flags.Lookup("seed"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "./from-flag", cfg.Output.Dir)
	require.NotNil(t, cfg.Generate.Seed)
	assert.Equal(t, uint64(7), *cfg.Generate.Seed)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.yml"), EnvFile: noEnvFile(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "bad level", body: "log:\n  level: loud\n", wantErr: "log.level"},
		{name: "bad format", body: "log:\n  format: xml\n", wantErr: "log.format"},
		{name: "bad port", body: "server:\n  port: 70000\n", wantErr: "server.port"},
		{name: "zero rate", body: "server:\n  rate_limit: 0\n", wantErr: "server.rate_limit"},
		{name: "zero burst", body: "server:\n  rate_burst: 0\n", wantErr: "server.rate_burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{File: writeConfig(t, tt.body), EnvFile: noEnvFile(t)})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
