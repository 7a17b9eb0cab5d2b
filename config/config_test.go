package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	v := newViper(t)
	chdir(t, t.TempDir())
	require.NoError(t, ReadInConfig(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "log.json", cfg.LogPath)
	assert.Equal(t, "github_job_summary.md", cfg.SummaryPath)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "green", cfg.Logger.Colors.Info)
	assert.Empty(t, cfg.ErrorCodes)
	assert.False(t, cfg.Verbose)
}

func TestLoad_VerboseRaisesLevel(t *testing.T) {
	v := newViper(t)
	v.Set(KeyVerbose, true)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LYCHEE_REPORT_LOG_PATH", "out/lychee.json")
	t.Setenv("LYCHEE_REPORT_IGNORE_TIMEOUTS", "true")
	t.Setenv("LYCHEE_REPORT_ERROR_CODES", "404,500..503")
	t.Setenv("LYCHEE_REPORT_LOGGER_FORMAT", "json")
	chdir(t, t.TempDir())

	v := newViper(t)
	require.NoError(t, ReadInConfig(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "out/lychee.json", cfg.LogPath)
	assert.True(t, cfg.IgnoreTimeouts)
	assert.Equal(t, []string{"404", "500..503"}, cfg.ErrorCodes)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestReadInConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	content := `
error_codes: ["404..407", "451"]
ignore_nocode_net_err: true
summary_path: summary.md
logger:
  log_file: report.log
  colors:
    error: magenta
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := newViper(t)
	require.NoError(t, ReadInConfig(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"404..407", "451"}, cfg.ErrorCodes)
	assert.True(t, cfg.IgnoreNoCodeNetErr)
	assert.Equal(t, "summary.md", cfg.SummaryPath)
	assert.Equal(t, "report.log", cfg.Logger.LogFile)
	assert.Equal(t, "magenta", cfg.Logger.Colors.Error)
	assert.Equal(t, "log.json", cfg.LogPath)
}

func TestReadInConfig_MissingExplicitFile(t *testing.T) {
	v := newViper(t)
	err := ReadInConfig(v, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{LogPath: "log.json", SummaryPath: "s.md", Logger: LoggerConfig{Format: "console"}}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "json format", mutate: func(c *Config) { c.Logger.Format = "json" }},
		{name: "unknown format", mutate: func(c *Config) { c.Logger.Format = "xml" }, wantErr: true},
		{name: "empty log path", mutate: func(c *Config) { c.LogPath = "" }, wantErr: true},
		{name: "empty summary path", mutate: func(c *Config) { c.SummaryPath = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
