package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symeq/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.EqualValues(t, 1<<20, cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Parsing.StrictSyntax)
	assert.False(t, cfg.Parsing.Rationalise)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symeq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  read_timeout: 2s
log:
  format: json
parsing:
  strict_syntax: false
`), 0o600))
	t.Setenv("SYMEQ_SERVER_PORT", "9100")
	t.Setenv("SYMEQ_LOG_LEVEL", "debug")

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Parsing.Defaults().StrictSyntax)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("SYMEQ_SERVER_PORT", "0")
	_, err = config.Load(viper.New(), "")
	assert.ErrorContains(t, err, "invalid server port")
}
