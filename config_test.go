package signup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/signal-golang/signup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultServer, cfg.Server)
	assert.Equal(t, "sms", cfg.VerificationType)
	assert.Equal(t, config.DefaultClientType, cfg.ClientType)
	assert.Equal(t, config.DefaultTimeout, cfg.Timeout)
}

func TestConfigRoundTrip(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "config.yml")
	in := &config.Config{
		Tel:              "+18005550125",
		Server:           "http://localhost:8080/",
		VerificationType: "VOICE",
		Timeout:          5 * time.Second,
		AccountCapabilities: config.AccountCapabilities{
			PNI: true,
		},
	}
	require.NoError(t, WriteConfig(fileName, in))

	fi, err := os.Stat(fileName)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())

	cfg, err := LoadConfig(fileName)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Server)
	assert.Equal(t, "voice", cfg.VerificationType)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.AccountCapabilities.PNI)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("SIGNUP_SERVER", "http://127.0.0.1:9999")
	t.Setenv("SIGNUP_TEL", "+18005550125")
	t.Setenv("SIGNUP_TIMEOUT", "3s")
	t.Setenv("SIGNUP_REQUEST_INTERVAL", "1s")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Server)
	assert.Equal(t, "+18005550125", cfg.Tel)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, time.Second, cfg.RequestInterval)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("SIGNUP_TEL", "555-0125")
	_, err := LoadConfig("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "Tel")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestValidateConfigVerificationType(t *testing.T) {
	cfg := &config.Config{VerificationType: "pigeon"}
	applyDefaults(cfg)
	err := ValidateConfig(cfg)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "VerificationType")
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
