package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PAYROLL_DIGEST_RECIPIENTS", "owner@academy.test, ops@academy.test ,")
	t.Setenv("EXPORTS_SIGNED_URL_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, []string{"owner@academy.test", "ops@academy.test"}, cfg.Mail.DigestRecipients)
	assert.Equal(t, 24*time.Hour, cfg.Exports.SignedURLTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Mail.DigestInterval)
	assert.Equal(t, int64(5*1024*1024), cfg.Memberships.MaxUploadBytes)
	assert.Equal(t, 1, cfg.Queue.Workers)
	assert.Equal(t, 10*time.Minute, cfg.Queue.MaxBackoff)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a ,, b"))
}
