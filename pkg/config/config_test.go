package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "conf.ini")

	cfg, err := Load(path)
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "默认配置文件应被创建")

	assert.Equal(t, "8091", cfg.GetString(KeyServerPort))
	assert.Equal(t, DefaultGatewayBaseURL, cfg.GatewayBaseURL())
	assert.Equal(t, 10, cfg.GetIntOr(KeyPostsContentMinLength, 99))
	assert.Equal(t, "optimistic", cfg.GetString(KeyPostsDeleteStrategy))
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Gateway]\nBaseURL = http://file.example\n"), 0644))

	t.Setenv("NESTDEMO_GATEWAY_BASEURL", "http://env.example/")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example", cfg.GatewayBaseURL())
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Broken\nkey"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGetIntOr(t *testing.T) {
	cfg := NewFromMap(map[string]string{
		KeyPostsContentMinLength: "0",
		KeyGatewayTimeout:        "",
	})

	assert.Equal(t, 0, cfg.GetIntOr(KeyPostsContentMinLength, 10), "显式的 0 不应回退到默认值")
	assert.Equal(t, 30, cfg.GetIntOr(KeyGatewayTimeout, 30))
	assert.Equal(t, 7, cfg.GetIntOr("Missing.Key", 7))
}

func TestGatewayBaseURLFallback(t *testing.T) {
	cfg := NewFromMap(nil)
	assert.Equal(t, "http://localhost:3000", cfg.GatewayBaseURL())
}
