package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authorview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs([]string{"--api-url", "http://localhost:8080"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.App.APIURL)
	assert.Equal(t, defaultTimeout, cfg.App.Timeout)
	assert.Equal(t, defaultMinInterval, cfg.App.MinInterval)
	assert.Equal(t, defaultLogFile, cfg.Logging.FilePath)
	assert.False(t, cfg.Logging.Trace)
	assert.Equal(t, []string{"--api-url", "http://localhost:8080"}, cfg.Args)
	assert.NoError(t, Validate(cfg))
}

func TestLoadArgsPrecedence(t *testing.T) {
	path := writeConfigFile(t, `
api_url: http://file.example
timeout: 3s
user: 3
width: 90
footer: true
log_file: file.log
`)
	environ := []string{
		"AUTHORVIEW_CONFIG=" + path,
		"AUTHORVIEW_API_URL=http://env.example",
		"AUTHORVIEW_USER=2",
		"AUTHORVIEW_TRACE=true",
	}
	cfg, err := LoadArgs([]string{"--user", "1", "--markdown"}, environ)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "http://env.example", cfg.App.APIURL, "env beats file")
	assert.Equal(t, 1, cfg.App.User, "flag beats env")
	assert.Equal(t, 3*time.Second, cfg.App.Timeout, "file beats default")
	assert.Equal(t, 90, cfg.App.Width)
	assert.True(t, cfg.App.ShowFooter)
	assert.True(t, cfg.App.Markdown)
	assert.True(t, cfg.Logging.Trace)
	assert.Equal(t, "file.log", cfg.Logging.FilePath)
	assert.Equal(t, "1", cfg.Flags["user"])
}

func TestConfigFlagOverridesEnvPath(t *testing.T) {
	envPath := writeConfigFile(t, "api_url: http://env-file.example\n")
	flagPath := writeConfigFile(t, "api_url: http://flag-file.example\n")
	cfg, err := LoadArgs([]string{"-c", flagPath}, []string{"AUTHORVIEW_CONFIG=" + envPath})
	require.NoError(t, err)
	assert.Equal(t, "http://flag-file.example", cfg.App.APIURL)
}

func TestLoadArgsErrors(t *testing.T) {
	_, err := LoadArgs([]string{"--bogus"}, nil)
	assert.Error(t, err, "unknown flag")

	_, err = LoadArgs(nil, []string{"AUTHORVIEW_TIMEOUT=soon"})
	assert.ErrorContains(t, err, "AUTHORVIEW_TIMEOUT")

	_, err = LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	assert.ErrorContains(t, err, "read config file")

	path := writeConfigFile(t, "api_url: http://x\nunknown_key: 1\n")
	_, err = LoadArgs([]string{"--config", path}, nil)
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := LoadArgs([]string{"--api-url", "https://jsonplaceholder.typicode.com"}, nil)
		require.NoError(t, err)
		return cfg
	}
	require.NoError(t, Validate(valid()))

	cases := map[string]func(*Config){
		"missing url":       func(c *Config) { c.App.APIURL = "" },
		"bad scheme":        func(c *Config) { c.App.APIURL = "ftp://example.com" },
		"no host":           func(c *Config) { c.App.APIURL = "http://" },
		"zero timeout":      func(c *Config) { c.App.Timeout = 0 },
		"negative interval": func(c *Config) { c.App.MinInterval = -time.Second },
		"negative user":     func(c *Config) { c.App.User = -1 },
		"negative width":    func(c *Config) { c.App.Width = -1 },
		"negative height":   func(c *Config) { c.App.Height = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}
