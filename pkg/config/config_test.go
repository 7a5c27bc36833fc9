package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Limits.FollowerCap != 50 {
		t.Errorf("Expected default follower cap to be 50, got %d", config.Limits.FollowerCap)
	}

	if config.Limits.PageCap != 3 {
		t.Errorf("Expected default page cap to be 3, got %d", config.Limits.PageCap)
	}

	if config.Retry.MaxAttempts != 1 {
		t.Errorf("Expected retries to be off by default, got %d attempts", config.Retry.MaxAttempts)
	}

	assert.Equal(t, "936619743392459", config.Instagram.AppID)
	assert.True(t, config.ScrapFly.ASP)
	assert.NoError(t, config.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IGFOLLOWERS_SESSION_ID", "test-session-id")
	t.Setenv("SCRAPFLY_KEY", "scp-live-test")
	t.Setenv("IGFOLLOWERS_FOLLOWER_CAP", "25")
	t.Setenv("IGFOLLOWERS_TIMEOUT", "5s")
	t.Setenv("IGFOLLOWERS_ENRICH_PROFILES", "false")
	t.Setenv("IGFOLLOWERS_LOG_LEVEL", "debug")

	config := DefaultConfig()
	err := config.LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "test-session-id", config.Instagram.SessionID)
	assert.Equal(t, "scp-live-test", config.ScrapFly.APIKey)
	assert.Equal(t, 25, config.Limits.FollowerCap)
	assert.Equal(t, 5*time.Second, config.Instagram.Timeout)
	assert.False(t, config.Limits.EnrichProfiles)
	assert.Equal(t, "debug", config.Logging.Level)

	// Untouched values survive the overlay
	assert.Equal(t, 3, config.Limits.PageCap)
	assert.Equal(t, "https://api.scrapfly.io", config.ScrapFly.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{
			name:      "defaults",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "zero follower cap",
			mutate:    func(c *Config) { c.Limits.FollowerCap = 0 },
			wantError: true,
		},
		{
			name:      "zero page cap",
			mutate:    func(c *Config) { c.Limits.PageCap = 0 },
			wantError: true,
		},
		{
			name:      "posts per page too large",
			mutate:    func(c *Config) { c.Limits.PostsPerPage = 100 },
			wantError: true,
		},
		{
			name:      "no attempts",
			mutate:    func(c *Config) { c.Retry.MaxAttempts = 0 },
			wantError: true,
		},
		{
			name:      "bad log level",
			mutate:    func(c *Config) { c.Logging.Level = "verbose" },
			wantError: true,
		},
		{
			name:      "missing timeout",
			mutate:    func(c *Config) { c.Instagram.Timeout = 0 },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
instagram:
  session_id: "file-session"
limits:
  follower_cap: 10
  page_cap: 2
scrapfly:
  country: "DE"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	config := DefaultConfig()
	require.NoError(t, config.LoadFromFile(path))

	assert.Equal(t, "file-session", config.Instagram.SessionID)
	assert.Equal(t, 10, config.Limits.FollowerCap)
	assert.Equal(t, 2, config.Limits.PageCap)
	assert.Equal(t, "DE", config.ScrapFly.Country)
	assert.Equal(t, 12, config.Limits.PostsPerPage)
}

func TestLoadFromFileMissing(t *testing.T) {
	config := DefaultConfig()
	err := config.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits:\n  follower_cap: 10\n  page_cap: 2\n"), 0600))

	t.Setenv("IGFOLLOWERS_FOLLOWER_CAP", "20")

	config, err := Load(path, map[string]interface{}{
		"page-cap": 5,
	})
	require.NoError(t, err)

	// env beats file
	assert.Equal(t, 20, config.Limits.FollowerCap)
	// flags beat file
	assert.Equal(t, 5, config.Limits.PageCap)
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()
	config.MergeCommandLineFlags(map[string]interface{}{
		"output-dir":   "/tmp/out",
		"follower-cap": 7,
		"enrich":       false,
		"max-attempts": 0,
	})

	assert.Equal(t, "/tmp/out", config.Output.Directory)
	assert.Equal(t, 7, config.Limits.FollowerCap)
	assert.False(t, config.Limits.EnrichProfiles)
	assert.Equal(t, 1, config.Retry.MaxAttempts)
}

func TestMergeCommandLineFlagsZeroValues(t *testing.T) {
	config := DefaultConfig()
	config.MergeCommandLineFlags(map[string]interface{}{
		"log-level":    "",
		"follower-cap": 0,
		"page-cap":     0,
		"max-attempts": 0,
	})

	assert.Equal(t, DefaultConfig(), config)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := DefaultConfig()
	config.Limits.FollowerCap = 33
	require.NoError(t, config.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, config, loaded)
}

func TestSanitized(t *testing.T) {
	config := DefaultConfig()
	config.Instagram.SessionID = "1234567890%3Aabcdefgh"
	config.ScrapFly.APIKey = "short"

	s := config.Sanitized()
	assert.Equal(t, "1234...efgh", s.Instagram.SessionID)
	assert.Equal(t, "********", s.ScrapFly.APIKey)
	assert.Equal(t, "1234567890%3Aabcdefgh", config.Instagram.SessionID)
}

func TestFindConfigFile(t *testing.T) {
	t.Run("home config directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		chdir(t, t.TempDir())

		path := filepath.Join(home, ".config", "igfollowers", "config.yaml")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("limits:\n  follower_cap: 9\n"), 0644))

		config := DefaultConfig()
		assert.Equal(t, path, config.findConfigFile())
		require.NoError(t, config.LoadFromFile(""))
		assert.Equal(t, 9, config.Limits.FollowerCap)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		chdir(t, t.TempDir())

		config := DefaultConfig()
		assert.Empty(t, config.findConfigFile())
		assert.NoError(t, config.LoadFromFile(""))
	})
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
