package config_test

import (
	"os"
	"path/filepath"
	"social/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "social.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
feed_size = 6

[twitter]
handle = "ryan"
count = 20

[github]
user = "ryan"

[dribbble]
handle = "ryan"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.FeedSize)
	assert.Equal(t, "ryan", cfg.Twitter.Handle)
	assert.Equal(t, 20, cfg.Twitter.Count)
	assert.Equal(t, "ryan", cfg.GitHub.User)
	assert.Equal(t, "ryan", cfg.Dribbble.Handle)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
[twitter]
handle = "ryan"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.FeedSize)
	assert.Equal(t, 10, cfg.Twitter.Count)
	assert.Equal(t, "https://api.twitter.com", cfg.Twitter.APIRoot)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIRoot)
	assert.Equal(t, "https://api.dribbble.com", cfg.Dribbble.APIRoot)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
