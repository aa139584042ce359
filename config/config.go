package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TwitterConfig holds non-secret microblog settings. The bearer token
// comes from the environment, never from this file.
type TwitterConfig struct {
	Handle  string `toml:"handle"`
	APIRoot string `toml:"api_root,omitempty"`
	Count   int    `toml:"count,omitempty"`
}

type GitHubConfig struct {
	User    string `toml:"user"`
	APIRoot string `toml:"api_root,omitempty"`
}

type DribbbleConfig struct {
	Handle  string `toml:"handle"`
	APIRoot string `toml:"api_root,omitempty"`
}

// Config is the top-level provider configuration.
type Config struct {
	FeedSize int            `toml:"feed_size,omitempty"`
	Twitter  TwitterConfig  `toml:"twitter"`
	GitHub   GitHubConfig   `toml:"github"`
	Dribbble DribbbleConfig `toml:"dribbble"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.FeedSize == 0 {
		config.FeedSize = 12
	}
	if config.Twitter.APIRoot == "" {
		config.Twitter.APIRoot = "https://api.twitter.com"
	}
	if config.Twitter.Count == 0 {
		config.Twitter.Count = 10
	}
	if config.GitHub.APIRoot == "" {
		config.GitHub.APIRoot = "https://api.github.com"
	}
	if config.Dribbble.APIRoot == "" {
		config.Dribbble.APIRoot = "https://api.dribbble.com"
	}

	return &config, nil
}
