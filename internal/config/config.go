package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CyberAustin/AFSCbot/internal/dataset"
)

const (
	configPathEnv     = "AFSCBOT_CONFIG"
	clientIDEnv       = "REDDIT_CLIENT_ID"
	clientSecretEnv   = "REDDIT_CLIENT_SECRET"
	usernameEnv       = "REDDIT_USERNAME"
	passwordEnv       = "REDDIT_PASSWORD"
	databasePathEnv   = "AFSCBOT_DB_PATH"
	defaultPollPeriod = 10 * time.Second
)

// Config holds high-level settings required across the application.
type Config struct {
	Reddit   RedditConfig    `yaml:"reddit"`
	Database DatabaseConfig  `yaml:"database"`
	Dataset  dataset.Sources `yaml:"dataset"`
	Wiki     WikiConfig      `yaml:"wiki"`
	Logging  LoggingConfig   `yaml:"logging"`
	PIDFile  string          `yaml:"pidFile"`
}

// RedditConfig wires credentials and the stream target.
type RedditConfig struct {
	UserAgent    string `yaml:"userAgent"`
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Subreddit    string `yaml:"subreddit"`
	PollSeconds  int    `yaml:"pollSeconds"`
}

// PollPeriod resolves the configured poll cadence, defaulting when unset.
func (r RedditConfig) PollPeriod() time.Duration {
	if r.PollSeconds <= 0 {
		return defaultPollPeriod
	}
	return time.Duration(r.PollSeconds) * time.Second
}

// DatabaseConfig describes the comment-ledger SQLite file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// WikiConfig locates the subreddit wiki index used for job links.
type WikiConfig struct {
	IndexURL string `yaml:"indexUrl"`
}

// LoggingConfig selects level and an optional log file alongside stdout.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(clientIDEnv); v != "" {
		c.Reddit.ClientID = v
	}
	if v := os.Getenv(clientSecretEnv); v != "" {
		c.Reddit.ClientSecret = v
	}
	if v := os.Getenv(usernameEnv); v != "" {
		c.Reddit.Username = v
	}
	if v := os.Getenv(passwordEnv); v != "" {
		c.Reddit.Password = v
	}
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Reddit.UserAgent != "" {
		base.Reddit.UserAgent = override.Reddit.UserAgent
	}
	if override.Reddit.ClientID != "" {
		base.Reddit.ClientID = override.Reddit.ClientID
	}
	if override.Reddit.ClientSecret != "" {
		base.Reddit.ClientSecret = override.Reddit.ClientSecret
	}
	if override.Reddit.Username != "" {
		base.Reddit.Username = override.Reddit.Username
	}
	if override.Reddit.Password != "" {
		base.Reddit.Password = override.Reddit.Password
	}
	if override.Reddit.Subreddit != "" {
		base.Reddit.Subreddit = override.Reddit.Subreddit
	}
	if override.Reddit.PollSeconds > 0 {
		base.Reddit.PollSeconds = override.Reddit.PollSeconds
	}

	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Dataset.EnlistedBases != "" {
		base.Dataset.EnlistedBases = override.Dataset.EnlistedBases
	}
	if override.Dataset.OfficerBases != "" {
		base.Dataset.OfficerBases = override.Dataset.OfficerBases
	}
	if override.Dataset.EnlistedPrefixes != "" {
		base.Dataset.EnlistedPrefixes = override.Dataset.EnlistedPrefixes
	}
	if override.Dataset.OfficerPrefixes != "" {
		base.Dataset.OfficerPrefixes = override.Dataset.OfficerPrefixes
	}
	if override.Dataset.EnlistedShreds != "" {
		base.Dataset.EnlistedShreds = override.Dataset.EnlistedShreds
	}
	if override.Dataset.OfficerShreds != "" {
		base.Dataset.OfficerShreds = override.Dataset.OfficerShreds
	}

	if override.Wiki.IndexURL != "" {
		base.Wiki = override.Wiki
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}

	if override.PIDFile != "" {
		base.PIDFile = override.PIDFile
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Reddit: RedditConfig{
			UserAgent: "AFSCbot/1.0 (by /u/AFSCbot)",
			Subreddit: "AFSCbot",
		},
		Database: DatabaseConfig{Path: "AFSCbotCommentRecord.db"},
		Dataset: dataset.Sources{
			EnlistedBases:    "data/EnlistedAFSCs.csv",
			OfficerBases:     "data/OfficerAFSCs.csv",
			EnlistedPrefixes: "data/EnlistedPrefixes.csv",
			OfficerPrefixes:  "data/OfficerPrefixes.csv",
			EnlistedShreds:   "data/EnlistedShreds.csv",
			OfficerShreds:    "data/OfficerShreds.csv",
		},
		Wiki:    WikiConfig{IndexURL: "https://www.reddit.com/r/AirForce/wiki/index"},
		Logging: LoggingConfig{Level: "info", File: "AFSCbot.log"},
		PIDFile: "AFSCbot.pid",
	}
}
