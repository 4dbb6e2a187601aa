package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xxxsen/cubesync/internal/constant"
)

// Config describes the application level configuration loaded from json.
type Config struct {
	Root   string       `json:"root"`
	Canvas CanvasConfig `json:"canvas"`
	Cache  CacheConfig  `json:"cache"`
	Thumbs ThumbsConfig `json:"thumbs"`
	S3     S3Config     `json:"s3"`
}

// CanvasConfig is the fixed cover canvas the firmware renders.
type CanvasConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CacheConfig locates the local cover-fetch cache database.
type CacheConfig struct {
	DBFile string `json:"db_file"`
}

// ThumbsConfig holds the options for the remote thumbnail repository.
type ThumbsConfig struct {
	Host       string `json:"host"`
	TimeoutSec int    `json:"timeout_sec"`
	MinScore   int    `json:"min_score"`
}

// S3Config holds the options for the backup object store.
type S3Config struct {
	Host            string `json:"host"`
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token"`
	ForcePathStyle  bool   `json:"force_path_style"`
}

// Default returns the configuration used when no config file exists. Only
// the backup commands need anything beyond these values.
func Default() *Config {
	return &Config{
		Root:   constant.DefaultRoot,
		Canvas: CanvasConfig{Width: 640, Height: 480},
		Cache:  CacheConfig{DBFile: "cubesync.db"},
		Thumbs: ThumbsConfig{
			Host:       "https://thumbnails.libretro.com",
			TimeoutSec: 30,
			MinScore:   2,
		},
	}
}

// LoadFirst tries to load configuration from the given paths, returning the
// first successfully decoded configuration. If none of the paths contain a
// readable config, an error is returned.
func LoadFirst(paths ...string) (*Config, error) {
	var lastErr error
	for _, path := range paths {
		if path == "" {
			continue
		}
		cfg, err := Load(path)
		if errors.Is(err, os.ErrNotExist) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("config not found in paths: %v", paths)
	}
	return nil, lastErr
}

// Load reads configuration from a single json file path. Missing fields fall
// back to their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate performs basic validation of the configuration.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("config.root must be set")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("config.canvas must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Thumbs.Host == "" {
		return errors.New("config.thumbs.host must be set")
	}
	return nil
}

// ValidateS3 checks the fields the backup commands depend on.
func (c *Config) ValidateS3() error {
	if c.S3.Host == "" {
		return errors.New("config.s3.host must be set")
	}
	if c.S3.Bucket == "" {
		return errors.New("config.s3.bucket must be set")
	}
	return nil
}
