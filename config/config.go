package config // gofmt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const AppName = "pagecrawler"

var (
	ErrNegativeMaxLinks = errors.New("invalid max links per page: must be non-negative")
	ErrInvalidTimeout   = errors.New("invalid request timeout: must be positive")
	ErrConfigNotFound   = errors.New("configuration file not found")
	ErrUnknownFormat    = errors.New("unknown configuration file format")
)

type Config struct {
	StorageFolder   string `toml:"storage_folder" yaml:"storage_folder"`
	MaxLinksPerPage int    `toml:"max_links_per_page" yaml:"max_links_per_page"`
	URL             string `toml:"url" yaml:"url"`
	Depth           int    `toml:"depth" yaml:"depth"`
	ReqTimeout      int    `toml:"req_timeout" yaml:"req_timeout"` //in seconds
	UserAgent       string `toml:"user_agent" yaml:"user_agent"`
	LogLevel        string `toml:"log_level" yaml:"log_level"`
}

func NewConfig() *Config {
	return &Config{
		StorageFolder:   ".",
		MaxLinksPerPage: 5,
		Depth:           2,
		ReqTimeout:      10,
		UserAgent:       AppName,
		LogLevel:        "info",
	}
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.ReqTimeout) * time.Second
}

// Validate checks the values the crawler cannot work around. An empty url or
// storage folder is left to the crawler, which reports it as a precondition
// violation.
func (c *Config) Validate() error {
	if c.MaxLinksPerPage < 0 {
		return ErrNegativeMaxLinks
	}
	if c.ReqTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// DefaultPath is the config file looked up when none is given explicitly.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// LoadFile decodes path over cfg. The format is picked by extension:
// .toml, .yaml or .yml.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigNotFound
		}
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return nil
}
