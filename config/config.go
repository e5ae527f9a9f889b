package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type AuthConfig struct {
	Enabled       bool     `json:"enabled" yaml:"enabled"`
	PrivateKey    string   `json:"private_key" yaml:"private_key"`
	PublicKey     string   `json:"public_key" yaml:"public_key"`
	TokenDuration int      `json:"token_duration" yaml:"token_duration"` // in seconds
	DefaultRoles  []string `json:"default_roles" yaml:"default_roles"`
}

type TLSConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	CertFile string `json:"cert_file" yaml:"cert_file"`
	KeyFile  string `json:"key_file" yaml:"key_file"`
}

type Config struct {
	HTTPPort     int        `json:"http_port" yaml:"http_port"`
	Backend      string     `json:"backend" yaml:"backend"` // "json" or "memory"
	DataFile     string     `json:"data_file" yaml:"data_file"`
	CreateDirs   bool       `json:"create_dirs" yaml:"create_dirs"`
	AccessMode   string     `json:"access_mode" yaml:"access_mode"`
	CacheEnabled bool       `json:"cache_enabled" yaml:"cache_enabled"`
	LogLevel     string     `json:"log_level" yaml:"log_level"`
	Auth         AuthConfig `json:"auth" yaml:"auth"`
	TLS          TLSConfig  `json:"tls" yaml:"tls"`
}

// LoadConfig reads a JSON or YAML config file, selected by extension.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", filename, err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.HTTPPort == 0 {
		c.HTTPPort = 8080
	}
	if c.Backend == "" {
		if c.DataFile != "" {
			c.Backend = "json"
		} else {
			c.Backend = "memory"
		}
	}
	if c.AccessMode == "" {
		c.AccessMode = "r+"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
