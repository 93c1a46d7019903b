// Package config reads the optional csvload.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig holds destination settings. DSN wins over the granular
// fields, which only apply to the postgres driver.
type ConnectionConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// IsEmpty reports whether no connection setting was given.
func (c ConnectionConfig) IsEmpty() bool {
	return c == ConnectionConfig{}
}

type ProjectConfig struct {
	Driver     string           `yaml:"driver"`
	Connection ConnectionConfig `yaml:"connection"`
	BatchSize  int              `yaml:"batch_size"`
	Delimiter  string           `yaml:"delimiter"`
	Extensions []string         `yaml:"extensions"`
	Limit      int              `yaml:"limit"`
	Workers    int              `yaml:"workers"`
	Timeout    string           `yaml:"timeout"`
}

const ConfigFileName = "csvload.yaml"

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file at an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
