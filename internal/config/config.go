// Package config provides configuration loading and structs for the Listahan server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/listahan/listahan/internal/match"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool                `yaml:"debug"`
	Server  ServerConfig        `yaml:"server"`
	Extract ExtractConfig       `yaml:"extract"`
	Columns map[string][]string `yaml:"columns"`
	Export  ExportConfig        `yaml:"export"`
	Watch   WatchConfig         `yaml:"watch"`
}

// ServerConfig holds HTTP server and upload limits.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxUploadFiles int    `yaml:"max_upload_files"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// ExtractConfig holds extraction settings. MaxWorkers zero means one worker
// per CPU.
type ExtractConfig struct {
	MaxWorkers int `yaml:"max_workers"`
}

// ExportConfig holds spreadsheet export settings.
type ExportConfig struct {
	CredentialsPath string `yaml:"credentials_path"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	SpreadsheetName string `yaml:"spreadsheet_name"`
	WorksheetName   string `yaml:"worksheet_name"`
}

// WatchConfig holds drop-directory ingest settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	OutputPath  string   `yaml:"output_path"`
}

// Aliases converts the columns section into the matcher's alias set. Fields
// not mentioned keep their built-in variants; a configured field replaces its
// variants entirely. Unknown field names are rejected.
func (c *Config) Aliases() (match.AliasSet, error) {
	aliases := match.DefaultAliases()
	for name, variants := range c.Columns {
		field := match.Field(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := aliases[field]; !ok {
			return nil, fmt.Errorf("unknown column field %q in config", name)
		}
		if len(variants) > 0 {
			aliases[field] = variants
		}
	}
	return aliases, nil
}

// Load reads and parses the config file at path, applies defaults, and
// expands relative paths. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	if cfg.Export.CredentialsPath != "" {
		cfg.Export.CredentialsPath = expandPath(cfg.Export.CredentialsPath, configDir)
	}
	if cfg.Watch.OutputPath != "" {
		cfg.Watch.OutputPath = expandPath(cfg.Watch.OutputPath, configDir)
	}
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
