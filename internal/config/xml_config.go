// Package config provides XML (or YAML) configuration for the upload service.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig represents the root configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"ResourceUploader" yaml:"-"`

	Server   ServerConfig   `xml:"Server" yaml:"server"`
	Storage  StorageConfig  `xml:"Storage" yaml:"storage"`
	Ledger   LedgerConfig   `xml:"Ledger" yaml:"ledger"`
	Advanced AdvancedConfig `xml:"Advanced" yaml:"advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port                 int    `xml:"Port" yaml:"port"`
	BindAddress          string `xml:"BindAddress" yaml:"bindAddress"`
	ReadTimeout          int    `xml:"ReadTimeoutSeconds" yaml:"readTimeoutSeconds"`
	WriteTimeout         int    `xml:"WriteTimeoutSeconds" yaml:"writeTimeoutSeconds"`
	IdleTimeout          int    `xml:"IdleTimeoutSeconds" yaml:"idleTimeoutSeconds"`
	BodyLimit            string `xml:"BodyLimit" yaml:"bodyLimit"`
	CacheMaxAgeSeconds   int    `xml:"CacheMaxAgeSeconds" yaml:"cacheMaxAgeSeconds"`
	PoweredBy            string `xml:"PoweredBy" yaml:"poweredBy"`
	EnableCompression    bool   `xml:"EnableCompression" yaml:"enableCompression"`
	CompressionLevel     int    `xml:"CompressionLevel" yaml:"compressionLevel"`
	ShutdownGraceSeconds int    `xml:"ShutdownGraceSeconds" yaml:"shutdownGraceSeconds"`
}

// StorageConfig contains upload storage settings
type StorageConfig struct {
	RootDirectory  string `xml:"RootDirectory" yaml:"rootDirectory"`
	FallbackFolder string `xml:"FallbackFolder" yaml:"fallbackFolder"`
	PublicPrefix   string `xml:"PublicPrefix" yaml:"publicPrefix"`
	Naming         string `xml:"Naming" yaml:"naming"` // "timestamp" or "uuid"
}

// LedgerConfig contains the upload history database settings
type LedgerConfig struct {
	Enabled bool   `xml:"Enabled" yaml:"enabled"`
	Path    string `xml:"Path" yaml:"path"`
	Threads int    `xml:"DuckDBThreads" yaml:"duckdbThreads"`
}

// AdvancedConfig contains logging and tuning options
type AdvancedConfig struct {
	LogLevel             string `xml:"LogLevel" yaml:"logLevel"`
	EnableRequestLogging bool   `xml:"EnableRequestLogging" yaml:"enableRequestLogging"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:                 80,
			BindAddress:          "0.0.0.0",
			ReadTimeout:          30,
			WriteTimeout:         30,
			IdleTimeout:          120,
			BodyLimit:            "20M",
			CacheMaxAgeSeconds:   10,
			PoweredBy:            "3.2.1",
			EnableCompression:    true,
			CompressionLevel:     5,
			ShutdownGraceSeconds: 10,
		},
		Storage: StorageConfig{
			RootDirectory:  "./resource",
			FallbackFolder: "temp",
			PublicPrefix:   "/resource",
			Naming:         "timestamp",
		},
		Ledger: LedgerConfig{
			Enabled: true,
			Path:    "./data/uploads.duckdb",
			Threads: 2,
		},
		Advanced: AdvancedConfig{
			LogLevel:             "info",
			EnableRequestLogging: true,
		},
	}
}

// isYAML reports whether configPath should be read as YAML
func isYAML(configPath string) bool {
	ext := strings.ToLower(filepath.Ext(configPath))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads configuration from an XML or YAML file
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.applyEnvironmentOverrides()
		config.resolvePaths(filepath.Dir(configPath))
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Missing elements keep their default values
	config := DefaultConfig()
	if isYAML(configPath) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = xml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvironmentOverrides()
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration, encoding by file extension
func (c *AppConfig) Save(configPath string) error {
	var content []byte
	if isYAML(configPath) {
		output, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		content = append([]byte("# Resource Uploader Configuration\n"), output...)
	} else {
		output, err := xml.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		header := []byte(xml.Header + "\n<!-- Resource Uploader Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
		content = append(header, output...)
	}

	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if root := os.Getenv("STORAGE_ROOT"); root != "" {
		c.Storage.RootDirectory = root
	}

	if ledgerPath := os.Getenv("LEDGER_PATH"); ledgerPath != "" {
		c.Ledger.Path = ledgerPath
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Advanced.LogLevel = level
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.RootDirectory) {
		c.Storage.RootDirectory = filepath.Join(configDir, c.Storage.RootDirectory)
	}
	if c.Ledger.Path != "" && !filepath.IsAbs(c.Ledger.Path) {
		c.Ledger.Path = filepath.Join(configDir, c.Ledger.Path)
	}
}

// GetStorageRoot returns the absolute storage root path
func (c *AppConfig) GetStorageRoot() string {
	return c.Storage.RootDirectory
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// Validate checks values the server cannot start without
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Storage.RootDirectory) == "" {
		return fmt.Errorf("storage root directory is required")
	}
	fallback := strings.TrimSpace(c.Storage.FallbackFolder)
	if fallback == "" || filepath.IsAbs(fallback) || strings.Contains(fallback, "..") {
		return fmt.Errorf("invalid fallback folder: %q", c.Storage.FallbackFolder)
	}
	if c.Ledger.Enabled && c.Ledger.Path == "" {
		return fmt.Errorf("ledger path is required when the ledger is enabled")
	}
	return nil
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	dirs := []string{
		c.Storage.RootDirectory,
		filepath.Join(c.Storage.RootDirectory, c.Storage.FallbackFolder),
	}
	if c.Ledger.Enabled {
		dirs = append(dirs, filepath.Dir(c.Ledger.Path))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
