package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for mvnneat
type Config struct {
	Check  CheckConfig  `mapstructure:"check"`
	Site   SiteConfig   `mapstructure:"site"`
	Output OutputConfig `mapstructure:"output"`
}

// CheckConfig holds consistency check settings
type CheckConfig struct {
	Pom        string `mapstructure:"pom"`
	Dependabot string `mapstructure:"dependabot"`
	Ecosystem  string `mapstructure:"ecosystem"`
	Group      string `mapstructure:"group"`
	Recursive  bool   `mapstructure:"recursive"`
	Policy     string `mapstructure:"policy"`
}

// SiteConfig holds site index generation settings
type SiteConfig struct {
	Store    string `mapstructure:"store"`
	Template string `mapstructure:"template"`
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Format string `mapstructure:"format"` // "text", "markdown", "json"
	Color  bool   `mapstructure:"color"`
}

var defaultConfig = Config{
	Check: CheckConfig{
		Pom:        "pom.xml",
		Dependabot: ".github/dependabot.yml",
		Ecosystem:  "maven",
		Group:      "maven-plugins",
		Recursive:  false,
		Policy:     "",
	},
	Site: SiteConfig{
		Store:    filepath.Join("target", "gh-pages-store"),
		Template: "",
	},
	Output: OutputConfig{
		Format: "text",
		Color:  true,
	},
}

// LoadConfig loads configuration from various sources
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("check.pom", defaultConfig.Check.Pom)
	v.SetDefault("check.dependabot", defaultConfig.Check.Dependabot)
	v.SetDefault("check.ecosystem", defaultConfig.Check.Ecosystem)
	v.SetDefault("check.group", defaultConfig.Check.Group)
	v.SetDefault("check.recursive", defaultConfig.Check.Recursive)
	v.SetDefault("check.policy", defaultConfig.Check.Policy)
	v.SetDefault("site.store", defaultConfig.Site.Store)
	v.SetDefault("site.template", defaultConfig.Site.Template)
	v.SetDefault("output.format", defaultConfig.Output.Format)
	v.SetDefault("output.color", defaultConfig.Output.Color)

	// Configuration file search paths
	v.SetConfigName("mvnneat")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // Current directory
	v.AddConfigPath("$HOME") // Home directory

	// Add mvnneat home directory if available
	if configDir, err := GetConfigDir(); err == nil {
		v.AddConfigPath(configDir)
	}

	// Environment variables
	v.SetEnvPrefix("MVNNEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to read config file (optional); ignore error to use defaults
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &config, nil
}

// LoadProjectConfig loads project-specific configuration
func LoadProjectConfig() (*Config, error) {
	// First load global config
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	// Look for project-specific config files
	projectConfigs := []string{
		".mvnneat.yaml",
		".mvnneat.yml",
		".mvnneat.json",
		"mvnneat.yaml",
		"mvnneat.yml",
		"mvnneat.json",
	}

	for _, configFile := range projectConfigs {
		if _, err := os.Stat(configFile); err == nil {
			v := viper.New()
			v.SetConfigFile(configFile)

			if err := v.ReadInConfig(); err != nil {
				continue // Try next config file
			}

			// Merge project config with global config
			if err := v.Unmarshal(config); err != nil {
				continue
			}

			break
		}
	}

	return config, nil
}

// GetCheckConfig returns consistency check configuration
func (c *Config) GetCheckConfig() CheckConfig {
	return c.Check
}

// GetSiteConfig returns site index configuration
func (c *Config) GetSiteConfig() SiteConfig {
	return c.Site
}

// GetOutputConfig returns output configuration
func (c *Config) GetOutputConfig() OutputConfig {
	return c.Output
}

// GetMvnneatHome returns the mvnneat home directory
func GetMvnneatHome() (string, error) {
	// Check environment variable first
	if home := os.Getenv("MVNNEAT_HOME"); home != "" {
		return home, nil
	}

	// Use standard dev tool convention: ~/.mvnneat
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %v", err)
	}

	return filepath.Join(homeDir, ".mvnneat"), nil
}

// EnsureMvnneatHome creates the mvnneat home directory if it doesn't exist
func EnsureMvnneatHome() (string, error) {
	homeDir, err := GetMvnneatHome()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(homeDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create mvnneat home directory: %v", err)
	}

	return homeDir, nil
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	homeDir, err := EnsureMvnneatHome()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, "config")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create config directory: %v", err)
	}
	return configDir, nil
}

// GetLogDir returns the log directory
func GetLogDir() (string, error) {
	homeDir, err := EnsureMvnneatHome()
	if err != nil {
		return "", err
	}
	logDir := filepath.Join(homeDir, "logs")
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create log directory: %v", err)
	}
	return logDir, nil
}
