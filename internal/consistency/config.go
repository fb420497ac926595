/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package consistency

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/mvnneat/internal/maven"
	"github.com/fulmenhq/mvnneat/internal/schema"
	"github.com/fulmenhq/mvnneat/pkg/logger"
)

// Config controls what the check command audits.
type Config struct {
	Enabled    bool         `yaml:"enabled" toml:"enabled"`
	Pom        string       `yaml:"pom" toml:"pom"`
	Dependabot string       `yaml:"dependabot" toml:"dependabot"`
	Ecosystem  string       `yaml:"ecosystem" toml:"ecosystem"`
	Group      string       `yaml:"group" toml:"group"`
	Recursive  bool         `yaml:"recursive" toml:"recursive"`
	Include    []string     `yaml:"include" toml:"include"`
	Exclude    []string     `yaml:"exclude" toml:"exclude"`
	Policy     string       `yaml:"policy" toml:"policy"`
	Output     OutputConfig `yaml:"output" toml:"output"`
}

// OutputConfig holds report rendering preferences.
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"`
}

// DefaultConfig returns the conventional single-module Maven setup.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Pom:        "pom.xml",
		Dependabot: filepath.Join(".github", "dependabot.yml"),
		Ecosystem:  "maven",
		Group:      "maven-plugins",
		Include:    maven.DefaultIncludes(),
		Exclude:    maven.DefaultExcludes(),
		Output:     OutputConfig{Format: string(FormatText)},
	}
}

// LoadCheckConfig loads check configuration (Pattern 1: user-extensible-from-default).
// Search: project/.mvnneat/check.yaml|check.toml -> MVNNEAT_HOME/config/check.yaml -> built-in defaults
func LoadCheckConfig(target string) Config {
	return LoadCheckConfigFrom(target, DefaultConfig())
}

// LoadCheckConfigFrom is LoadCheckConfig over a caller-supplied base,
// so tool-level configuration can sit under the project file.
func LoadCheckConfigFrom(target string, base Config) Config {
	resolver := NewConfigResolver(target)
	configPath, found := resolver.ResolveConfigFile("check")
	if !found {
		return base
	}

	// #nosec G304 -- configPath from ResolveConfigFile with controlled paths
	data, err := os.ReadFile(configPath)
	if err != nil {
		return base
	}

	// Parse raw data to interface{} for schema validation
	var doc interface{}
	isTOML := strings.HasSuffix(configPath, ".toml")
	if isTOML {
		err = toml.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		logger.Debug(fmt.Sprintf("check config parse failed, using defaults: %v", err))
		return base
	}

	valResult, err := schema.Validate(doc, "check-v1.0.0")
	if err != nil || !valResult.Valid {
		if err != nil {
			logger.Debug(fmt.Sprintf("check config schema validation setup failed: %v", err))
		} else {
			logger.Debug(fmt.Sprintf("check config validation failed: %d errors", len(valResult.Errors)))
			for _, ve := range valResult.Errors {
				logger.Debug(fmt.Sprintf("- %s: %s", ve.Path, ve.Message))
			}
		}
		return base
	}

	// Unmarshal over a copy of the base so absent keys keep their
	// defaults; present keys, including enabled and recursive, win.
	fileCfg := base
	if isTOML {
		err = toml.Unmarshal(data, &fileCfg)
	} else {
		err = yaml.Unmarshal(data, &fileCfg)
	}
	if err != nil {
		return base
	}

	// Includes are opt-in: user globs replace the defaults. Excludes
	// extend them; build output stays filtered no matter what.
	fileCfg.Exclude = appendMissing(fileCfg.Exclude, base.Exclude)
	return fileCfg
}

func appendMissing(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range src {
		if _, ok := seen[s]; !ok {
			dst = append(dst, s)
		}
	}
	return dst
}

// NewConfigResolver creates a config resolver for the audit target.
// For single files, uses the file's directory for config resolution.
func NewConfigResolver(target string) ConfigResolver {
	workingDir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		workingDir = filepath.Dir(target)
	}
	if absDir, err := filepath.Abs(workingDir); err == nil {
		workingDir = absDir
	}
	return ConfigResolver{workingDir: workingDir}
}

// ConfigResolver provides config file resolution.
type ConfigResolver struct {
	workingDir string
}

// ResolveConfigFile finds category-specific config files using standardized search paths
func (cr *ConfigResolver) ResolveConfigFile(category string) (string, bool) {
	// 1. Project-level config, YAML preferred over TOML
	for _, ext := range []string{".yaml", ".toml"} {
		projectConfig := filepath.Join(cr.workingDir, ".mvnneat", category+ext)
		if info, err := os.Stat(projectConfig); err == nil && !info.IsDir() {
			return projectConfig, true
		}
	}

	// 2. User-level config (MVNNEAT_HOME)
	if homeDir := os.Getenv("MVNNEAT_HOME"); homeDir != "" {
		userConfig := filepath.Join(homeDir, "config", category+".yaml")
		if info, err := os.Stat(userConfig); err == nil && !info.IsDir() {
			return userConfig, true
		}
	} else if homeDir, err := os.UserHomeDir(); err == nil {
		userConfig := filepath.Join(homeDir, ".mvnneat", "config", category+".yaml")
		if info, err := os.Stat(userConfig); err == nil && !info.IsDir() {
			return userConfig, true
		}
	}

	// 3. No config file found
	return "", false
}
