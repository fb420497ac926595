/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/mvnneat/internal/ops"
	"github.com/fulmenhq/mvnneat/internal/schema"
	"github.com/fulmenhq/mvnneat/pkg/buildinfo"
	"github.com/fulmenhq/mvnneat/pkg/config"
	"github.com/fulmenhq/mvnneat/pkg/logger"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

// colorize returns colored text if colors are enabled
func colorize(text, color string, useColor bool) string {
	if !useColor {
		return text
	}
	return color + text + colorReset
}

// getColorPreference checks if colors should be used
func getColorPreference(cmd *cobra.Command) bool {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return !noColor
}

// EnvData represents the structured data for environment information.
type EnvData struct {
	System   SystemInfo    `json:"system"`
	Home     HomeInfo      `json:"home"`
	Schemas  []string      `json:"schemas"`
	Extended *ExtendedInfo `json:"extended,omitempty"`
}

// SystemInfo holds system-related information.
type SystemInfo struct {
	OS           string    `json:"os"`
	Architecture string    `json:"architecture"`
	GoVersion    string    `json:"goVersion"`
	NumCPU       int       `json:"numCPU"`
	Hostname     string    `json:"hostname"`
	WorkingDir   string    `json:"workingDir"`
	Timestamp    time.Time `json:"timestamp"`
	Version      string    `json:"version"`
}

// HomeInfo describes where mvnneat keeps user-level configuration.
type HomeInfo struct {
	MvnneatHome string `json:"mvnneatHome"`
	ConfigDir   string `json:"configDir"`
	FromEnv     bool   `json:"fromEnv"`
}

// ExtendedInfo holds extended environment information.
type ExtendedInfo struct {
	IgnoreFiles map[string]IgnoreFileInfo `json:"ignoreFiles"`
}

// IgnoreFileInfo describes one ignore file the discovery honors.
type IgnoreFileInfo struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Patterns int    `json:"patterns"`
}

// envinfoCmd represents the envinfo command
var envinfoCmd = &cobra.Command{
	Use:   "envinfo",
	Short: "Display environment and system information",
	Long: `Display detailed information about the system, the mvnneat home
directory, and the schemas embedded in the binary.

This command provides insights into the operating system, architecture,
Go version, and configuration locations that affect mvnneat's behavior.`,
	RunE: runEnvinfo,
}

func init() {
	rootCmd.AddCommand(envinfoCmd)

	// Register with ops registry
	capabilities := ops.GetDefaultCapabilities(ops.GroupSupport, ops.CategoryEnvironment)
	if err := ops.RegisterCommandWithTaxonomy("envinfo", ops.GroupSupport, ops.CategoryEnvironment, capabilities, envinfoCmd, "Show system information"); err != nil {
		logger.Error("Failed to register envinfo command", logger.Err(err))
	}

	envinfoCmd.Flags().Bool("json", false, "Output in JSON format")
	envinfoCmd.Flags().Bool("extended", false, "Show extended information including ignore file status")
}

func runEnvinfo(cmd *cobra.Command, _ []string) error {
	jsonFormat, _ := cmd.Flags().GetBool("json")
	extended, _ := cmd.Flags().GetBool("extended")
	useColor := getColorPreference(cmd)

	envData := collectEnvironmentData(extended)

	out := cmd.OutOrStdout()

	if jsonFormat {
		jsonData, err := json.MarshalIndent(envData, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON output: %v", err)
		}
		if _, err := fmt.Fprintln(out, string(jsonData)); err != nil {
			return fmt.Errorf("failed to write JSON output: %v", err)
		}
		return nil
	}

	keyColor := colorCyan
	resetColor := colorReset
	if !useColor {
		keyColor = ""
		resetColor = ""
	}
	separator := colorize("==================================================", colorCyan, useColor)

	header := colorize("🖥️  System Information", colorBold+colorBlue, useColor)
	fmt.Fprintln(out, header)
	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "%s%-16s%s | %s\n", keyColor, "OS", resetColor, envData.System.OS)
	fmt.Fprintf(out, "%s%-16s%s | %s\n", keyColor, "Architecture", resetColor, envData.System.Architecture)
	fmt.Fprintf(out, "%s%-16s%s | %s\n", keyColor, "Go Version", resetColor, envData.System.GoVersion)
	fmt.Fprintf(out, "%s%-16s%s | %d\n", keyColor, "CPU Cores", resetColor, envData.System.NumCPU)
	fmt.Fprintf(out, "%s%-16s%s | %s\n", keyColor, "Hostname", resetColor, envData.System.Hostname)
	fmt.Fprintf(out, "%s%-16s%s | %s\n", keyColor, "Working Dir", resetColor, envData.System.WorkingDir)
	fmt.Fprintf(out, "%s%-16s%s | %s\n", keyColor, "Timestamp", resetColor, envData.System.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(out, "%s%-16s%s | %s\n", keyColor, "Mvnneat Version", resetColor, envData.System.Version)

	fmt.Fprintln(out, "")
	homeHeader := colorize("🏠 Mvnneat Home", colorBold+colorBlue, useColor)
	fmt.Fprintln(out, homeHeader)
	fmt.Fprintln(out, separator)
	homeSource := "default (~/.mvnneat)"
	if envData.Home.FromEnv {
		homeSource = "MVNNEAT_HOME"
	}
	fmt.Fprintf(out, "%s%-16s%s | %s\n", keyColor, "Home", resetColor, envData.Home.MvnneatHome)
	fmt.Fprintf(out, "%s%-16s%s | %s\n", keyColor, "Config Dir", resetColor, envData.Home.ConfigDir)
	fmt.Fprintf(out, "%s%-16s%s | %s\n", keyColor, "Source", resetColor, homeSource)

	fmt.Fprintln(out, "")
	schemaHeader := colorize("📜 Embedded Schemas", colorBold+colorBlue, useColor)
	fmt.Fprintln(out, schemaHeader)
	fmt.Fprintln(out, separator)
	for _, name := range envData.Schemas {
		fmt.Fprintf(out, "  - %s\n", name)
	}

	if extended && envData.Extended != nil {
		fmt.Fprintln(out, "")
		ignoreHeader := colorize("🚫 Ignore Configuration", colorBold+colorBlue, useColor)
		fmt.Fprintln(out, ignoreHeader)
		fmt.Fprintln(out, separator)

		names := make([]string, 0, len(envData.Extended.IgnoreFiles))
		for name := range envData.Extended.IgnoreFiles {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			info := envData.Extended.IgnoreFiles[name]
			status := "not found"
			if info.Exists {
				status = fmt.Sprintf("found (%d patterns)", info.Patterns)
			}
			fmt.Fprintf(out, "%s%-24s%s | %s\n", keyColor, name, resetColor, status)
			fmt.Fprintf(out, "%s%-24s%s | %s\n", keyColor, "  Path", resetColor, info.Path)
		}
	}

	return nil
}

// collectEnvironmentData gathers system and configuration information.
func collectEnvironmentData(extended bool) EnvData {
	hostname, _ := os.Hostname()
	wd, _ := os.Getwd()

	envData := EnvData{
		System: SystemInfo{
			OS:           runtime.GOOS,
			Architecture: runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			Hostname:     hostname,
			WorkingDir:   wd,
			Timestamp:    time.Now(),
			Version:      buildinfo.BinaryVersion,
		},
		Home:    collectHomeInfo(),
		Schemas: sortedSchemaNames(),
	}

	if extended {
		envData.Extended = &ExtendedInfo{
			IgnoreFiles: getIgnoreFileInfo(),
		}
	}

	return envData
}

func collectHomeInfo() HomeInfo {
	info := HomeInfo{FromEnv: os.Getenv("MVNNEAT_HOME") != ""}
	if home, err := config.GetMvnneatHome(); err == nil {
		info.MvnneatHome = home
		info.ConfigDir = filepath.Join(home, "config")
	}
	return info
}

func sortedSchemaNames() []string {
	names := schema.Names()
	sort.Strings(names)
	return names
}

// getIgnoreFileInfo returns information about ignore files
func getIgnoreFileInfo() map[string]IgnoreFileInfo {
	info := make(map[string]IgnoreFileInfo)
	wd, _ := os.Getwd()

	for name, path := range map[string]string{
		".gitignore":     filepath.Join(wd, ".gitignore"),
		".mvnneatignore": filepath.Join(wd, ".mvnneatignore"),
	} {
		entry := IgnoreFileInfo{Path: path}
		if content, err := os.ReadFile(filepath.Clean(path)); err == nil { // #nosec G304 -- fixed path under working directory
			entry.Exists = true
			entry.Patterns = countPatterns(string(content))
		}
		info[name] = entry
	}

	// User-level ignore file under the mvnneat home
	var userIgnorePath string
	if mvnneatHome, err := config.GetMvnneatHome(); err == nil {
		userIgnorePath = filepath.Join(mvnneatHome, ".mvnneatignore")
	}
	userEntry := IgnoreFileInfo{Path: userIgnorePath}
	if userIgnorePath != "" {
		if content, err := os.ReadFile(filepath.Clean(userIgnorePath)); err == nil { // #nosec G304 -- cleaned path within user profile
			userEntry.Exists = true
			userEntry.Patterns = countPatterns(string(content))
		}
	}
	info["user-.mvnneatignore"] = userEntry

	return info
}

// countPatterns counts non-empty, non-comment lines in ignore file content
func countPatterns(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			count++
		}
	}
	return count
}
