/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/mvnneat/internal/ops"
	"github.com/fulmenhq/mvnneat/pkg/buildinfo"
	"github.com/fulmenhq/mvnneat/pkg/logger"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show mvnneat version information",
	Long: `Show the mvnneat version. With --extended, include the module version
and VCS metadata the Go toolchain stamped into the binary.`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	// Register with ops registry
	caps := ops.GetDefaultCapabilities(ops.GroupSupport, ops.CategoryInformation)
	if err := ops.RegisterCommandWithTaxonomy("version", ops.GroupSupport, ops.CategoryInformation, caps, versionCmd, "Show version information"); err != nil {
		logger.Error("Failed to register version command", logger.Err(err))
	}

	versionCmd.Flags().Bool("extended", false, "Show detailed build and VCS information")
	versionCmd.Flags().Bool("json", false, "Output version information in JSON format")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	out := cmd.OutOrStdout()
	vcs := buildinfo.VCS()

	if jsonOutput {
		versionInfo := map[string]interface{}{
			"version":   buildinfo.BinaryVersion,
			"goVersion": runtime.Version(),
			"platform":  runtime.GOOS,
			"arch":      runtime.GOARCH,
		}
		if extended {
			versionInfo["moduleVersion"] = buildinfo.ModuleVersion()
			versionInfo["vcsRevision"] = vcs.Revision
			versionInfo["vcsTime"] = vcs.Time
			versionInfo["vcsModified"] = vcs.Modified
		}
		jsonData, err := json.MarshalIndent(versionInfo, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %v", err)
		}
		fmt.Fprintln(out, string(jsonData))
		return nil
	}

	fmt.Fprintf(out, "mvnneat %s\n", buildinfo.BinaryVersion)
	fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	if extended {
		if moduleVersion := buildinfo.ModuleVersion(); moduleVersion != "" {
			fmt.Fprintf(out, "Module version: %s\n", moduleVersion)
		}
		revision := vcs.Revision
		if len(revision) > 12 {
			revision = revision[:12]
		}
		if revision != "" {
			fmt.Fprintf(out, "Git commit: %s\n", revision)
		}
		if vcs.Time != "" {
			fmt.Fprintf(out, "Build time: %s\n", vcs.Time)
		}
		if vcs.Modified {
			fmt.Fprintf(out, "Git status: dirty (uncommitted changes)\n")
		} else {
			fmt.Fprintf(out, "Git status: clean\n")
		}
	}

	return nil
}
