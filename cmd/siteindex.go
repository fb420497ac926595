/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/mvnneat/internal/ops"
	"github.com/fulmenhq/mvnneat/internal/siteindex"
	"github.com/fulmenhq/mvnneat/pkg/config"
	"github.com/fulmenhq/mvnneat/pkg/exitcode"
	"github.com/fulmenhq/mvnneat/pkg/logger"
)

// siteCmd represents the site command
var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Maintain the gh-pages documentation site",
	Long: `Site maintains the published documentation store: one directory per
release plus the floating latest/ and snapshot/ copies CI publishes.`,
}

// siteIndexCmd represents the site index command
var siteIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Generate the documentation store index.html",
	Long: `Index scans the documentation store for release directories, reads the
.version markers of the floating latest/ and snapshot/ copies, and
renders the landing page listing every release newest first.`,
	RunE: runSiteIndex,
}

func init() {
	siteCmd.AddCommand(siteIndexCmd)
	rootCmd.AddCommand(siteCmd)

	// Register with ops registry
	caps := ops.GetDefaultCapabilities(ops.GroupWorkflow, ops.CategoryGeneration)
	if err := ops.RegisterCommandWithTaxonomy("site index", ops.GroupWorkflow, ops.CategoryGeneration, caps, siteIndexCmd, "Generate the documentation store index.html"); err != nil {
		logger.Error("Failed to register site index command", logger.Err(err))
	}

	siteIndexCmd.Flags().String("store", filepath.Join("target", "gh-pages-store"), "Documentation store directory")
	siteIndexCmd.Flags().String("pom", "pom.xml", "POM supplying the project name and description")
	siteIndexCmd.Flags().String("template", "", "Handlebars template overriding the embedded page")
	siteIndexCmd.Flags().Bool("dry-run", false, "Render the page without writing it")
	siteIndexCmd.Flags().Bool("json", false, "Print the generation result as JSON")
}

func runSiteIndex(cmd *cobra.Command, _ []string) error {
	opts := resolveSiteOptions(cmd)

	result, err := siteindex.Generate(opts)
	if err != nil {
		logger.Error("Site index generation failed", logger.Err(err))
		switch {
		case errors.Is(err, siteindex.ErrStore):
			os.Exit(exitcode.FileSystemError)
		case errors.Is(err, siteindex.ErrTemplate):
			os.Exit(exitcode.TemplateError)
		default:
			os.Exit(exitcode.GeneralError)
		}
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON output: %v", err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
			return fmt.Errorf("failed to write JSON output: %v", err)
		}
	}

	if opts.DryRun {
		logger.Info(fmt.Sprintf("Dry run: would write %s with %d release(s)", result.Output, len(result.Releases)))
		return nil
	}
	logger.Info(fmt.Sprintf("Generated index.html with %d release(s)", len(result.Releases)))
	return nil
}

// resolveSiteOptions layers the generation options: built-in defaults,
// tool-level config, then explicit flags.
func resolveSiteOptions(cmd *cobra.Command) siteindex.Options {
	opts := siteindex.Options{
		Store: filepath.Join("target", "gh-pages-store"),
		Pom:   "pom.xml",
	}

	if toolCfg, err := config.LoadConfig(); err == nil {
		site := toolCfg.GetSiteConfig()
		if site.Store != "" {
			opts.Store = site.Store
		}
		opts.TemplatePath = site.Template
	} else {
		logger.Debug(fmt.Sprintf("tool config unavailable, using defaults: %v", err))
	}

	if cmd.Flags().Changed("store") {
		opts.Store, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("pom") {
		opts.Pom, _ = cmd.Flags().GetString("pom")
	}
	if cmd.Flags().Changed("template") {
		opts.TemplatePath, _ = cmd.Flags().GetString("template")
	}
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	return opts
}
