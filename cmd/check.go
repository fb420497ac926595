/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/fulmenhq/mvnneat/internal/consistency"
	"github.com/fulmenhq/mvnneat/internal/gitctx"
	"github.com/fulmenhq/mvnneat/internal/maven"
	"github.com/fulmenhq/mvnneat/internal/ops"
	"github.com/fulmenhq/mvnneat/internal/policy"
	"github.com/fulmenhq/mvnneat/pkg/config"
	"github.com/fulmenhq/mvnneat/pkg/exitcode"
	"github.com/fulmenhq/mvnneat/pkg/logger"
)

// Stage markers so failures map to distinct exit codes.
var (
	errDependabotRead = errors.New("dependabot config not readable")
	errManifestLoad   = errors.New("manifest load failed")
	errPolicyStage    = errors.New("policy evaluation failed")
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [target]",
	Short: "Audit Maven version centralization and Dependabot coverage",
	Long: `Check audits a Maven repository for build-consistency drift:

  - plugin versions declared outside <pluginManagement>
  - dependency versions declared outside <dependencyManagement>
  - managed plugin groupIds missing from the Dependabot update group
  - Dependabot patterns that no longer match any managed plugin

With --recursive every module POM below the target is audited; the
Dependabot coverage rules then run once against the union of managed
plugin groupIds. An optional --policy file adds organization rules
evaluated with embedded OPA.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Register with ops registry
	caps := ops.GetDefaultCapabilities(ops.GroupNeat, ops.CategoryValidation)
	if err := ops.RegisterCommandWithTaxonomy("check", ops.GroupNeat, ops.CategoryValidation, caps, checkCmd, "Audit Maven version centralization and Dependabot coverage"); err != nil {
		logger.Error("Failed to register check command", logger.Err(err))
	}

	checkCmd.Flags().String("pom", "pom.xml", "Root POM path, relative to target")
	checkCmd.Flags().String("dependabot", filepath.Join(".github", "dependabot.yml"), "Dependabot config path, relative to target")
	checkCmd.Flags().String("ecosystem", "maven", "Dependabot package-ecosystem to inspect")
	checkCmd.Flags().String("group", "maven-plugins", "Dependabot update group whose patterns must track pluginManagement")
	checkCmd.Flags().Bool("recursive", false, "Audit every module POM below the target")
	checkCmd.Flags().StringSlice("include", nil, "Manifest include globs for --recursive (default conventional layout)")
	checkCmd.Flags().StringSlice("exclude", nil, "Manifest exclude globs for --recursive (extends defaults)")
	checkCmd.Flags().Bool("no-ignore", false, "Ignore .gitignore and .mvnneatignore during discovery")
	checkCmd.Flags().String("policy", "", "YAML policy file with organization manifest rules")
	checkCmd.Flags().StringP("format", "f", "text", "Report format: text, markdown, or json")
	checkCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	checkCmd.Flags().String("profile", "", "Flag profile: 'ci' switches unset flags to json format and recursive audit")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	cfg := resolveCheckConfig(cmd, target)
	if !cfg.Enabled {
		logger.Info("Check disabled by configuration")
		return nil
	}

	format, err := consistency.ParseFormat(cfg.Output.Format)
	if err != nil {
		logger.Error("Invalid report format", logger.Err(err))
		os.Exit(exitcode.UnsupportedFormat)
	}

	noIgnore, _ := cmd.Flags().GetBool("no-ignore")
	report, err := executeCheck(cmd.Context(), target, cfg, noIgnore)
	if err != nil {
		logger.Error("Check failed", logger.Err(err))
		switch {
		case errors.Is(err, errDependabotRead), errors.Is(err, errManifestLoad):
			os.Exit(exitcode.FileSystemError)
		case errors.Is(err, errPolicyStage):
			os.Exit(exitcode.PolicyError)
		default:
			os.Exit(exitcode.GeneralError)
		}
	}

	formatter := consistency.NewFormatter(format)
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" {
		f, err := os.OpenFile(filepath.Clean(outputPath), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			logger.Error("Cannot open report file", logger.Err(err))
			os.Exit(exitcode.FileSystemError)
		}
		writeErr := formatter.Write(f, report)
		if closeErr := f.Close(); writeErr == nil {
			writeErr = closeErr
		}
		if writeErr != nil {
			logger.Error("Cannot write report file", logger.Err(writeErr))
			os.Exit(exitcode.FileSystemError)
		}
		logger.Info("Report written", logger.String("path", outputPath), logger.Int("violations", report.Summary.Total))
	} else {
		out := cmd.OutOrStdout()
		// Text findings go to stderr like the rest of the diagnostics;
		// structured formats stay on stdout for piping.
		if format == consistency.FormatText && report.Failed() {
			out = cmd.ErrOrStderr()
		}
		if err := formatter.Write(out, report); err != nil {
			logger.Error("Cannot render report", logger.Err(err))
			os.Exit(exitcode.GeneralError)
		}
	}

	if report.Failed() {
		os.Exit(exitcode.ValidationError)
	}
	return nil
}

// resolveCheckConfig layers the audit configuration: built-in defaults,
// tool-level config (viper), the project's .mvnneat/check.yaml, the CI
// profile, and finally explicit flags.
func resolveCheckConfig(cmd *cobra.Command, target string) consistency.Config {
	base := consistency.DefaultConfig()

	if toolCfg, err := config.LoadConfig(); err == nil {
		check := toolCfg.GetCheckConfig()
		base.Pom = check.Pom
		base.Dependabot = check.Dependabot
		base.Ecosystem = check.Ecosystem
		base.Group = check.Group
		base.Recursive = check.Recursive
		base.Policy = check.Policy
		base.Output.Format = toolCfg.GetOutputConfig().Format
	} else {
		logger.Debug(fmt.Sprintf("tool config unavailable, using defaults: %v", err))
	}

	cfg := consistency.LoadCheckConfigFrom(target, base)

	if profile, _ := cmd.Flags().GetString("profile"); profile != "" {
		applyCheckProfile(profile, cmd.Flags(), &cfg)
	}

	if cmd.Flags().Changed("pom") {
		cfg.Pom, _ = cmd.Flags().GetString("pom")
	}
	if cmd.Flags().Changed("dependabot") {
		cfg.Dependabot, _ = cmd.Flags().GetString("dependabot")
	}
	if cmd.Flags().Changed("ecosystem") {
		cfg.Ecosystem, _ = cmd.Flags().GetString("ecosystem")
	}
	if cmd.Flags().Changed("group") {
		cfg.Group, _ = cmd.Flags().GetString("group")
	}
	if cmd.Flags().Changed("recursive") {
		cfg.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if cmd.Flags().Changed("include") {
		cfg.Include, _ = cmd.Flags().GetStringSlice("include")
	}
	if cmd.Flags().Changed("exclude") {
		extra, _ := cmd.Flags().GetStringSlice("exclude")
		cfg.Exclude = append(cfg.Exclude, extra...)
	}
	if cmd.Flags().Changed("policy") {
		cfg.Policy, _ = cmd.Flags().GetString("policy")
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format, _ = cmd.Flags().GetString("format")
	}
	return cfg
}

// applyCheckProfile sets profile defaults without overriding explicit flags
func applyCheckProfile(profile string, flags *pflag.FlagSet, cfg *consistency.Config) {
	switch profile {
	case "ci":
		if !flags.Changed("format") {
			cfg.Output.Format = string(consistency.FormatJSON)
		}
		if !flags.Changed("recursive") {
			cfg.Recursive = true
		}
	}
}

// executeCheck loads the audit inputs and runs every rule. It returns
// the report even when violations exist; errors mean the audit could
// not run at all.
func executeCheck(ctx context.Context, target string, cfg consistency.Config, noIgnore bool) (*consistency.Report, error) {
	start := time.Now()

	dependabotPath := filepath.Join(target, cfg.Dependabot)
	dependabotText, err := os.ReadFile(filepath.Clean(dependabotPath)) // #nosec G304 -- operator-supplied audit input
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDependabotRead, err)
	}

	checker := consistency.NewChecker()
	checker.Ecosystem = cfg.Ecosystem
	checker.Group = cfg.Group
	checker.PomFile = filepath.ToSlash(cfg.Pom)
	checker.DependabotFile = filepath.ToSlash(cfg.Dependabot)

	manifests, err := loadManifests(ctx, target, cfg, noIgnore)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errManifestLoad, err)
	}
	logger.Debug(fmt.Sprintf("auditing %d manifest(s)", len(manifests)))

	violations := checker.CheckAll(manifests, string(dependabotText))

	if cfg.Policy != "" {
		policyViolations, err := evaluatePolicy(ctx, target, cfg.Policy, manifests)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errPolicyStage, err)
		}
		violations = append(violations, policyViolations...)
	}

	report := consistency.NewReport(target, violations, time.Since(start))
	report.Metadata.Git = gitctx.Collect(target)
	for _, m := range manifests {
		report.Metadata.Manifests = append(report.Metadata.Manifests, m.Path)
	}
	return report, nil
}

// loadManifests resolves the audit scope: one root POM, or every
// discovered module POM in recursive mode.
func loadManifests(ctx context.Context, target string, cfg consistency.Config, noIgnore bool) ([]*maven.Manifest, error) {
	if !cfg.Recursive {
		doc, err := maven.Load(filepath.Join(target, cfg.Pom))
		if err != nil {
			return nil, err
		}
		return []*maven.Manifest{{Path: filepath.ToSlash(cfg.Pom), Doc: doc}}, nil
	}

	paths, err := maven.DiscoverManifests(target, maven.DiscoverOptions{
		Include:  cfg.Include,
		Exclude:  cfg.Exclude,
		NoIgnore: noIgnore,
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no manifests found under %s", target)
	}
	return maven.LoadAll(ctx, target, paths)
}

// evaluatePolicy runs the OPA policy against every manifest inventory
// and converts denials into policy violations.
func evaluatePolicy(ctx context.Context, target, policyPath string, manifests []*maven.Manifest) ([]consistency.Violation, error) {
	if !filepath.IsAbs(policyPath) {
		policyPath = filepath.Join(target, policyPath)
	}

	engine := policy.NewOPAEngine()
	if err := engine.LoadPolicy(policyPath); err != nil {
		return nil, err
	}

	var violations []consistency.Violation
	for _, m := range manifests {
		root := m.Root()
		if root == nil {
			continue
		}
		input := policy.InventoryOf(root)
		input.File = m.Path
		denials, err := engine.Evaluate(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, msg := range denials {
			violations = append(violations, consistency.Violation{
				File:    m.Path,
				Rule:    consistency.RulePolicy,
				Message: msg,
			})
		}
	}
	return violations, nil
}
