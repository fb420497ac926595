/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/mvnneat/internal/ops"
	"github.com/fulmenhq/mvnneat/pkg/buildinfo"
	"github.com/fulmenhq/mvnneat/pkg/exitcode"
	"github.com/fulmenhq/mvnneat/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mvnneat",
		Short: "Build-consistency auditor for Maven repositories",
		Long: `Mvnneat keeps Maven repository hygiene in check: plugin and dependency
versions stay centralized in the management sections, the Dependabot
update group keeps tracking the managed plugin groupIds, and the
gh-pages documentation index stays current.

Examples:
   mvnneat check                # Audit pom.xml against .github/dependabot.yml
   mvnneat check --recursive    # Audit every module POM in the repository
   mvnneat site index           # Generate the documentation store index.html
   mvnneat version              # Show version (use --extended for build info)`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Wire Cobra's built-in --version using mvnneat's binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("mvnneat {{.Version}}\n")

	// Grouped help by command group (Neat → Workflow → Support)
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		cmd.Println()
		cmd.Println("Audit Commands (Neat):")
		for _, c := range reg.GetCommandsByGroup(ops.GroupNeat) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Workflow Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupWorkflow) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Support Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupSupport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "mvnneat",
	}

	if err := logger.Initialize(config); err != nil {
		// Fallback to stderr
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			// Best effort: nothing else we can do here
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
}
