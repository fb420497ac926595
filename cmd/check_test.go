/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/mvnneat/internal/consistency"
	"github.com/fulmenhq/mvnneat/internal/maven"
)

const auditablePom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <build>
    <pluginManagement>
      <plugins>
        <plugin>
          <groupId>org.apache.maven.plugins</groupId>
          <artifactId>maven-compiler-plugin</artifactId>
          <version>3.13.0</version>
        </plugin>
      </plugins>
    </pluginManagement>
    <plugins>
      <plugin>
        <groupId>org.apache.maven.plugins</groupId>
        <artifactId>maven-compiler-plugin</artifactId>
      </plugin>
    </plugins>
  </build>
</project>
`

const strayBuildPom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <build>
    <pluginManagement>
      <plugins>
        <plugin>
          <groupId>org.apache.maven.plugins</groupId>
          <artifactId>maven-compiler-plugin</artifactId>
          <version>3.13.0</version>
        </plugin>
      </plugins>
    </pluginManagement>
    <plugins>
      <plugin>
        <groupId>org.apache.maven.plugins</groupId>
        <artifactId>maven-compiler-plugin</artifactId>
        <version>3.13.0</version>
      </plugin>
    </plugins>
  </build>
</project>
`

const forbiddenDependencyPom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <build>
    <pluginManagement>
      <plugins>
        <plugin>
          <groupId>org.apache.maven.plugins</groupId>
          <artifactId>maven-compiler-plugin</artifactId>
          <version>3.13.0</version>
        </plugin>
      </plugins>
    </pluginManagement>
  </build>
  <dependencies>
    <dependency>
      <groupId>com.sun.xml</groupId>
      <artifactId>bind</artifactId>
    </dependency>
  </dependencies>
</project>
`

const auditableDependabot = `version: 2
updates:
  - package-ecosystem: "maven"
    directory: "/"
    schedule:
      interval: "weekly"
    groups:
      maven-plugins:
        patterns:
          - "org.apache.maven.plugins:*"
`

func writeProjectFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// scaffoldProject lays out a single-module Maven project in a tempdir.
func scaffoldProject(t *testing.T, pom string) string {
	t.Helper()
	dir := t.TempDir()
	writeProjectFile(t, dir, "pom.xml", pom)
	writeProjectFile(t, dir, ".github/dependabot.yml", auditableDependabot)
	return dir
}

// checkFlagStub mirrors the check command's flag set so config
// resolution can be tested without the shared command instance.
func checkFlagStub() *cobra.Command {
	cmd := &cobra.Command{Use: "check"}
	cmd.Flags().String("pom", "pom.xml", "")
	cmd.Flags().String("dependabot", filepath.Join(".github", "dependabot.yml"), "")
	cmd.Flags().String("ecosystem", "maven", "")
	cmd.Flags().String("group", "maven-plugins", "")
	cmd.Flags().Bool("recursive", false, "")
	cmd.Flags().StringSlice("include", nil, "")
	cmd.Flags().StringSlice("exclude", nil, "")
	cmd.Flags().Bool("no-ignore", false, "")
	cmd.Flags().String("policy", "", "")
	cmd.Flags().StringP("format", "f", "text", "")
	cmd.Flags().StringP("output", "o", "", "")
	cmd.Flags().String("profile", "", "")
	return cmd
}

func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MVNNEAT_HOME", t.TempDir())
}

func TestExecuteCheckConsistent(t *testing.T) {
	dir := scaffoldProject(t, auditablePom)

	report, err := executeCheck(context.Background(), dir, consistency.DefaultConfig(), false)
	if err != nil {
		t.Fatalf("executeCheck: %v", err)
	}
	if report.Failed() {
		t.Fatalf("consistent project failed: %v", report.Violations)
	}
	if !report.Summary.Consistent || report.Summary.Total != 0 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}
	if want := []string{"pom.xml"}; !reflect.DeepEqual(report.Metadata.Manifests, want) {
		t.Errorf("Manifests = %v, want %v", report.Metadata.Manifests, want)
	}
	if report.Metadata.Target != dir {
		t.Errorf("Target = %q, want %q", report.Metadata.Target, dir)
	}
}

func TestExecuteCheckStrayVersion(t *testing.T) {
	dir := scaffoldProject(t, strayBuildPom)

	report, err := executeCheck(context.Background(), dir, consistency.DefaultConfig(), false)
	if err != nil {
		t.Fatalf("executeCheck: %v", err)
	}
	if !report.Failed() {
		t.Fatal("stray plugin version not reported")
	}
	if len(report.Violations) != 1 {
		t.Fatalf("violations = %v, want exactly one", report.Violations)
	}
	v := report.Violations[0]
	if v.Rule != consistency.RuleStrayPluginVersion {
		t.Errorf("Rule = %q, want %q", v.Rule, consistency.RuleStrayPluginVersion)
	}
	if v.File != "pom.xml" {
		t.Errorf("File = %q, want pom.xml", v.File)
	}
	if report.Summary.ByRule[consistency.RuleStrayPluginVersion] != 1 {
		t.Errorf("ByRule = %v", report.Summary.ByRule)
	}
}

func TestExecuteCheckMissingDependabot(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "pom.xml", auditablePom)

	_, err := executeCheck(context.Background(), dir, consistency.DefaultConfig(), false)
	if !errors.Is(err, errDependabotRead) {
		t.Fatalf("err = %v, want errDependabotRead", err)
	}
}

func TestExecuteCheckMissingPom(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/dependabot.yml", auditableDependabot)

	_, err := executeCheck(context.Background(), dir, consistency.DefaultConfig(), false)
	if !errors.Is(err, errManifestLoad) {
		t.Fatalf("err = %v, want errManifestLoad", err)
	}
}

func TestExecuteCheckRecursive(t *testing.T) {
	dir := scaffoldProject(t, auditablePom)
	writeProjectFile(t, dir, "module-a/pom.xml", auditablePom)
	// Build output must stay out of the audit scope.
	writeProjectFile(t, dir, "module-a/target/pom.xml", strayBuildPom)

	cfg := consistency.DefaultConfig()
	cfg.Recursive = true
	report, err := executeCheck(context.Background(), dir, cfg, false)
	if err != nil {
		t.Fatalf("executeCheck: %v", err)
	}
	if report.Failed() {
		t.Fatalf("unexpected violations: %v", report.Violations)
	}
	want := []string{"module-a/pom.xml", "pom.xml"}
	if !reflect.DeepEqual(report.Metadata.Manifests, want) {
		t.Errorf("Manifests = %v, want %v", report.Metadata.Manifests, want)
	}
}

func TestExecuteCheckRecursiveNoManifests(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/dependabot.yml", auditableDependabot)

	cfg := consistency.DefaultConfig()
	cfg.Recursive = true
	_, err := executeCheck(context.Background(), dir, cfg, false)
	if !errors.Is(err, errManifestLoad) {
		t.Fatalf("err = %v, want errManifestLoad", err)
	}
	if !strings.Contains(err.Error(), "no manifests found") {
		t.Errorf("err = %v, want discovery message", err)
	}
}

func TestExecuteCheckPolicyDenial(t *testing.T) {
	dir := scaffoldProject(t, forbiddenDependencyPom)
	writeProjectFile(t, dir, "policy.yaml", "forbidden_group_ids:\n  - \"com.sun.*\"\n")

	cfg := consistency.DefaultConfig()
	cfg.Policy = "policy.yaml"
	report, err := executeCheck(context.Background(), dir, cfg, false)
	if err != nil {
		t.Fatalf("executeCheck: %v", err)
	}
	if len(report.Violations) != 1 {
		t.Fatalf("violations = %v, want exactly one", report.Violations)
	}
	v := report.Violations[0]
	if v.Rule != consistency.RulePolicy {
		t.Errorf("Rule = %q, want %q", v.Rule, consistency.RulePolicy)
	}
	if v.File != "pom.xml" {
		t.Errorf("File = %q, want pom.xml", v.File)
	}
	if !strings.Contains(v.Message, "com.sun.xml:bind") || !strings.Contains(v.Message, "forbidden groupId") {
		t.Errorf("Message = %q", v.Message)
	}
}

func TestExecuteCheckPolicyUnreadable(t *testing.T) {
	dir := scaffoldProject(t, auditablePom)

	cfg := consistency.DefaultConfig()
	cfg.Policy = "missing-policy.yaml"
	_, err := executeCheck(context.Background(), dir, cfg, false)
	if !errors.Is(err, errPolicyStage) {
		t.Fatalf("err = %v, want errPolicyStage", err)
	}
}

func TestResolveCheckConfigDefaults(t *testing.T) {
	isolateUserConfig(t)

	cfg := resolveCheckConfig(checkFlagStub(), t.TempDir())
	if !reflect.DeepEqual(cfg, consistency.DefaultConfig()) {
		t.Errorf("resolved = %+v, want defaults", cfg)
	}
}

func TestResolveCheckConfigProjectFile(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	writeProjectFile(t, dir, ".mvnneat/check.yaml", "recursive: true\ngroup: \"build-plugins\"\n")

	cfg := resolveCheckConfig(checkFlagStub(), dir)
	if !cfg.Recursive {
		t.Error("project config recursive not applied")
	}
	if cfg.Group != "build-plugins" {
		t.Errorf("Group = %q, want build-plugins", cfg.Group)
	}
	// Untouched settings keep their defaults.
	if cfg.Pom != "pom.xml" {
		t.Errorf("Pom = %q, want pom.xml", cfg.Pom)
	}
}

func TestResolveCheckConfigFlagsWin(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	writeProjectFile(t, dir, ".mvnneat/check.yaml", "group: \"build-plugins\"\n")

	cmd := checkFlagStub()
	if err := cmd.Flags().Set("group", "release-plugins"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("pom", "parent/pom.xml"); err != nil {
		t.Fatal(err)
	}

	cfg := resolveCheckConfig(cmd, dir)
	if cfg.Group != "release-plugins" {
		t.Errorf("Group = %q, want release-plugins", cfg.Group)
	}
	if cfg.Pom != "parent/pom.xml" {
		t.Errorf("Pom = %q, want parent/pom.xml", cfg.Pom)
	}
}

func TestResolveCheckConfigExcludeExtendsDefaults(t *testing.T) {
	isolateUserConfig(t)

	cmd := checkFlagStub()
	if err := cmd.Flags().Set("exclude", "legacy/**"); err != nil {
		t.Fatal(err)
	}

	cfg := resolveCheckConfig(cmd, t.TempDir())
	if len(cfg.Exclude) != len(maven.DefaultExcludes())+1 {
		t.Fatalf("Exclude = %v, want defaults plus legacy/**", cfg.Exclude)
	}
	if cfg.Exclude[len(cfg.Exclude)-1] != "legacy/**" {
		t.Errorf("Exclude = %v, want legacy/** appended", cfg.Exclude)
	}
}

func TestResolveCheckConfigCIProfile(t *testing.T) {
	isolateUserConfig(t)

	cmd := checkFlagStub()
	if err := cmd.Flags().Set("profile", "ci"); err != nil {
		t.Fatal(err)
	}

	cfg := resolveCheckConfig(cmd, t.TempDir())
	if cfg.Output.Format != string(consistency.FormatJSON) {
		t.Errorf("Format = %q, want json", cfg.Output.Format)
	}
	if !cfg.Recursive {
		t.Error("ci profile did not enable recursive audit")
	}
}

func TestResolveCheckConfigCIProfileRespectsExplicitFlags(t *testing.T) {
	isolateUserConfig(t)

	cmd := checkFlagStub()
	if err := cmd.Flags().Set("profile", "ci"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("format", "markdown"); err != nil {
		t.Fatal(err)
	}

	cfg := resolveCheckConfig(cmd, t.TempDir())
	if cfg.Output.Format != string(consistency.FormatMarkdown) {
		t.Errorf("Format = %q, explicit flag must win over the profile", cfg.Output.Format)
	}
	if !cfg.Recursive {
		t.Error("ci profile did not enable recursive audit")
	}
}

func TestRunCheckConsistentText(t *testing.T) {
	isolateUserConfig(t)
	dir := scaffoldProject(t, auditablePom)

	cmd := checkFlagStub()
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := runCheck(cmd, []string{dir}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if !strings.Contains(out.String(), consistency.OKMessage) {
		t.Errorf("output = %q, want OK message", out.String())
	}
}

func TestRunCheckConsistentJSON(t *testing.T) {
	isolateUserConfig(t)
	dir := scaffoldProject(t, auditablePom)

	cmd := checkFlagStub()
	cmd.SetContext(context.Background())
	if err := cmd.Flags().Set("format", "json"); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := runCheck(cmd, []string{dir}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}

	var report consistency.Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if report.Metadata.Tool != "mvnneat" {
		t.Errorf("Tool = %q, want mvnneat", report.Metadata.Tool)
	}
	if !report.Summary.Consistent {
		t.Errorf("summary = %+v, want consistent", report.Summary)
	}
}

func TestRunCheckReportFile(t *testing.T) {
	isolateUserConfig(t)
	dir := scaffoldProject(t, auditablePom)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	cmd := checkFlagStub()
	cmd.SetContext(context.Background())
	if err := cmd.Flags().Set("format", "json"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("output", reportPath); err != nil {
		t.Fatal(err)
	}

	if err := runCheck(cmd, []string{dir}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	var report consistency.Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report file is not valid JSON: %v", err)
	}
	if want := []string{"pom.xml"}; !reflect.DeepEqual(report.Metadata.Manifests, want) {
		t.Errorf("Manifests = %v, want %v", report.Metadata.Manifests, want)
	}
}

func TestRunCheckDisabledByConfig(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	writeProjectFile(t, dir, ".mvnneat/check.yaml", "enabled: false\n")

	// No pom or dependabot config exists; a disabled check must not
	// touch the filesystem at all.
	if err := runCheck(checkFlagStub(), []string{dir}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
}
