/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/

// Package consistency cross-validates Maven POMs against the Dependabot
// update configuration. It enforces two local rules per manifest (no
// plugin or dependency version outside the management sections) and two
// global ones (every managed plugin groupId covered by an update
// pattern, every pattern still matching something).
package consistency

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"

	"github.com/fulmenhq/mvnneat/internal/dependabot"
	"github.com/fulmenhq/mvnneat/internal/maven"
)

// Checker holds the knobs of one audit run. The zero value is unusable;
// construct with NewChecker and override fields as needed.
type Checker struct {
	// Ecosystem is the Dependabot package-ecosystem to inspect.
	Ecosystem string
	// Group is the update group whose patterns must track the managed
	// plugin groupIds.
	Group string
	// PomFile labels single-manifest violations.
	PomFile string
	// DependabotFile labels coverage violations.
	DependabotFile string
}

// NewChecker returns a Checker with the conventional Maven defaults.
func NewChecker() *Checker {
	return &Checker{
		Ecosystem:      "maven",
		Group:          "maven-plugins",
		PomFile:        "pom.xml",
		DependabotFile: ".github/dependabot.yml",
	}
}

// Check audits a single manifest: stray-version rules first, then
// pattern coverage against that manifest's managed plugin groupIds.
// The result is in deterministic order and empty when consistent.
func (c *Checker) Check(pom *etree.Element, dependabotText string) []Violation {
	violations := c.StrayVersions(pom, c.PomFile)
	return append(violations, c.Coverage(ManagedGroupIDs(pom), dependabotText)...)
}

// CheckAll audits several module manifests against one Dependabot
// config. Stray-version rules run per manifest; coverage runs once
// against the union of managed plugin groupIds, since a single
// Dependabot directory entry updates the whole repository.
func (c *Checker) CheckAll(manifests []*maven.Manifest, dependabotText string) []Violation {
	union := make(map[string]struct{})
	var violations []Violation
	for _, m := range manifests {
		root := m.Root()
		if root == nil {
			continue
		}
		file := m.Path
		if file == "" {
			file = c.PomFile
		}
		violations = append(violations, c.StrayVersions(root, file)...)
		for id := range ManagedGroupIDs(root) {
			union[id] = struct{}{}
		}
	}
	return append(violations, c.Coverage(union, dependabotText)...)
}

// StrayVersions applies the centralization rules to one manifest:
// every plugin version belongs in pluginManagement, every dependency
// version in dependencyManagement. Dependencies declared inside a
// plugin element are build-time tooling pins and exempt. Findings keep
// document order.
func (c *Checker) StrayVersions(pom *etree.Element, file string) []Violation {
	managedPlugins := maven.ManagedSet(pom, maven.PluginTag, maven.PluginManagementTag)
	var violations []Violation
	for _, plugin := range maven.ElementsOfKind(pom, maven.PluginTag) {
		if managedPlugins.Has(plugin) {
			continue
		}
		version, declared := maven.InlineVersion(plugin)
		if !declared {
			continue
		}
		violations = append(violations, Violation{
			File: file,
			Rule: RuleStrayPluginVersion,
			Message: fmt.Sprintf("%s has <version>%s</version> defined outside <%s>",
				maven.CoordinatesOf(plugin), version, maven.PluginManagementTag),
		})
	}

	managedDeps := maven.ManagedSet(pom, maven.DependencyTag, maven.DependencyManagementTag)
	pluginDeps := maven.ManagedSet(pom, maven.DependencyTag, maven.PluginTag)
	for _, dep := range maven.ElementsOfKind(pom, maven.DependencyTag) {
		if managedDeps.Has(dep) || pluginDeps.Has(dep) {
			continue
		}
		version, declared := maven.InlineVersion(dep)
		if !declared {
			continue
		}
		violations = append(violations, Violation{
			File: file,
			Rule: RuleStrayDependencyVersion,
			Message: fmt.Sprintf("%s has <version>%s</version> defined outside <%s>",
				maven.CoordinatesOf(dep), version, maven.DependencyManagementTag),
		})
	}
	return violations
}

// Coverage cross-checks managed plugin groupIds against the update
// group's patterns. A missing or empty patterns list is a single
// violation that suppresses the per-groupId and per-pattern findings,
// which would all fire at once and bury the actual problem.
func (c *Checker) Coverage(groupIDs map[string]struct{}, dependabotText string) []Violation {
	patterns, located := dependabot.ExtractGroupPatterns(dependabotText, c.Ecosystem, c.Group)
	if len(patterns) == 0 {
		msg := fmt.Sprintf("could not find patterns for the '%s' group", c.Group)
		if located {
			msg = fmt.Sprintf("patterns list for the '%s' group is empty", c.Group)
		}
		return []Violation{{File: c.DependabotFile, Rule: RuleMissingPatterns, Message: msg}}
	}

	var violations []Violation
	ids := make([]string, 0, len(groupIDs))
	for id := range groupIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if !anyCovers(patterns, id) {
			violations = append(violations, Violation{
				File: c.DependabotFile,
				Rule: RuleUncoveredGroupID,
				Message: fmt.Sprintf("plugin groupId '%s' from <%s> is not covered by any pattern in the '%s' group",
					id, maven.PluginManagementTag, c.Group),
			})
		}
	}
	for _, pattern := range patterns {
		if !coversAny(pattern, groupIDs) {
			violations = append(violations, Violation{
				File: c.DependabotFile,
				Rule: RuleStalePattern,
				Message: fmt.Sprintf("pattern '%s' in the '%s' group does not match any plugin groupId in <%s>",
					pattern, c.Group, maven.PluginManagementTag),
			})
		}
	}
	return violations
}

// ManagedGroupIDs collects the distinct trimmed groupIds of plugins
// under pluginManagement. Blank groupIds are dropped here; the stray
// rules already name such plugins as "unknown".
func ManagedGroupIDs(pom *etree.Element) map[string]struct{} {
	ids := make(map[string]struct{})
	for plugin := range maven.ManagedSet(pom, maven.PluginTag, maven.PluginManagementTag) {
		if id := maven.GroupID(plugin); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids
}

func anyCovers(patterns []string, groupID string) bool {
	for _, pattern := range patterns {
		if dependabot.Covers(pattern, groupID) {
			return true
		}
	}
	return false
}

func coversAny(pattern string, groupIDs map[string]struct{}) bool {
	for id := range groupIDs {
		if dependabot.Covers(pattern, id) {
			return true
		}
	}
	return false
}
