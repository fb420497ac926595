/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package consistency

// Rule identifies which consistency rule produced a violation.
type Rule string

const (
	// RuleStrayPluginVersion flags a plugin version declared outside
	// pluginManagement.
	RuleStrayPluginVersion Rule = "stray-plugin-version"
	// RuleStrayDependencyVersion flags a dependency version declared
	// outside dependencyManagement (plugin-scoped dependencies exempt).
	RuleStrayDependencyVersion Rule = "stray-dependency-version"
	// RuleUncoveredGroupID flags a managed plugin groupId no Dependabot
	// pattern covers.
	RuleUncoveredGroupID Rule = "uncovered-group-id"
	// RuleStalePattern flags a Dependabot pattern covering no managed
	// plugin groupId.
	RuleStalePattern Rule = "stale-pattern"
	// RuleMissingPatterns flags an absent or empty patterns list for
	// the audited update group.
	RuleMissingPatterns Rule = "missing-patterns"
	// RulePolicy carries denials from an organization policy.
	RulePolicy Rule = "policy"
)

// Violation is one consistency finding. Every violation is fatal: a
// non-empty result fails the check.
type Violation struct {
	File    string `json:"file"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.File + ": " + v.Message
}
