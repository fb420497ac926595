package policy

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/mvnneat/internal/schema"
)

// Engine evaluates manifest inventories against a loaded policy.
type Engine interface {
	// Evaluate returns the denial messages the policy produced for the
	// given inventory, sorted lexically. An empty slice means the
	// inventory is compliant.
	Evaluate(ctx context.Context, input Input) ([]string, error)

	// LoadPolicy reads a YAML policy file and compiles it for Evaluate.
	LoadPolicy(policyPath string) error
}

// OPAEngine transpiles YAML policies to Rego and evaluates them with
// the embedded OPA runtime.
type OPAEngine struct {
	regoCode string
}

// NewOPAEngine creates an engine with no policy loaded.
func NewOPAEngine() Engine {
	return &OPAEngine{}
}

// Evaluate runs the loaded policy against the inventory.
func (e *OPAEngine) Evaluate(ctx context.Context, input Input) ([]string, error) {
	if e.regoCode == "" {
		return nil, fmt.Errorf("no policy loaded")
	}

	rs, err := rego.New(
		rego.Query("data.mvnneat.manifest.deny"),
		rego.Input(input),
		rego.Module("policy.rego", e.regoCode),
	).Eval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	var denials []string
	for _, result := range rs {
		for _, expr := range result.Expressions {
			values, ok := expr.Value.([]interface{})
			if !ok {
				continue
			}
			for _, value := range values {
				if msg, ok := value.(string); ok {
					denials = append(denials, msg)
				}
			}
		}
	}
	sort.Strings(denials)
	return denials, nil
}

// LoadPolicy reads, validates, and transpiles a YAML policy file.
func (e *OPAEngine) LoadPolicy(policyPath string) error {
	cleanPath := filepath.Clean(policyPath)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("invalid policy path: %s", policyPath)
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve policy path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("policy file not accessible: %w", err)
	}

	data, err := os.ReadFile(absPath) // #nosec G304 -- path cleaned and resolved above
	if err != nil {
		return fmt.Errorf("failed to read policy file: %w", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse policy file: %w", err)
	}
	result, err := schema.Validate(doc, "policy-v1.0.0")
	if err != nil {
		return fmt.Errorf("failed to validate policy: %w", err)
	}
	if !result.Valid {
		details := make([]string, 0, len(result.Errors))
		for _, verr := range result.Errors {
			details = append(details, fmt.Sprintf("%s: %s", verr.Path, verr.Message))
		}
		return fmt.Errorf("invalid policy: %s", strings.Join(details, "; "))
	}

	regoCode, err := transpileToRego(doc)
	if err != nil {
		return fmt.Errorf("failed to transpile policy: %w", err)
	}
	e.regoCode = regoCode
	return nil
}

// transpileToRego converts a validated policy document to a Rego
// module with one deny rule per enabled knob.
func transpileToRego(doc map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("package mvnneat.manifest\n\n")

	if raw, ok := doc["forbidden_group_ids"].([]interface{}); ok && len(raw) > 0 {
		buf.WriteString("deny contains msg if {\n")
		buf.WriteString("    comp := input.components[_]\n")
		buf.WriteString(fmt.Sprintf("    forbidden := %s\n", formatRegoArray(raw)))
		buf.WriteString("    glob.match(forbidden[_], [], comp.group_id)\n")
		buf.WriteString("    msg := sprintf(\"%s %s:%s uses forbidden groupId\", [comp.kind, comp.group_id, comp.artifact_id])\n")
		buf.WriteString("}\n\n")
	}

	if forbid, ok := doc["forbid_snapshot_versions"].(bool); ok && forbid {
		buf.WriteString("deny contains msg if {\n")
		buf.WriteString("    comp := input.components[_]\n")
		buf.WriteString("    endswith(comp.version, \"-SNAPSHOT\")\n")
		buf.WriteString("    msg := sprintf(\"%s %s:%s pins snapshot version %s\", [comp.kind, comp.group_id, comp.artifact_id, comp.version])\n")
		buf.WriteString("}\n\n")
	}

	if require, ok := doc["require_managed_plugins"].(bool); ok && require {
		buf.WriteString("deny contains msg if {\n")
		buf.WriteString("    comp := input.components[_]\n")
		buf.WriteString("    comp.kind == \"plugin\"\n")
		buf.WriteString("    not comp.managed\n")
		buf.WriteString("    msg := sprintf(\"plugin %s:%s is not declared in <pluginManagement>\", [comp.group_id, comp.artifact_id])\n")
		buf.WriteString("}\n\n")
	}

	return buf.String(), nil
}

// formatRegoArray renders a YAML list as a Rego array literal.
func formatRegoArray(values []interface{}) string {
	var quoted []string
	for _, value := range values {
		quoted = append(quoted, fmt.Sprintf("\"%v\"", value))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
