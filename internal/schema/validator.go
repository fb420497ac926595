// Package schema validates configuration documents against the JSON
// Schemas shipped inside the binary. Validation happens before any
// config is trusted, so a bad file degrades to defaults instead of
// driving the audit with half-parsed settings.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/mvnneat/internal/assets"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Path    string `json:"path,omitempty"` // Single string path (e.g., "output.format")
	Message string `json:"message"`
}

// Result holds the validation result.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// registry holds pre-compiled schemas for known schema names.
var registry = make(map[string]*gojsonschema.Schema)

// init populates the registry with known schemas.
func init() {
	known := map[string]string{
		"check-v1.0.0":  "embedded_schemas/config/v1.0.0/check.yaml",
		"policy-v1.0.0": "embedded_schemas/config/v1.0.0/policy.yaml",
	}
	for name, path := range known {
		schemaBytes, ok := assets.GetSchema(path)
		if !ok || len(schemaBytes) == 0 {
			continue
		}
		// Convert YAML to JSON for gojsonschema
		var schemaData interface{}
		if err := yaml.Unmarshal(schemaBytes, &schemaData); err != nil {
			continue
		}
		jsonBytes, err := json.Marshal(schemaData)
		if err != nil {
			continue
		}
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jsonBytes))
		if err != nil {
			continue
		}
		registry[name] = compiled
	}
}

// Names returns the registered schema names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Validate validates data (interface{}) against the named schema.
func Validate(data interface{}, schemaName string) (*Result, error) {
	compiled, ok := registry[schemaName]
	if !ok {
		return nil, fmt.Errorf("schema %s not found in registry", schemaName)
	}

	result, err := compiled.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	res := &Result{Valid: result.Valid()}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			field := verr.Field()
			if field == "" {
				field = "root"
			}
			res.Errors = append(res.Errors, ValidationError{
				Path:    field,
				Message: verr.Description(),
			})
		}
	}
	return res, nil
}
