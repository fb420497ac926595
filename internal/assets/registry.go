package assets

// Registry lists embedded assets available at runtime.
// Update this when adding/removing curated assets.

type AssetInfo struct {
	Family  string // e.g., schema, template
	Version string // e.g., v1.0.0
	Path    string // embed path
}

var Registry = []AssetInfo{
	{
		Family:  "schema",
		Version: "v1.0.0",
		Path:    "embedded_schemas/config/v1.0.0/check.yaml",
	},
	{
		Family:  "schema",
		Version: "v1.0.0",
		Path:    "embedded_schemas/config/v1.0.0/policy.yaml",
	},
	{
		Family:  "template",
		Version: "v1.0.0",
		Path:    "embedded_templates/site/index.html.hbs",
	},
}

// Verify reports the registry entries whose asset is missing from the
// binary. A non-empty result means the embed directives and this list
// have drifted apart.
func Verify() []AssetInfo {
	var missing []AssetInfo
	for _, info := range Registry {
		if _, err := GetEmbeddedAsset(info.Path); err != nil {
			missing = append(missing, info)
		}
	}
	return missing
}
