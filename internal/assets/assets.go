package assets

import (
	"embed"
	"io/fs"
)

//go:embed embedded_templates
var Templates embed.FS

//go:embed embedded_schemas
var Schemas embed.FS

// GetSchema returns the embedded schema bytes by embed path
// (e.g., "embedded_schemas/config/v1.0.0/check.yaml").
func GetSchema(path string) ([]byte, bool) {
	data, err := Schemas.ReadFile(path)
	return data, err == nil
}

// GetTemplatesFS returns the template tree rooted below the embed
// directory, so callers address files as "site/index.html.hbs".
func GetTemplatesFS() fs.FS {
	if sub, err := fs.Sub(Templates, "embedded_templates"); err == nil {
		return sub
	}
	return Templates
}

// GetSchemasFS returns the schema tree rooted below the embed directory.
func GetSchemasFS() fs.FS {
	if sub, err := fs.Sub(Schemas, "embedded_schemas"); err == nil {
		return sub
	}
	return Schemas
}

// GetEmbeddedAsset retrieves an embedded asset by its full embed path.
func GetEmbeddedAsset(path string) ([]byte, error) {
	if data, err := fs.ReadFile(Templates, path); err == nil {
		return data, nil
	}
	if data, err := fs.ReadFile(Schemas, path); err == nil {
		return data, nil
	}
	return nil, fs.ErrNotExist
}
