// Package policy evaluates organization manifest rules with embedded
// OPA. Policies are small YAML documents transpiled to Rego, so teams
// state rules declaratively without learning Rego first.
package policy

import (
	"github.com/beevik/etree"

	"github.com/fulmenhq/mvnneat/internal/maven"
)

// Component is one plugin or dependency extracted from a POM.
type Component struct {
	Kind       string `json:"kind"` // "plugin" or "dependency"
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version,omitempty"`
	Managed    bool   `json:"managed"`
}

// Input is the manifest inventory a policy evaluates against.
type Input struct {
	File       string      `json:"file,omitempty"`
	Components []Component `json:"components"`
}

// InventoryOf flattens a POM into policy input: every plugin and
// dependency with coordinates, declared version, and whether its
// coordinates are centrally managed. A build-section plugin that
// references a managed plugin counts as managed even though the
// reference element itself sits outside pluginManagement.
func InventoryOf(root *etree.Element) Input {
	var input Input

	managedPlugins := maven.ManagedSet(root, maven.PluginTag, maven.PluginManagementTag)
	managedPluginCoords := coordsOf(managedPlugins)
	for _, plugin := range maven.ElementsOfKind(root, maven.PluginTag) {
		coords := maven.CoordinatesOf(plugin)
		version, _ := maven.InlineVersion(plugin)
		input.Components = append(input.Components, Component{
			Kind:       "plugin",
			GroupID:    coords.GroupID,
			ArtifactID: coords.ArtifactID,
			Version:    version,
			Managed:    managedPlugins.Has(plugin) || managedPluginCoords[coords],
		})
	}

	managedDeps := maven.ManagedSet(root, maven.DependencyTag, maven.DependencyManagementTag)
	pluginDeps := maven.ManagedSet(root, maven.DependencyTag, maven.PluginTag)
	managedDepCoords := coordsOf(managedDeps)
	for _, dep := range maven.ElementsOfKind(root, maven.DependencyTag) {
		coords := maven.CoordinatesOf(dep)
		version, _ := maven.InlineVersion(dep)
		input.Components = append(input.Components, Component{
			Kind:       "dependency",
			GroupID:    coords.GroupID,
			ArtifactID: coords.ArtifactID,
			Version:    version,
			Managed:    managedDeps.Has(dep) || pluginDeps.Has(dep) || managedDepCoords[coords],
		})
	}
	return input
}

func coordsOf(set maven.ElementSet) map[maven.Coordinates]bool {
	coords := make(map[maven.Coordinates]bool, len(set))
	for el := range set {
		coords[maven.CoordinatesOf(el)] = true
	}
	return coords
}
