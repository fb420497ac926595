// Package maven walks parsed POM documents and extracts component
// identity from them. The package never reads files on behalf of the
// checker; loading is a separate concern (see loader.go) so the
// consistency rules stay pure functions over in-memory trees.
package maven

import "github.com/beevik/etree"

// Well-known POM element tags.
const (
	PluginTag               = "plugin"
	DependencyTag           = "dependency"
	PluginManagementTag     = "pluginManagement"
	DependencyManagementTag = "dependencyManagement"
)

// ElementSet tracks membership by element identity. Two elements with
// identical coordinates at different tree positions are distinct
// members, which is exactly what stray-version detection needs.
type ElementSet map[*etree.Element]struct{}

// Has reports whether el is a member of the set.
func (s ElementSet) Has(el *etree.Element) bool {
	_, ok := s[el]
	return ok
}

func (s ElementSet) add(el *etree.Element) { s[el] = struct{}{} }

// ElementsOfKind returns every element in the tree rooted at root whose
// tag matches kind, in document order. The root itself is a candidate.
// Matching is on the local tag name, so documents using the default POM
// namespace and prefixed documents walk the same.
func ElementsOfKind(root *etree.Element, kind string) []*etree.Element {
	if root == nil {
		return nil
	}
	var out []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == kind {
			out = append(out, el)
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return out
}

// ManagedSet returns the identity set of kind elements that sit inside
// any section element. It first collects every section block in the
// tree, then re-walks each block's subtree independently and unions the
// results, so elements under nested or repeated sections are counted
// once.
func ManagedSet(root *etree.Element, kind, section string) ElementSet {
	set := make(ElementSet)
	for _, block := range ElementsOfKind(root, section) {
		for _, el := range ElementsOfKind(block, kind) {
			set.add(el)
		}
	}
	return set
}
