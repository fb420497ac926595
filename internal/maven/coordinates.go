package maven

import (
	"strings"

	"github.com/beevik/etree"
)

// unknownField stands in for a missing or blank coordinate so violation
// messages always have something to name.
const unknownField = "unknown"

// Coordinates identifies a plugin or dependency by its groupId and
// artifactId.
type Coordinates struct {
	GroupID    string
	ArtifactID string
}

// String renders coordinates in the conventional groupId:artifactId form.
func (c Coordinates) String() string {
	return c.GroupID + ":" + c.ArtifactID
}

// CoordinatesOf reads the direct groupId and artifactId children of el.
// Values are whitespace-trimmed; a missing or blank field becomes
// "unknown". Only direct children count, so a plugin's own coordinates
// are never confused with those of a nested dependency.
func CoordinatesOf(el *etree.Element) Coordinates {
	c := Coordinates{
		GroupID:    childText(el, "groupId"),
		ArtifactID: childText(el, "artifactId"),
	}
	if c.GroupID == "" {
		c.GroupID = unknownField
	}
	if c.ArtifactID == "" {
		c.ArtifactID = unknownField
	}
	return c
}

// GroupID returns el's trimmed direct groupId text, or "" when the
// child is absent or blank.
func GroupID(el *etree.Element) string {
	return childText(el, "groupId")
}

// InlineVersion reports whether el declares a version as a direct
// child. Presence is judged on the raw text, so a whitespace-only
// version element still counts as declared; the returned value is
// trimmed for use in messages.
func InlineVersion(el *etree.Element) (string, bool) {
	child := el.SelectElement("version")
	if child == nil {
		return "", false
	}
	raw := child.Text()
	if raw == "" {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
