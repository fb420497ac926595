package dependabot

import "github.com/bmatcuk/doublestar/v4"

// coverageProbe is the artifact stand-in appended to a groupId before
// matching. Dependabot patterns address full groupId:artifactId
// coordinates, so probing with a fixed dummy artifact answers whether
// the pattern's group part covers the groupId at all.
const coverageProbe = ":DUMMY"

// Covers reports whether a Dependabot update pattern covers a Maven
// groupId. Patterns need a wildcard to cover anything: "org.foo*" and
// "org.foo:*" cover org.foo, while a bare "org.foo" never matches the
// probe and so covers nothing, same as it would match no Maven
// coordinate. Malformed patterns cover nothing.
func Covers(pattern, groupID string) bool {
	ok, err := doublestar.Match(pattern, groupID+coverageProbe)
	return err == nil && ok
}
