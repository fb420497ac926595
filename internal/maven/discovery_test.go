package maven

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFixture(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverManifests(t *testing.T) {
	dir := t.TempDir()
	pom := `<project/>`
	writeFixture(t, dir, "pom.xml", pom)
	writeFixture(t, dir, "module-b/pom.xml", pom)
	writeFixture(t, dir, "module-a/pom.xml", pom)
	writeFixture(t, dir, "module-a/target/classes/pom.xml", pom)
	writeFixture(t, dir, "src/test/resources/bad/pom.xml", pom)
	writeFixture(t, dir, "module-a/README.md", "docs")

	got, err := DiscoverManifests(dir, DiscoverOptions{NoIgnore: true})
	if err != nil {
		t.Fatalf("DiscoverManifests() error: %v", err)
	}
	want := []string{"module-a/pom.xml", "module-b/pom.xml", "pom.xml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverManifests() = %v, want %v", got, want)
	}
}

func TestDiscoverManifestsCustomGlobs(t *testing.T) {
	dir := t.TempDir()
	pom := `<project/>`
	writeFixture(t, dir, "pom.xml", pom)
	writeFixture(t, dir, "libs/core/pom.xml", pom)
	writeFixture(t, dir, "apps/web/pom.xml", pom)

	got, err := DiscoverManifests(dir, DiscoverOptions{
		Include:  []string{"libs/**/pom.xml"},
		NoIgnore: true,
	})
	if err != nil {
		t.Fatalf("DiscoverManifests() error: %v", err)
	}
	want := []string{"libs/core/pom.xml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverManifests() = %v, want %v", got, want)
	}

	got, err = DiscoverManifests(dir, DiscoverOptions{
		Exclude:  []string{"apps/**"},
		NoIgnore: true,
	})
	if err != nil {
		t.Fatalf("DiscoverManifests() error: %v", err)
	}
	want = []string{"libs/core/pom.xml", "pom.xml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverManifests() = %v, want %v", got, want)
	}
}

func TestDiscoverManifestsIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	pom := `<project/>`
	writeFixture(t, dir, "pom.xml", pom)
	writeFixture(t, dir, "vendored/pom.xml", pom)
	writeFixture(t, dir, ".mvnneatignore", "vendored/\n")

	got, err := DiscoverManifests(dir, DiscoverOptions{})
	if err != nil {
		t.Fatalf("DiscoverManifests() error: %v", err)
	}
	want := []string{"pom.xml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverManifests() = %v, want %v", got, want)
	}
}

func TestMatchesAny(t *testing.T) {
	if !matchesAny([]string{"**/pom.xml"}, "a/b/pom.xml") {
		t.Error("doublestar glob should match nested path")
	}
	if matchesAny([]string{"[bad"}, "anything") {
		t.Error("malformed glob should match nothing")
	}
	if matchesAny(nil, "pom.xml") {
		t.Error("empty glob list should match nothing")
	}
}
