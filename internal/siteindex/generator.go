// Package siteindex renders the landing page for a versioned
// documentation store: one directory per release plus the floating
// latest/ and snapshot/ copies published by CI. The page lists every
// release newest first and links the floating copies when present.
package siteindex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/fulmenhq/mvnneat/internal/assets"
	"github.com/fulmenhq/mvnneat/internal/maven"
	"github.com/fulmenhq/mvnneat/pkg/safeio"
	"github.com/fulmenhq/mvnneat/pkg/versioning"
)

// Sentinel errors so callers can map failures to distinct exit codes.
var (
	ErrStore    = errors.New("site store not accessible")
	ErrTemplate = errors.New("site template failed")
)

const templateName = "site/index.html.hbs"

// Options configure index generation.
type Options struct {
	// Store is the documentation store directory, with one
	// subdirectory per release.
	Store string

	// Pom supplies the project name and description.
	Pom string

	// TemplatePath overrides the embedded page template.
	TemplatePath string

	// DryRun renders the page without writing it.
	DryRun bool
}

// Result describes the generated page.
type Result struct {
	Releases    []string `json:"releases"`
	Latest      string   `json:"latest,omitempty"`
	Snapshot    string   `json:"snapshot,omitempty"`
	HasLatest   bool     `json:"has_latest"`
	HasSnapshot bool     `json:"has_snapshot"`
	Output      string   `json:"output"`
}

// Generate scans the store, renders the index page, and writes it to
// <store>/index.html. The latest/ and snapshot/ cards appear whenever
// those directories exist; their displayed version comes from the
// .version marker CI drops into each copy, with the newest release as
// fallback for latest.
func Generate(opts Options) (*Result, error) {
	entries, err := os.ReadDir(opts.Store)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	var releases []string
	for _, entry := range entries {
		if entry.IsDir() && versioning.IsVersionLike(entry.Name()) {
			releases = append(releases, entry.Name())
		}
	}
	releases = versioning.SortDescending(releases)

	result := &Result{
		Releases: releases,
		Output:   filepath.Join(opts.Store, "index.html"),
	}
	if dirExists(filepath.Join(opts.Store, "latest")) {
		result.HasLatest = true
		result.Latest = storedVersion(opts.Store, "latest")
		if result.Latest == "" && len(releases) > 0 {
			result.Latest = releases[0]
		}
	}
	if dirExists(filepath.Join(opts.Store, "snapshot")) {
		result.HasSnapshot = true
		result.Snapshot = storedVersion(opts.Store, "snapshot")
	}

	doc, err := maven.Load(opts.Pom)
	if err != nil {
		return nil, fmt.Errorf("reading project manifest: %w", err)
	}

	tpl, err := loadTemplate(opts.TemplatePath)
	if err != nil {
		return nil, err
	}
	html, err := raymond.Render(tpl, map[string]interface{}{
		"name":            maven.ProjectField(doc, "name"),
		"description":     maven.ProjectField(doc, "description"),
		"hasLatest":       result.HasLatest,
		"latestVersion":   result.Latest,
		"hasSnapshot":     result.HasSnapshot,
		"snapshotVersion": result.Snapshot,
		"releases":        releases,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	if opts.DryRun {
		return result, nil
	}
	if err := safeio.WriteFileContained(opts.Store, result.Output, []byte(html)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return result, nil
}

// loadTemplate returns the page template source, preferring an
// explicit override file over the embedded default.
func loadTemplate(override string) (string, error) {
	if override != "" {
		data, err := os.ReadFile(filepath.Clean(override)) // #nosec G304 -- operator-supplied template path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrTemplate, err)
		}
		return string(data), nil
	}
	data, err := fs.ReadFile(assets.GetTemplatesFS(), templateName)
	if err != nil {
		return "", fmt.Errorf("%w: embedded template missing: %v", ErrTemplate, err)
	}
	return string(data), nil
}

// storedVersion reads the .version marker inside a floating copy.
// Missing or unreadable markers yield the empty string.
func storedVersion(store, directory string) string {
	data, err := safeio.ReadFileContained(store, filepath.Join(store, directory, ".version"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
