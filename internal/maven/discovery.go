package maven

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fulmenhq/mvnneat/pkg/ignore"
	"github.com/fulmenhq/mvnneat/pkg/logger"
)

// DiscoverOptions controls multi-module manifest discovery.
type DiscoverOptions struct {
	// Include globs select manifests relative to the target root.
	// Empty means the conventional Maven layout.
	Include []string
	// Exclude globs drop matches after inclusion.
	Exclude []string
	// NoIgnore disables .gitignore and .mvnneatignore filtering.
	NoIgnore bool
}

// DefaultIncludes matches the root POM and every module POM below it.
func DefaultIncludes() []string {
	return []string{"pom.xml", "**/pom.xml"}
}

// DefaultExcludes drops build output and test fixture trees, which
// routinely contain deliberately inconsistent POMs.
func DefaultExcludes() []string {
	return []string{"**/target/**", "**/src/test/resources/**"}
}

// DiscoverManifests walks target and returns the slash-separated
// relative paths of every POM selected by the options, sorted so the
// audit order is stable across platforms.
func DiscoverManifests(target string, opts DiscoverOptions) ([]string, error) {
	includes := opts.Include
	if len(includes) == 0 {
		includes = DefaultIncludes()
	}
	excludes := opts.Exclude
	if len(excludes) == 0 {
		excludes = DefaultExcludes()
	}

	var matcher *ignore.Matcher
	if !opts.NoIgnore {
		m, err := ignore.NewMatcher(target)
		if err != nil {
			logger.Warn("Failed to load ignore files, continuing without them", logger.Err(err))
		} else {
			matcher = m
		}
	}

	var paths []string
	err := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(target, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if matcher != nil && matcher.IsIgnoredDir(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if !matchesAny(includes, rel) || matchesAny(excludes, rel) {
			return nil
		}
		if matcher != nil && matcher.IsIgnored(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// matchesAny reports whether rel matches at least one doublestar glob.
// Malformed globs match nothing.
func matchesAny(globs []string, rel string) bool {
	for _, glob := range globs {
		if ok, err := doublestar.Match(glob, rel); err == nil && ok {
			return true
		}
	}
	return false
}
