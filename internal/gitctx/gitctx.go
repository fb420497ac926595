// Package gitctx captures a best-effort view of the repository state so
// audit reports record what was actually checked. A missing git binary
// or a non-repo target is never an error; callers get nil and move on.
package gitctx

import (
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Context describes the repository at audit time.
type Context struct {
	Branch        string   `json:"branch,omitempty"`
	SHA           string   `json:"sha,omitempty"`
	Dirty         bool     `json:"dirty"`
	ModifiedFiles []string `json:"modified_files,omitempty"`
}

// ShortSHA returns the abbreviated commit hash.
func (c *Context) ShortSHA() string {
	if c == nil {
		return ""
	}
	if len(c.SHA) > 12 {
		return c.SHA[:12]
	}
	return c.SHA
}

// AuditedDirty reports whether any of the given repo-relative paths
// carry uncommitted changes. Nil-safe so callers can chain it off a
// failed Collect.
func (c *Context) AuditedDirty(paths ...string) bool {
	if c == nil || !c.Dirty {
		return false
	}
	for _, p := range paths {
		p = filepath.ToSlash(p)
		for _, m := range c.ModifiedFiles {
			if m == p {
				return true
			}
		}
	}
	return false
}

// Collect gathers repository state for the target path. Prefers go-git;
// falls back to the git CLI. Returns nil if neither can see a repo.
func Collect(target string) *Context {
	if ctx := collectGoGit(target); ctx != nil {
		return ctx
	}
	if _, err := exec.LookPath("git"); err != nil {
		return nil
	}
	if !isRepoCLI(target) {
		return nil
	}
	ctx := &Context{
		Branch: runGit(target, "rev-parse", "--abbrev-ref", "HEAD"),
		SHA:    runGit(target, "rev-parse", "HEAD"),
	}
	for _, line := range strings.Split(string(runGitBytes(target, "status", "--porcelain")), "\n") {
		// Format: XY <path>
		if len(line) < 4 {
			continue
		}
		ctx.ModifiedFiles = append(ctx.ModifiedFiles, filepath.ToSlash(strings.TrimSpace(line[3:])))
	}
	sort.Strings(ctx.ModifiedFiles)
	ctx.Dirty = len(ctx.ModifiedFiles) > 0
	return ctx
}

func collectGoGit(target string) *Context {
	repo, err := git.PlainOpenWithOptions(target, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}
	head, err := repo.Head()
	if err != nil {
		return nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil
	}
	st, err := wt.Status()
	if err != nil {
		return nil
	}

	ctx := &Context{
		Branch: head.Name().Short(),
		SHA:    head.Hash().String(),
	}
	for path, s := range st {
		// Both staged and unstaged changes count
		if s.Staging != git.Unmodified || s.Worktree != git.Unmodified {
			ctx.ModifiedFiles = append(ctx.ModifiedFiles, filepath.ToSlash(path))
		}
	}
	sort.Strings(ctx.ModifiedFiles)
	ctx.Dirty = len(ctx.ModifiedFiles) > 0
	return ctx
}

func isRepoCLI(target string) bool {
	return runGit(target, "rev-parse", "--is-inside-work-tree") == "true"
}

func runGit(dir string, args ...string) string {
	return strings.TrimSpace(string(runGitBytes(dir, args...)))
}

func runGitBytes(dir string, args ...string) []byte {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, _ := cmd.Output()
	return out
}
