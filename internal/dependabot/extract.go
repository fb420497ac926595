// Package dependabot pulls update-group patterns out of a Dependabot
// configuration. The extraction deliberately avoids a YAML parser: it
// scans lines and indentation, so a config that confuses the scanner
// surfaces as a missing-patterns finding instead of a parse error, and
// files with YAML oddities elsewhere never block the audit.
package dependabot

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	groupsMarker   = regexp.MustCompile(`^groups:\s*$`)
	patternsMarker = regexp.MustCompile(`^patterns:\s*$`)
	listItem       = regexp.MustCompile(`^-\s*["']?([^"'\s]+)["']?`)
)

// ExtractGroupPatterns scans text for the update entry of the given
// package ecosystem, then descends the groups -> <group> -> patterns
// chain by indentation and collects the pattern list items in
// declaration order. found reports whether the chain was located;
// a located chain can still yield zero patterns.
func ExtractGroupPatterns(text, ecosystem, group string) (patterns []string, found bool) {
	lines := splitLines(text)

	ecosystemRe := regexp.MustCompile(`package-ecosystem:\s*["']?` + regexp.QuoteMeta(ecosystem) + `\b`)
	ecoLine := -1
	for i, line := range lines {
		if ecosystemRe.MatchString(line) {
			ecoLine = i
			break
		}
	}
	if ecoLine < 0 {
		return nil, false
	}

	groupsLine := findMarker(lines, ecoLine, groupsMarker, indentWidth(lines[ecoLine]))
	if groupsLine < 0 {
		return nil, false
	}

	groupMarker := regexp.MustCompile(`^` + regexp.QuoteMeta(group) + `:\s*$`)
	groupLine := findMarker(lines, groupsLine, groupMarker, indentWidth(lines[groupsLine]))
	if groupLine < 0 {
		return nil, false
	}

	patternsLine := findMarker(lines, groupLine, patternsMarker, indentWidth(lines[groupLine]))
	if patternsLine < 0 {
		return nil, false
	}

	patternsIndent := indentWidth(lines[patternsLine])
	for _, line := range lines[patternsLine+1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if indentWidth(line) <= patternsIndent {
			break
		}
		if m := listItem.FindStringSubmatch(trimmed); m != nil {
			patterns = append(patterns, m[1])
		}
	}
	return patterns, true
}

// findMarker returns the index of the first line after start whose
// trimmed content matches marker. Blank and comment lines are
// transparent. Any other line indented at or shallower than stopIndent
// closes the enclosing block, so markers belonging to a later sibling
// entry are never picked up.
func findMarker(lines []string, start int, marker *regexp.Regexp, stopIndent int) int {
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if indentWidth(lines[i]) <= stopIndent {
			return -1
		}
		if marker.MatchString(trimmed) {
			return i
		}
	}
	return -1
}

// indentWidth counts leading whitespace runes. Tabs and spaces both
// count as one; mixing them in a Dependabot file is the author's
// problem, not ours.
func indentWidth(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// splitLines splits on '\n' and strips a trailing '\r' from each line
// so CRLF files scan identically to LF files.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
