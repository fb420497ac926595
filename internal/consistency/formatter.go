/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package consistency

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format selects the report rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// OKMessage is printed when a text-format audit finds nothing.
const OKMessage = "OK: plugin/dependency versions and dependabot patterns are consistent"

// ruleOrder fixes the summary row order across runs.
var ruleOrder = []Rule{
	RuleStrayPluginVersion,
	RuleStrayDependencyVersion,
	RuleMissingPatterns,
	RuleUncoveredGroupID,
	RuleStalePattern,
	RulePolicy,
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (supported: text, markdown, json)", s)
	}
}

// Formatter renders reports in a chosen format.
type Formatter struct {
	format Format
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) *Formatter {
	return &Formatter{format: format}
}

// Format renders the report.
func (f *Formatter) Format(report *Report) (string, error) {
	switch f.format {
	case FormatMarkdown:
		return f.formatMarkdown(report), nil
	case FormatJSON:
		return f.formatJSON(report)
	default:
		return f.formatText(report), nil
	}
}

// Write renders the report onto w.
func (f *Formatter) Write(w io.Writer, report *Report) error {
	out, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// formatText mirrors the classic CI output: one ERROR line per finding
// plus a per-rule tally, or the single OK line.
func (f *Formatter) formatText(report *Report) string {
	if !report.Failed() {
		return OKMessage + "\n"
	}

	var b strings.Builder
	for _, v := range report.Violations {
		b.WriteString("ERROR: ")
		b.WriteString(v.String())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	width := 0
	for rule := range report.Summary.ByRule {
		if w := runewidth.StringWidth(string(rule)); w > width {
			width = w
		}
	}
	for _, rule := range ruleOrder {
		if n := report.Summary.ByRule[rule]; n > 0 {
			fmt.Fprintf(&b, "  %s  %d\n", runewidth.FillRight(string(rule), width), n)
		}
	}
	fmt.Fprintf(&b, "%d violation(s) in %s\n", report.Summary.Total, report.Metadata.Target)
	return b.String()
}

func (f *Formatter) formatMarkdown(report *Report) string {
	var md strings.Builder

	md.WriteString("# Maven Consistency Report\n\n")
	fmt.Fprintf(&md, "**Generated:** %s  \n", report.Metadata.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&md, "**Tool:** %s v%s  \n", report.Metadata.Tool, report.Metadata.Version)
	fmt.Fprintf(&md, "**Target:** %s  \n", report.Metadata.Target)
	if git := report.Metadata.Git; git != nil {
		state := "clean"
		if git.Dirty {
			state = "dirty"
		}
		fmt.Fprintf(&md, "**Git:** %s @ %s (%s)  \n", git.Branch, git.ShortSHA(), state)
	}
	md.WriteString("\n## Summary\n\n")
	if !report.Failed() {
		md.WriteString("All plugin and dependency versions are centralized and the ")
		md.WriteString("Dependabot patterns are in sync.\n")
		return md.String()
	}

	fmt.Fprintf(&md, "**%d violation(s)**\n\n", report.Summary.Total)
	for _, rule := range ruleOrder {
		if n := report.Summary.ByRule[rule]; n > 0 {
			fmt.Fprintf(&md, "- **%s:** %d\n", ruleHeading(rule), n)
		}
	}

	md.WriteString("\n## Violations\n\n")
	for _, rule := range ruleOrder {
		if report.Summary.ByRule[rule] == 0 {
			continue
		}
		fmt.Fprintf(&md, "### %s\n\n", ruleHeading(rule))
		for _, v := range report.Violations {
			if v.Rule != rule {
				continue
			}
			fmt.Fprintf(&md, "- `%s`: %s\n", v.File, v.Message)
		}
		md.WriteString("\n")
	}
	return md.String()
}

func (f *Formatter) formatJSON(report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	return string(data) + "\n", nil
}

// ruleHeading turns a rule tag into a section heading, e.g.
// stray-plugin-version -> Stray Plugin Version.
func ruleHeading(rule Rule) string {
	caser := cases.Title(language.Und)
	return caser.String(strings.ReplaceAll(string(rule), "-", " "))
}
