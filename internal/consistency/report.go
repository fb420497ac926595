/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package consistency

import (
	"time"

	"github.com/fulmenhq/mvnneat/internal/gitctx"
	"github.com/fulmenhq/mvnneat/pkg/buildinfo"
)

// Report is the complete outcome of one audit run.
type Report struct {
	Metadata   Metadata    `json:"metadata"`
	Violations []Violation `json:"violations"`
	Summary    Summary     `json:"summary"`
}

// Metadata records when, what, and with which tool the audit ran.
type Metadata struct {
	Tool        string          `json:"tool"`
	Version     string          `json:"version"`
	GeneratedAt time.Time       `json:"generated_at"`
	Target      string          `json:"target"`
	Manifests   []string        `json:"manifests,omitempty"`
	Duration    time.Duration   `json:"duration_ns"`
	Git         *gitctx.Context `json:"git,omitempty"`
}

// Summary aggregates violations for quick triage.
type Summary struct {
	Total      int          `json:"total"`
	ByRule     map[Rule]int `json:"by_rule,omitempty"`
	Consistent bool         `json:"consistent"`
}

// NewReport assembles a report from the raw findings.
func NewReport(target string, violations []Violation, elapsed time.Duration) *Report {
	summary := Summary{
		Total:      len(violations),
		Consistent: len(violations) == 0,
	}
	if len(violations) > 0 {
		summary.ByRule = make(map[Rule]int)
		for _, v := range violations {
			summary.ByRule[v.Rule]++
		}
	}
	return &Report{
		Metadata: Metadata{
			Tool:        "mvnneat",
			Version:     buildinfo.BinaryVersion,
			GeneratedAt: time.Now().UTC(),
			Target:      target,
			Duration:    elapsed,
		},
		Violations: violations,
		Summary:    summary,
	}
}

// Failed reports whether the audit found anything.
func (r *Report) Failed() bool {
	return len(r.Violations) > 0
}
