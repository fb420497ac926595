/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package consistency

import (
	"testing"
	"time"
)

func TestNewReport(t *testing.T) {
	report := NewReport("repo", sampleViolations(), 5*time.Millisecond)
	if !report.Failed() {
		t.Error("report with violations did not fail")
	}
	if report.Summary.Total != 3 {
		t.Errorf("total = %d, want 3", report.Summary.Total)
	}
	if report.Summary.Consistent {
		t.Error("summary marked consistent")
	}
	if report.Summary.ByRule[RuleStrayPluginVersion] != 2 || report.Summary.ByRule[RuleStalePattern] != 1 {
		t.Errorf("by_rule = %v", report.Summary.ByRule)
	}
	if report.Metadata.Target != "repo" {
		t.Errorf("target = %q, want repo", report.Metadata.Target)
	}
	if report.Metadata.GeneratedAt.IsZero() {
		t.Error("generated_at not set")
	}
}

func TestNewReportClean(t *testing.T) {
	report := NewReport(".", nil, time.Millisecond)
	if report.Failed() {
		t.Error("empty report failed")
	}
	if !report.Summary.Consistent {
		t.Error("summary not marked consistent")
	}
	if report.Summary.ByRule != nil {
		t.Errorf("by_rule = %v, want nil when clean", report.Summary.ByRule)
	}
}
