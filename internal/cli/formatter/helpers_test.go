package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/scheduler"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"12.5", "12.50"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"1234567.891", "1,234,567.89"},
		{"-25000", "-25,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0%", FormatPercent(0))
	assert.Equal(t, "50%", FormatPercent(50))
	assert.Equal(t, "33.3%", FormatPercent(33.333))
}

func TestFormatVariance(t *testing.T) {
	assert.Contains(t, FormatVariance(decimal.NewFromInt(150)), "+150.00")
	assert.Contains(t, FormatVariance(decimal.NewFromInt(-150)), "-150.00")
	assert.Contains(t, FormatVariance(decimal.Zero), "0.00")
}

func TestFormatLag(t *testing.T) {
	assert.Contains(t, FormatLag(3), "+3d")
	assert.Contains(t, FormatLag(-2), "-2d")
	assert.Contains(t, FormatLag(0), "0d")
}

func TestFormatDate_UsesConfiguredLayout(t *testing.T) {
	d := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", FormatDate(d))
	assert.Equal(t, "--", FormatDate(time.Time{}))

	prev := DateLayout
	DateLayout = "02 Jan 2006"
	t.Cleanup(func() { DateLayout = prev })
	assert.Equal(t, "09 Mar 2025", FormatDate(d))
}

func TestPills(t *testing.T) {
	assert.Contains(t, ProjectStatusPill(domain.ProjectOnHold), "On hold")
	assert.Contains(t, ProjectStatusPill(domain.ProjectComplete), "Complete")
	assert.Contains(t, WbsTypeBadge(domain.WbsWorkPackage), "WP")
	assert.Contains(t, PerformanceIndicator(domain.PerformanceSlightlyBehind), "Slightly Behind")
	assert.Contains(t, ClientBadge(""), "--")
}

func TestWorse(t *testing.T) {
	assert.Equal(t, domain.PerformanceBehind, worse(domain.PerformanceExcellent, domain.PerformanceBehind))
	assert.Equal(t, domain.PerformanceSlightlyBehind, worse(domain.PerformanceSlightlyBehind, domain.PerformanceOnTarget))
}

func TestRiskPill(t *testing.T) {
	late, float := -4, 6
	assert.Contains(t, RiskPill(scheduler.RiskResult{Level: domain.RiskCritical, SlackDays: &late}), "4d late")
	assert.Contains(t, RiskPill(scheduler.RiskResult{Level: domain.RiskAtRisk, SlackDays: &float}), "6d float")
	assert.Contains(t, RiskPill(scheduler.RiskResult{Level: domain.RiskOnTrack}), "On track")
}
