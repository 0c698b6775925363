// Package scheduler assesses whether a project's schedule will meet its
// target date.
package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
)

// SlackWarningDays is the float below which an otherwise healthy schedule
// is reported at risk.
const SlackWarningDays = 3

type RiskInput struct {
	AsOf       time.Time
	TargetDate *time.Time
	// ForecastFinish is the latest end date across the project's items.
	ForecastFinish time.Time
	// ProgressPct is EV / BAC * 100. Zero means no budget data.
	ProgressPct float64
	// TimeElapsedPct is the share of the start → target window already
	// elapsed. Zero means no timeline data.
	TimeElapsedPct float64
	// SPI is the project-level schedule performance index; 1 when unknown.
	SPI float64
}

type RiskResult struct {
	Level domain.RiskLevel
	// DaysLeft until the target date; nil without a target.
	DaysLeft *int
	// SlackDays is target minus forecast finish; negative means late.
	SlackDays      *int
	ProgressPct    float64
	TimeElapsedPct float64
}

func days(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

func ComputeRisk(input RiskInput) RiskResult {
	result := RiskResult{
		Level:          domain.RiskOnTrack,
		ProgressPct:    input.ProgressPct,
		TimeElapsedPct: input.TimeElapsedPct,
	}

	// No target date => on track (no deadline to miss)
	if input.TargetDate == nil {
		return result
	}

	daysLeft := days(input.TargetDate.Sub(input.AsOf))
	slack := days(input.TargetDate.Sub(input.ForecastFinish))
	result.DaysLeft = &daysLeft
	result.SlackDays = &slack

	finished := input.ProgressPct >= 100

	// Past due with work remaining
	if daysLeft <= 0 && !finished {
		result.Level = domain.RiskCritical
		return result
	}

	// Earned progress keeping pace with elapsed time softens a late forecast:
	// propagation may simply not have been re-run since work sped up.
	onPace := input.ProgressPct > 0 && input.TimeElapsedPct > 0 &&
		input.ProgressPct >= input.TimeElapsedPct

	switch {
	case slack < 0:
		if onPace {
			result.Level = domain.RiskAtRisk
		} else {
			result.Level = domain.RiskCritical
		}
	case input.SPI > 0 && input.SPI < 0.95:
		result.Level = domain.RiskAtRisk
	case slack < SlackWarningDays && !finished:
		result.Level = domain.RiskAtRisk
	default:
		result.Level = domain.RiskOnTrack
	}

	return result
}

// ElapsedPct returns how much of [start, target] lies before asOf, as a
// percentage clamped to [0, 100]. Zero when the window is empty.
func ElapsedPct(start time.Time, target *time.Time, asOf time.Time) float64 {
	if target == nil || !target.After(start) {
		return 0
	}
	pct := float64(asOf.Sub(start)) / float64(target.Sub(start)) * 100
	return math.Min(math.Max(pct, 0), 100)
}
