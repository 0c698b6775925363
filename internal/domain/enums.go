package domain

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectOnHold   ProjectStatus = "on_hold"
	ProjectComplete ProjectStatus = "complete"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[string]bool{
	"active": true, "on_hold": true, "complete": true,
}

type WbsType string

const (
	WbsSummary     WbsType = "summary"
	WbsWorkPackage WbsType = "work_package"
	WbsActivity    WbsType = "activity"
)

// ValidWbsTypes is the canonical set of accepted WBS item type strings.
var ValidWbsTypes = map[string]bool{
	"summary": true, "work_package": true, "activity": true,
}

type DependencyType string

const (
	FinishToStart  DependencyType = "FS"
	StartToStart   DependencyType = "SS"
	FinishToFinish DependencyType = "FF"
	StartToFinish  DependencyType = "SF"
)

// ValidDependencyTypes is the canonical set of accepted dependency type strings.
var ValidDependencyTypes = map[string]bool{
	"FS": true, "SS": true, "FF": true, "SF": true,
}

type PerformanceStatus string

const (
	PerformanceExcellent      PerformanceStatus = "Excellent"
	PerformanceOnTarget       PerformanceStatus = "On Target"
	PerformanceSlightlyBehind PerformanceStatus = "Slightly Behind"
	PerformanceBehind         PerformanceStatus = "Behind Schedule"
)

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)
