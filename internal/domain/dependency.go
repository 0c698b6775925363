package domain

// Dependency is a predecessor → successor edge between two WBS items.
// Lag is in days and may be negative (lead time).
type Dependency struct {
	PredecessorID string
	SuccessorID   string
	Type          DependencyType
	Lag           int
}

// SameEdge reports whether d connects the same ordered pair as other.
func (d Dependency) SameEdge(other Dependency) bool {
	return d.PredecessorID == other.PredecessorID && d.SuccessorID == other.SuccessorID
}
