// Package wbs holds the pure work-breakdown-structure computations:
// hierarchy construction, dependency constraint propagation, dependency
// validation, code ordering, and earned-value formulas.
//
// Nothing here performs I/O or keeps state between calls. Inputs are never
// mutated; functions that "update" items return fresh copies.
package wbs
