// Package insights holds the arithmetic behind the analysis tools: numeric
// extraction from Garmin Connect response maps, trend deltas and rolling
// averages, anomaly heuristics, readiness scoring, hydration targets, and
// the rule lists that produce training, diet, and recovery advice.
//
// Everything in this package is pure: it operates on already-fetched data
// and a caller-supplied clock, which keeps the formulas directly testable.
package insights
