// Package cleanup describes storage lifecycle cleanup as values: which orders
// a run selects, what it does to them once their files are gone, and what
// happened to each candidate.
//
// One orchestration serves both jobs; they differ only in their Policy:
//
//	fulfilled: every stage completed       -> clear the order's file set
//	abandoned: only OrderPlaced, past cutoff -> delete the order and its tracking
//
// Results are explicit: every candidate ends with an Outcome, and a run ends
// with a Summary. Storage failures are never returned as errors from a run.
package cleanup
