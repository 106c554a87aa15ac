// Package registry discovers node and view definitions and indexes them for
// the editor.
//
// A Registry scans a universe.Universe exactly once, on first access, and
// classifies every definition with independent predicates: concrete node
// kinds contribute menu entries and source artifacts, concrete view kinds
// bind themselves to the node kind they target, and every definition
// contributes the types of its slot fields. After the scan the indices are
// never written again, so any number of goroutines may query them.
//
// Lookups never fail. A missing view, menu entry or source artifact is
// reported as absent, and conflicting declarations are resolved by letting
// the definition scanned last win.
package registry
