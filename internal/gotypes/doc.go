// Package gotypes exposes Go types as a universe.Universe.
//
// Go cannot enumerate the types linked into a binary, so types become visible
// by registering them with a Catalog, typically from a Module's Register
// method. The process-wide Ambient catalog is what the shared registry scans.
// Ancestry follows struct embedding and annotations are read from the marker
// fields and tags defined in package graph.
package gotypes
