// Package universe models the set of type definitions the registry scans.
//
// A Definition is an opaque, format-agnostic handle: Go types registered in a
// catalog and definitions declared in HCL manifests are both translated into
// it. Role classification is never stored on a definition; it is derived by
// testing ancestry against the shared NodeRoot and ViewRoot handles, which is
// what lets definitions from different sources classify the same way.
package universe
